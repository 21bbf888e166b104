package provider

import (
	"net/url"
	"strconv"
	"strings"
)

// DiscoverQuery describes a filtered catalog listing. Zero values are omitted
// from the outbound request.
type DiscoverQuery struct {
	Page             int
	Language         string
	Region           string
	SortBy           string
	Genres           []int
	// GenresAny matches any of Genres (OR) instead of all of them (AND).
	GenresAny        bool
	VoteAverageGTE   *float64
	VoteAverageLTE   *float64
	VoteCountGTE     int
	OriginalLanguage string
	// Release window bounds, YYYY-MM-DD.
	ReleaseDateGTE string
	ReleaseDateLTE string
	ReleaseTypes   []int
}

// Values renders the query as discover endpoint parameters.
func (q DiscoverQuery) Values() url.Values {
	v := url.Values{}
	v.Set("include_adult", "false")
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	setIf(v, "language", q.Language)
	setIf(v, "region", q.Region)
	setIf(v, "sort_by", q.SortBy)
	if len(q.Genres) > 0 {
		sep := ","
		if q.GenresAny {
			sep = "|"
		}
		v.Set("with_genres", joinInts(q.Genres, sep))
	}
	if q.VoteAverageGTE != nil {
		v.Set("vote_average.gte", strconv.FormatFloat(*q.VoteAverageGTE, 'f', -1, 64))
	}
	if q.VoteAverageLTE != nil {
		v.Set("vote_average.lte", strconv.FormatFloat(*q.VoteAverageLTE, 'f', -1, 64))
	}
	if q.VoteCountGTE > 0 {
		v.Set("vote_count.gte", strconv.Itoa(q.VoteCountGTE))
	}
	setIf(v, "with_original_language", q.OriginalLanguage)
	setIf(v, "primary_release_date.gte", q.ReleaseDateGTE)
	setIf(v, "primary_release_date.lte", q.ReleaseDateLTE)
	if len(q.ReleaseTypes) > 0 {
		v.Set("with_release_type", joinInts(q.ReleaseTypes, "|"))
	}
	return v
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func joinInts(ns []int, sep string) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}
