package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscoverQuery_Values_OmitsZero(t *testing.T) {
	t.Parallel()

	v := DiscoverQuery{}.Values()

	assert.Equal(t, "false", v.Get("include_adult"))
	assert.Len(t, v, 1)
}

func TestDiscoverQuery_Values_Full(t *testing.T) {
	t.Parallel()

	gte, lte := 6.5, 9.0
	v := DiscoverQuery{
		Page:             2,
		Language:         "en-GB",
		Region:           "GB",
		SortBy:           "primary_release_date.asc",
		Genres:           []int{28, 12},
		VoteAverageGTE:   &gte,
		VoteAverageLTE:   &lte,
		VoteCountGTE:     200,
		OriginalLanguage: "fr",
		ReleaseDateGTE:   "2026-10-19",
		ReleaseDateLTE:   "2026-11-19",
		ReleaseTypes:     []int{2, 3},
	}.Values()

	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "en-GB", v.Get("language"))
	assert.Equal(t, "GB", v.Get("region"))
	assert.Equal(t, "primary_release_date.asc", v.Get("sort_by"))
	assert.Equal(t, "28,12", v.Get("with_genres"))
	assert.Equal(t, "6.5", v.Get("vote_average.gte"))
	assert.Equal(t, "9", v.Get("vote_average.lte"))
	assert.Equal(t, "200", v.Get("vote_count.gte"))
	assert.Equal(t, "fr", v.Get("with_original_language"))
	assert.Equal(t, "2026-10-19", v.Get("primary_release_date.gte"))
	assert.Equal(t, "2026-11-19", v.Get("primary_release_date.lte"))
	assert.Equal(t, "2|3", v.Get("with_release_type"))
}

func TestDiscoverQuery_Values_GenreSeparator(t *testing.T) {
	t.Parallel()

	all := DiscoverQuery{Genres: []int{28, 12}}.Values()
	anyOf := DiscoverQuery{Genres: []int{28, 12}, GenresAny: true}.Values()

	assert.Equal(t, "28,12", all.Get("with_genres"))
	assert.Equal(t, "28|12", anyOf.Get("with_genres"))
}
