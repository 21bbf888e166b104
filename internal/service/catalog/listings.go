package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/internal/provider"
)

const dateLayout = "2006-01-02"

// nowPlayingWindow is how far back a release still counts as now playing.
const nowPlayingWindow = 30 * 24 * time.Hour

// Popular returns a page of popular movies.
func (s *Service) Popular(ctx context.Context, page int) (*provider.MoviePage, error) {
	return s.Category(ctx, CategoryInput{Category: domain.CategoryPopular, Page: page})
}

// Search runs a title search.
func (s *Service) Search(ctx context.Context, input SearchInput) (*provider.MoviePage, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	page, err := s.catalog.SearchMovies(ctx, strings.TrimSpace(input.Query), input.Page, s.settings.ListingLanguage)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}

	capResults(page)
	return page, nil
}

// Category returns a curated listing. Without filters it uses the catalog's
// category endpoint; with filters it builds an equivalent discover query.
// Upcoming results never contain releases before today and are ordered by
// release date.
func (s *Service) Category(ctx context.Context, input CategoryInput) (*provider.MoviePage, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	region := input.Region
	if region == "" {
		region = s.settings.Region
	}

	today := s.clock.Now().UTC().Truncate(24 * time.Hour)

	var (
		page *provider.MoviePage
		err  error
	)
	if input.HasFilters() {
		page, err = s.catalog.DiscoverMovies(ctx, s.discoverQuery(input, region, today))
	} else {
		page, err = s.catalog.ListCategory(ctx, input.Category, input.Page, s.settings.ListingLanguage, region)
	}
	if err != nil {
		return nil, fmt.Errorf("list %s movies: %w", input.Category, err)
	}

	if input.Category == domain.CategoryUpcoming {
		page.Results = upcomingOnly(page.Results, today)
	}

	capResults(page)
	return page, nil
}

func (s *Service) discoverQuery(input CategoryInput, region string, today time.Time) provider.DiscoverQuery {
	q := provider.DiscoverQuery{
		Page:             input.Page,
		Language:         s.settings.ListingLanguage,
		Genres:           input.Genres,
		GenresAny:        input.GenresAny,
		VoteAverageGTE:   input.VoteAverageGTE,
		VoteAverageLTE:   input.VoteAverageLTE,
		OriginalLanguage: input.OriginalLanguage,
	}

	switch input.Category {
	case domain.CategoryPopular:
		q.SortBy = "popularity.desc"
	case domain.CategoryTopRated:
		q.SortBy = "vote_average.desc"
		q.VoteCountGTE = 200
	case domain.CategoryNowPlaying:
		q.SortBy = "popularity.desc"
		q.ReleaseDateGTE = today.Add(-nowPlayingWindow).Format(dateLayout)
		q.ReleaseDateLTE = today.Format(dateLayout)
		q.Region = region
	case domain.CategoryUpcoming:
		q.SortBy = "primary_release_date.asc"
		q.ReleaseDateGTE = today.Format(dateLayout)
		q.ReleaseTypes = []int{2, 3}
		q.Region = region
	}

	return q
}

// upcomingOnly drops movies released before today or without a parseable
// release date and orders the rest by release date, earliest first.
func upcomingOnly(results []provider.MovieSummary, today time.Time) []provider.MovieSummary {
	type dated struct {
		movie provider.MovieSummary
		at    time.Time
	}

	kept := make([]dated, 0, len(results))
	for _, m := range results {
		at, err := time.Parse(dateLayout, m.ReleaseDate)
		if err != nil || at.Before(today) {
			continue
		}
		kept = append(kept, dated{movie: m, at: at})
	}

	slices.SortStableFunc(kept, func(a, b dated) int {
		return a.at.Compare(b.at)
	})

	out := make([]provider.MovieSummary, len(kept))
	for i, d := range kept {
		out[i] = d.movie
	}
	return out
}

func capResults(page *provider.MoviePage) {
	if len(page.Results) > MaxResults {
		page.Results = page.Results[:MaxResults]
	}
}
