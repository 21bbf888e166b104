package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/internal/provider"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockCatalog struct {
	FetchMovieDetailsFunc func(ctx context.Context, tmdbID int64, language string) (*provider.MovieDetails, error)
	SearchMoviesFunc      func(ctx context.Context, query string, page int, language string) (*provider.MoviePage, error)
	ListCategoryFunc      func(ctx context.Context, category domain.Category, page int, language, region string) (*provider.MoviePage, error)
	DiscoverMoviesFunc    func(ctx context.Context, q provider.DiscoverQuery) (*provider.MoviePage, error)
	ListGenresFunc        func(ctx context.Context, language string) ([]provider.Genre, error)
	ListLanguagesFunc     func(ctx context.Context) ([]provider.Language, error)
}

func (m *mockCatalog) FetchMovieDetails(ctx context.Context, tmdbID int64, language string) (*provider.MovieDetails, error) {
	return m.FetchMovieDetailsFunc(ctx, tmdbID, language)
}

func (m *mockCatalog) SearchMovies(ctx context.Context, query string, page int, language string) (*provider.MoviePage, error) {
	return m.SearchMoviesFunc(ctx, query, page, language)
}

func (m *mockCatalog) ListCategory(ctx context.Context, category domain.Category, page int, language, region string) (*provider.MoviePage, error) {
	return m.ListCategoryFunc(ctx, category, page, language, region)
}

func (m *mockCatalog) DiscoverMovies(ctx context.Context, q provider.DiscoverQuery) (*provider.MoviePage, error) {
	return m.DiscoverMoviesFunc(ctx, q)
}

func (m *mockCatalog) ListGenres(ctx context.Context, language string) ([]provider.Genre, error) {
	return m.ListGenresFunc(ctx, language)
}

func (m *mockCatalog) ListLanguages(ctx context.Context) ([]provider.Language, error) {
	return m.ListLanguagesFunc(ctx)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var testToday = time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)

func newTestService(catalog *mockCatalog) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	settings := Settings{DetailsLanguage: "en-US", ListingLanguage: "en-GB", Region: "GB"}
	return NewService(logger, catalog, settings, fixedClock{t: testToday})
}

func summaries(n int) []provider.MovieSummary {
	out := make([]provider.MovieSummary, n)
	for i := range out {
		out[i] = provider.MovieSummary{ID: int64(i + 1), Title: "Movie"}
	}
	return out
}

func ptrFloat(f float64) *float64 { return &f }

// ---------------------------------------------------------------------------
// Category
// ---------------------------------------------------------------------------

func TestService_Category_NoFilters_UsesCategoryEndpoint(t *testing.T) {
	t.Parallel()

	catalog := &mockCatalog{
		ListCategoryFunc: func(_ context.Context, category domain.Category, page int, language, region string) (*provider.MoviePage, error) {
			assert.Equal(t, domain.CategoryTopRated, category)
			assert.Equal(t, 3, page)
			assert.Equal(t, "en-GB", language)
			assert.Equal(t, "GB", region)
			return &provider.MoviePage{Page: 3, Results: summaries(25)}, nil
		},
		DiscoverMoviesFunc: func(context.Context, provider.DiscoverQuery) (*provider.MoviePage, error) {
			t.Fatal("discover must not be called without filters")
			return nil, nil
		},
	}

	page, err := newTestService(catalog).Category(context.Background(), CategoryInput{Category: domain.CategoryTopRated, Page: 3})

	require.NoError(t, err)
	assert.Len(t, page.Results, MaxResults)
}

func TestService_Category_WithFilters_UsesDiscover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  CategoryInput
		verify func(t *testing.T, q provider.DiscoverQuery)
	}{
		{
			name:  "popular",
			input: CategoryInput{Category: domain.CategoryPopular, Page: 1, Genres: []int{28}},
			verify: func(t *testing.T, q provider.DiscoverQuery) {
				assert.Equal(t, "popularity.desc", q.SortBy)
				assert.Equal(t, []int{28}, q.Genres)
				assert.Equal(t, "28", q.Values().Get("with_genres"))
				assert.Empty(t, q.ReleaseDateGTE)
			},
		},
		{
			name:  "any genre",
			input: CategoryInput{Category: domain.CategoryPopular, Page: 1, Genres: []int{28, 12}, GenresAny: true},
			verify: func(t *testing.T, q provider.DiscoverQuery) {
				assert.True(t, q.GenresAny)
				assert.Equal(t, "28|12", q.Values().Get("with_genres"))
			},
		},
		{
			name:  "top-rated",
			input: CategoryInput{Category: domain.CategoryTopRated, Page: 1, VoteAverageGTE: ptrFloat(7)},
			verify: func(t *testing.T, q provider.DiscoverQuery) {
				assert.Equal(t, "vote_average.desc", q.SortBy)
				assert.Equal(t, 200, q.VoteCountGTE)
				require.NotNil(t, q.VoteAverageGTE)
				assert.InDelta(t, 7.0, *q.VoteAverageGTE, 0.0001)
			},
		},
		{
			name:  "now-playing",
			input: CategoryInput{Category: domain.CategoryNowPlaying, Page: 2, OriginalLanguage: "fr"},
			verify: func(t *testing.T, q provider.DiscoverQuery) {
				assert.Equal(t, "popularity.desc", q.SortBy)
				assert.Equal(t, "2026-09-19", q.ReleaseDateGTE)
				assert.Equal(t, "2026-10-19", q.ReleaseDateLTE)
				assert.Equal(t, "GB", q.Region)
				assert.Equal(t, "fr", q.OriginalLanguage)
				assert.Equal(t, 2, q.Page)
			},
		},
		{
			name:  "upcoming",
			input: CategoryInput{Category: domain.CategoryUpcoming, Page: 1, Genres: []int{12}, Region: "US"},
			verify: func(t *testing.T, q provider.DiscoverQuery) {
				assert.Equal(t, "primary_release_date.asc", q.SortBy)
				assert.Equal(t, "2026-10-19", q.ReleaseDateGTE)
				assert.Equal(t, []int{2, 3}, q.ReleaseTypes)
				assert.Equal(t, "US", q.Region)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got provider.DiscoverQuery
			catalog := &mockCatalog{
				DiscoverMoviesFunc: func(_ context.Context, q provider.DiscoverQuery) (*provider.MoviePage, error) {
					got = q
					return &provider.MoviePage{Results: []provider.MovieSummary{}}, nil
				},
			}

			_, err := newTestService(catalog).Category(context.Background(), tt.input)

			require.NoError(t, err)
			assert.Equal(t, "en-GB", got.Language)
			tt.verify(t, got)
		})
	}
}

func TestService_Category_Upcoming_FiltersAndSorts(t *testing.T) {
	t.Parallel()

	catalog := &mockCatalog{
		ListCategoryFunc: func(context.Context, domain.Category, int, string, string) (*provider.MoviePage, error) {
			return &provider.MoviePage{Page: 1, Results: []provider.MovieSummary{
				{ID: 1, ReleaseDate: "2026-12-01"},
				{ID: 2, ReleaseDate: "2026-10-18"},
				{ID: 3, ReleaseDate: "2026-10-19"},
				{ID: 4, ReleaseDate: ""},
				{ID: 5, ReleaseDate: "2026-11-05"},
				{ID: 6, ReleaseDate: "not-a-date"},
			}}, nil
		},
	}

	page, err := newTestService(catalog).Category(context.Background(), CategoryInput{Category: domain.CategoryUpcoming, Page: 1})

	require.NoError(t, err)
	ids := make([]int64, len(page.Results))
	for i, m := range page.Results {
		ids[i] = m.ID
	}
	assert.Equal(t, []int64{3, 5, 1}, ids)
}

func TestService_Category_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input CategoryInput
		field string
	}{
		{"unknown category", CategoryInput{Category: "classics", Page: 1}, "category"},
		{"page zero", CategoryInput{Category: domain.CategoryPopular, Page: 0}, "page"},
		{"page too high", CategoryInput{Category: domain.CategoryPopular, Page: 501}, "page"},
		{"vote gte out of range", CategoryInput{Category: domain.CategoryPopular, Page: 1, VoteAverageGTE: ptrFloat(11)}, "vote_average_gte"},
		{"vote bounds inverted", CategoryInput{Category: domain.CategoryPopular, Page: 1, VoteAverageGTE: ptrFloat(8), VoteAverageLTE: ptrFloat(5)}, "vote_average_gte"},
		{"bad language", CategoryInput{Category: domain.CategoryPopular, Page: 1, OriginalLanguage: "English"}, "with_original_language"},
		{"bad genre", CategoryInput{Category: domain.CategoryPopular, Page: 1, Genres: []int{0}}, "with_genres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := newTestService(&mockCatalog{}).Category(context.Background(), tt.input)

			require.ErrorIs(t, err, domain.ErrValidation)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Errors[0].Field)
		})
	}
}

func TestService_Category_UpstreamError(t *testing.T) {
	t.Parallel()

	catalog := &mockCatalog{
		ListCategoryFunc: func(context.Context, domain.Category, int, string, string) (*provider.MoviePage, error) {
			return nil, domain.ErrUpstream
		},
	}

	_, err := newTestService(catalog).Popular(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrUpstream)
}

// ---------------------------------------------------------------------------
// Search / Details / Lookups
// ---------------------------------------------------------------------------

func TestService_Search(t *testing.T) {
	t.Parallel()

	catalog := &mockCatalog{
		SearchMoviesFunc: func(_ context.Context, query string, page int, language string) (*provider.MoviePage, error) {
			assert.Equal(t, "fight club", query)
			assert.Equal(t, 1, page)
			assert.Equal(t, "en-GB", language)
			return &provider.MoviePage{Results: summaries(30)}, nil
		},
	}

	page, err := newTestService(catalog).Search(context.Background(), SearchInput{Query: "  fight club ", Page: 1})

	require.NoError(t, err)
	assert.Len(t, page.Results, MaxResults)
}

func TestService_Search_EmptyQuery(t *testing.T) {
	t.Parallel()

	_, err := newTestService(&mockCatalog{}).Search(context.Background(), SearchInput{Query: "   ", Page: 1})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "query is required", ve.Errors[0].Message)
}

func TestService_Details(t *testing.T) {
	t.Parallel()

	catalog := &mockCatalog{
		FetchMovieDetailsFunc: func(_ context.Context, tmdbID int64, language string) (*provider.MovieDetails, error) {
			assert.Equal(t, "en-US", language)
			if tmdbID == 550 {
				return &provider.MovieDetails{MovieSummary: provider.MovieSummary{ID: 550, Title: "Fight Club"}}, nil
			}
			return nil, nil
		},
	}
	svc := newTestService(catalog)

	got, err := svc.Details(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, "Fight Club", got.Title)

	_, err = svc.Details(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Details(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Lookups(t *testing.T) {
	t.Parallel()

	catalog := &mockCatalog{
		ListGenresFunc: func(_ context.Context, language string) ([]provider.Genre, error) {
			assert.Equal(t, "en-GB", language)
			return []provider.Genre{{ID: 28, Name: "Action"}}, nil
		},
		ListLanguagesFunc: func(context.Context) ([]provider.Language, error) {
			return nil, domain.ErrUpstream
		},
	}
	svc := newTestService(catalog)

	genres, err := svc.Genres(context.Background())
	require.NoError(t, err)
	assert.Len(t, genres, 1)

	_, err = svc.Languages(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
