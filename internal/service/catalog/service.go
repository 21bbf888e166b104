// Package catalog serves public movie browsing: listings, search, details
// and lookups, proxied from the external catalog.
package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/internal/provider"
)

// MaxResults caps every listing returned to clients.
const MaxResults = 20

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type catalogProvider interface {
	FetchMovieDetails(ctx context.Context, tmdbID int64, language string) (*provider.MovieDetails, error)
	SearchMovies(ctx context.Context, query string, page int, language string) (*provider.MoviePage, error)
	ListCategory(ctx context.Context, category domain.Category, page int, language, region string) (*provider.MoviePage, error)
	DiscoverMovies(ctx context.Context, q provider.DiscoverQuery) (*provider.MoviePage, error)
	ListGenres(ctx context.Context, language string) ([]provider.Genre, error)
	ListLanguages(ctx context.Context) ([]provider.Language, error)
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Settings selects the catalog language and region for outbound requests.
type Settings struct {
	DetailsLanguage string
	ListingLanguage string
	Region          string
}

// Service implements public catalog browsing on top of the external catalog.
type Service struct {
	log      *slog.Logger
	catalog  catalogProvider
	settings Settings
	clock    clock
}

// NewService creates a new catalog service. A nil clk uses wall-clock time.
func NewService(logger *slog.Logger, catalog catalogProvider, settings Settings, clk clock) *Service {
	if clk == nil {
		clk = systemClock{}
	}
	return &Service{
		log:      logger.With("service", "catalog"),
		catalog:  catalog,
		settings: settings,
		clock:    clk,
	}
}
