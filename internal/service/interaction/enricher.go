package interaction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/moviedeck-backend/internal/provider"
)

// ErrEnrichmentUnavailable means genres could not be obtained in time. It is
// distinct from a successful lookup that found no genres.
var ErrEnrichmentUnavailable = errors.New("genre enrichment unavailable")

// GenreEnricher attaches catalog genres to movies by external id.
type GenreEnricher interface {
	EnrichGenres(ctx context.Context, tmdbIDs []int64) (map[int64][]provider.Genre, error)
}

// CatalogGenreEnricher looks genres up through movie details, a bounded
// number of requests at a time, under one deadline for the whole batch.
type CatalogGenreEnricher struct {
	catalog     catalogProvider
	language    string
	timeout     time.Duration
	concurrency int
}

// NewCatalogGenreEnricher creates a CatalogGenreEnricher.
func NewCatalogGenreEnricher(catalog catalogProvider, language string, timeout time.Duration, concurrency int) *CatalogGenreEnricher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &CatalogGenreEnricher{
		catalog:     catalog,
		language:    language,
		timeout:     timeout,
		concurrency: concurrency,
	}
}

// EnrichGenres returns genres keyed by external id. Any failure or the
// deadline expiring yields ErrEnrichmentUnavailable and no partial result.
func (e *CatalogGenreEnricher) EnrichGenres(ctx context.Context, tmdbIDs []int64) (map[int64][]provider.Genre, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var (
		mu  sync.Mutex
		out = make(map[int64][]provider.Genre, len(tmdbIDs))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	seen := make(map[int64]struct{}, len(tmdbIDs))
	for _, id := range tmdbIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		g.Go(func() error {
			details, err := e.catalog.FetchMovieDetails(gctx, id, e.language)
			if err != nil {
				return fmt.Errorf("movie %d: %w", id, err)
			}

			genres := []provider.Genre{}
			if details != nil && details.Genres != nil {
				genres = details.Genres
			}

			mu.Lock()
			out[id] = genres
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnrichmentUnavailable, err)
	}
	return out, nil
}
