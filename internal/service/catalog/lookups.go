package catalog

import (
	"context"
	"fmt"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/internal/provider"
)

// Details returns a single movie from the external catalog.
func (s *Service) Details(ctx context.Context, tmdbID int64) (*provider.MovieDetails, error) {
	if tmdbID <= 0 {
		return nil, domain.NewValidationError("id", "must be a positive integer")
	}

	details, err := s.catalog.FetchMovieDetails(ctx, tmdbID, s.settings.DetailsLanguage)
	if err != nil {
		return nil, fmt.Errorf("fetch movie %d: %w", tmdbID, err)
	}
	if details == nil {
		return nil, domain.ErrMovieNotFound
	}
	return details, nil
}

// Genres returns the catalog's movie genres.
func (s *Service) Genres(ctx context.Context) ([]provider.Genre, error) {
	genres, err := s.catalog.ListGenres(ctx, s.settings.ListingLanguage)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return genres, nil
}

// Languages returns the catalog's languages.
func (s *Service) Languages(ctx context.Context) ([]provider.Language, error) {
	languages, err := s.catalog.ListLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	return languages, nil
}
