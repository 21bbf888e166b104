package interaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/pkg/ctxutil"
)

// EnsureMovie returns the local mirror of an external movie, creating it from
// the catalog on first use. The catalog call happens outside any transaction;
// the insert is a single upsert, so concurrent callers converge on one row.
func (s *Service) EnsureMovie(ctx context.Context, tmdbID int64) (*domain.Movie, error) {
	if tmdbID <= 0 {
		return nil, domain.NewValidationError("movie_id", "must be a positive integer")
	}

	existing, err := s.movies.GetByTMDBID(ctx, tmdbID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get movie by tmdb id: %w", err)
	}

	details, err := s.catalog.FetchMovieDetails(ctx, tmdbID, s.language)
	if err != nil {
		s.log.ErrorContext(ctx, "catalog details error",
			slog.Int64("tmdb_id", tmdbID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("fetch movie details: %w", err)
	}
	if details == nil {
		return nil, domain.ErrMovieNotFound
	}

	movie, err := s.movies.GetOrCreate(ctx, domain.Movie{
		TMDBID:      tmdbID,
		Title:       details.Title,
		Overview:    details.Overview,
		PosterPath:  details.PosterPath,
		VoteAverage: details.VoteAverage,
	})
	if err != nil {
		return nil, fmt.Errorf("mirror movie: %w", err)
	}

	s.log.InfoContext(ctx, "movie mirrored",
		slog.Int64("tmdb_id", tmdbID),
		slog.String("movie_id", movie.ID.String()),
	)
	return movie, nil
}

// findMovie returns the mirror row if it exists, without touching the catalog.
func (s *Service) findMovie(ctx context.Context, tmdbID int64) (*domain.Movie, error) {
	movie, err := s.movies.GetByTMDBID(ctx, tmdbID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get movie by tmdb id: %w", err)
	}
	return movie, nil
}

func currentUser(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}
