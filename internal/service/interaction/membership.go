package interaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/internal/provider"
)

// Toggle flips the movie's membership in one of the caller's sets: removes it
// when present, adds it otherwise.
func (s *Service) Toggle(ctx context.Context, kind domain.MembershipKind, tmdbID int64) (ToggleResult, error) {
	if !kind.IsValid() {
		return ToggleResult{}, domain.NewValidationError("kind", "unknown list")
	}
	userID, err := currentUser(ctx)
	if err != nil {
		return ToggleResult{}, err
	}

	movie, err := s.EnsureMovie(ctx, tmdbID)
	if err != nil {
		return ToggleResult{}, err
	}

	var result ToggleResult
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		removed, err := s.memberships.Remove(txCtx, kind, userID, movie.ID)
		if err != nil {
			return err
		}
		if removed {
			return nil
		}
		result.Added, err = s.memberships.Add(txCtx, kind, userID, movie.ID)
		return err
	})
	if err != nil {
		return ToggleResult{}, fmt.Errorf("toggle %s: %w", kind, err)
	}

	s.log.InfoContext(ctx, "membership toggled",
		slog.String("user_id", userID.String()),
		slog.String("kind", kind.String()),
		slog.Int64("tmdb_id", tmdbID),
		slog.Bool("added", result.Added),
	)
	return result, nil
}

// ListMembership returns the caller's movies in one set, most recently added
// first, with genres attached when the enricher answers in time.
func (s *Service) ListMembership(ctx context.Context, kind domain.MembershipKind) ([]MovieItem, error) {
	if !kind.IsValid() {
		return nil, domain.NewValidationError("kind", "unknown list")
	}
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.memberships.ListByUser(ctx, kind, userID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}

	items := make([]MovieItem, len(rows))
	ids := make([]int64, len(rows))
	for i, row := range rows {
		items[i] = MovieItem{
			TMDBID:      row.Movie.TMDBID,
			Title:       row.Movie.Title,
			Overview:    row.Movie.Overview,
			PosterPath:  row.Movie.PosterPath,
			VoteAverage: row.Movie.VoteAverage,
			AddedAt:     row.AddedAt,
		}
		ids[i] = row.Movie.TMDBID
	}

	s.attachGenres(ctx, items, ids)
	return items, nil
}

func (s *Service) attachGenres(ctx context.Context, items []MovieItem, ids []int64) {
	if s.enricher == nil || len(items) == 0 {
		return
	}

	genres, err := s.enricher.EnrichGenres(ctx, ids)
	if err != nil {
		s.log.WarnContext(ctx, "genre enrichment unavailable",
			slog.Int("movies", len(ids)),
			slog.String("error", err.Error()),
		)
		return
	}

	for i := range items {
		items[i].GenresAvailable = true
		items[i].Genres = genres[items[i].TMDBID]
		if items[i].Genres == nil {
			items[i].Genres = []provider.Genre{}
		}
	}
}

// MovieStatus reports which of the caller's sets contain the movie and the
// caller's rating. A movie that was never mirrored is in no set.
func (s *Service) MovieStatus(ctx context.Context, tmdbID int64) (domain.MembershipStatus, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return domain.MembershipStatus{}, err
	}
	if tmdbID <= 0 {
		return domain.MembershipStatus{}, domain.NewValidationError("movie_id", "must be a positive integer")
	}

	movie, err := s.findMovie(ctx, tmdbID)
	if err != nil || movie == nil {
		return domain.MembershipStatus{}, err
	}

	status, err := s.memberships.Status(ctx, userID, movie.ID)
	if err != nil {
		return domain.MembershipStatus{}, fmt.Errorf("movie status: %w", err)
	}
	return status, nil
}
