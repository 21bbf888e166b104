package interaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
)

// RateMovie stores the caller's score for a movie. An existing review on the
// same movie takes the new score too, and any score above zero marks the
// movie watched. All writes share one transaction.
func (s *Service) RateMovie(ctx context.Context, input RateInput) (*domain.Rating, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	movie, err := s.EnsureMovie(ctx, input.TMDBID)
	if err != nil {
		return nil, err
	}

	score := *input.Rating

	var rating *domain.Rating
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		if score < domain.MinReviewRating {
			reviewed, err := s.reviews.ExistsForPair(txCtx, userID, movie.ID)
			if err != nil {
				return err
			}
			if reviewed {
				return domain.NewValidationError("rating", "must be between 1 and 5 while a review exists")
			}
		}

		rating, err = s.ratings.Upsert(txCtx, userID, movie.ID, score)
		if err != nil {
			return err
		}

		if _, err := s.reviews.SyncScore(txCtx, userID, movie.ID, score); err != nil {
			return err
		}

		if score > 0 {
			if _, err := s.memberships.Add(txCtx, domain.MembershipWatched, userID, movie.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rate movie: %w", err)
	}

	s.log.InfoContext(ctx, "movie rated",
		slog.String("user_id", userID.String()),
		slog.Int64("tmdb_id", input.TMDBID),
		slog.Int("score", score),
	)
	return rating, nil
}

// GetRating returns the caller's score for a movie, or nil if the caller has
// not rated it. It never mirrors the movie.
func (s *Service) GetRating(ctx context.Context, tmdbID int64) (*int, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if tmdbID <= 0 {
		return nil, domain.NewValidationError("movie_id", "must be a positive integer")
	}

	rating, err := s.ratings.GetByTMDBID(ctx, userID, tmdbID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}

	score := rating.Score
	return &score, nil
}
