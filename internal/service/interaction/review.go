package interaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/pkg/ctxutil"
)

// SubmitReview stores the caller's score and, when a comment is given, the
// review text for a movie, and marks the movie watched. Without a comment an
// existing review keeps its text and takes the new score.
func (s *Service) SubmitReview(ctx context.Context, input ReviewInput) (*ReviewResult, error) {
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
	comment := strings.TrimSpace(input.Comment)

	var result ReviewResult
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		rating, err := s.ratings.Upsert(txCtx, userID, movie.ID, score)
		if err != nil {
			return err
		}
		result.Rating = *rating

		if comment != "" {
			result.Review, err = s.reviews.Upsert(txCtx, userID, movie.ID, score, comment)
			if err != nil {
				return err
			}
		} else if _, err := s.reviews.SyncScore(txCtx, userID, movie.ID, score); err != nil {
			return err
		}

		_, err = s.memberships.Add(txCtx, domain.MembershipWatched, userID, movie.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}

	s.log.InfoContext(ctx, "review submitted",
		slog.String("user_id", userID.String()),
		slog.Int64("tmdb_id", input.TMDBID),
		slog.Int("score", score),
		slog.Bool("with_comment", result.Review != nil),
	)
	return &result, nil
}

// UpdateReview edits the caller's own review and keeps the rating in step.
// Reviews by other users are reported as not found.
func (s *Service) UpdateReview(ctx context.Context, input UpdateReviewInput) (*domain.Review, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.ownReview(ctx, userID, input.ReviewID)
	if err != nil {
		return nil, err
	}

	score := existing.Score
	if input.Rating != nil {
		score = *input.Rating
	}
	comment := existing.Comment
	if input.Comment != nil {
		comment = strings.TrimSpace(*input.Comment)
	}

	var updated *domain.Review
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.reviews.Update(txCtx, existing.ID, score, comment)
		if err != nil {
			return err
		}
		_, err = s.ratings.Upsert(txCtx, userID, existing.MovieID, score)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.InfoContext(ctx, "review updated",
		slog.String("user_id", userID.String()),
		slog.String("review_id", existing.ID.String()),
	)
	return updated, nil
}

// DeleteReview removes the caller's own review together with its likes and
// comments. The rating stays.
func (s *Service) DeleteReview(ctx context.Context, reviewID uuid.UUID) error {
	userID, err := currentUser(ctx)
	if err != nil {
		return err
	}

	existing, err := s.ownReview(ctx, userID, reviewID)
	if err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, existing.ID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.InfoContext(ctx, "review deleted",
		slog.String("user_id", userID.String()),
		slog.String("review_id", reviewID.String()),
	)
	return nil
}

// GetMovieReviews lists a movie's reviews newest first. A movie that was
// never mirrored has no reviews; it is not created here. When the caller is
// authenticated each review reports whether the caller liked it.
func (s *Service) GetMovieReviews(ctx context.Context, tmdbID int64) ([]domain.ReviewView, error) {
	if tmdbID <= 0 {
		return nil, domain.NewValidationError("movie_id", "must be a positive integer")
	}

	movie, err := s.findMovie(ctx, tmdbID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return []domain.ReviewView{}, nil
	}

	viewerID := ctxutil.ViewerFromCtx(ctx)

	views, err := s.reviews.ListByMovie(ctx, movie.ID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list movie reviews: %w", err)
	}
	return views, nil
}

// ToggleReviewLike flips the caller's like on a review.
func (s *Service) ToggleReviewLike(ctx context.Context, reviewID uuid.UUID) (LikeResult, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return LikeResult{}, err
	}
	if _, err := s.getReview(ctx, reviewID); err != nil {
		return LikeResult{}, err
	}

	var result LikeResult
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		removed, err := s.reviews.RemoveLike(txCtx, userID, reviewID)
		if err != nil {
			return err
		}
		if !removed {
			if err := s.reviews.AddLike(txCtx, userID, reviewID); err != nil {
				return err
			}
			result.Liked = true
		}
		result.Likes, err = s.reviews.CountLikes(txCtx, reviewID)
		return err
	})
	if err != nil {
		return LikeResult{}, fmt.Errorf("toggle review like: %w", err)
	}
	return result, nil
}

// ListComments returns a review's comments, oldest first.
func (s *Service) ListComments(ctx context.Context, reviewID uuid.UUID) ([]domain.ReviewComment, error) {
	if _, err := s.getReview(ctx, reviewID); err != nil {
		return nil, err
	}

	comments, err := s.reviews.ListComments(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// AddComment appends the caller's comment to a review.
func (s *Service) AddComment(ctx context.Context, input CommentInput) (*domain.ReviewComment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	comment, err := s.reviews.AddComment(ctx, userID, input.ReviewID, strings.TrimSpace(input.Content))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return comment, nil
}

func (s *Service) getReview(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	if reviewID == uuid.Nil {
		return nil, domain.NewValidationError("review_id", "required")
	}

	review, err := s.reviews.GetByID(ctx, reviewID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

// ownReview loads a review and hides it from everyone but its author.
func (s *Service) ownReview(ctx context.Context, userID, reviewID uuid.UUID) (*domain.Review, error) {
	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, domain.ErrReviewNotFound
	}
	return review, nil
}
