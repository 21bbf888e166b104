package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rating scores are integers in [MinRating, MaxRating]. A zero rating is
// stored but does not mark the movie watched. Reviews must carry a score, so
// they start at MinReviewRating.
const (
	MinRating       = 0
	MaxRating       = 5
	MinReviewRating = 1

	MaxReviewCommentLength = 5000
	MaxCommentLength       = 2000
)

// Rating is a user's score for a movie. Unique per (user, movie).
type Rating struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	MovieID   uuid.UUID
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Review is a scored free-text opinion. Unique per (user, movie).
type Review struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	MovieID   uuid.UUID
	Score     int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewView is a review as shown on a movie page.
type ReviewView struct {
	Review
	Username      string
	LikesCount    int
	CommentsCount int
	LikedByViewer bool
}

// ReviewComment is a reply on a review. Many per (user, review).
type ReviewComment struct {
	ID        uuid.UUID
	ReviewID  uuid.UUID
	UserID    uuid.UUID
	Username  string
	Content   string
	CreatedAt time.Time
}

// UserReviewEntry is one row of the caller's merged reviews and bare ratings.
type UserReviewEntry struct {
	Kind      UserReviewKind
	ReviewID  *uuid.UUID
	Movie     Movie
	Score     int
	Comment   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateRating checks a score submitted to the rate endpoint.
func ValidateRating(field string, score int) error {
	if score < MinRating || score > MaxRating {
		return NewValidationError(field, "must be between 0 and 5")
	}
	return nil
}

// ValidateReviewRating checks a score submitted with a review.
func ValidateReviewRating(field string, score int) error {
	if score == 0 {
		return NewValidationError(field, "score is required")
	}
	if score < MinReviewRating || score > MaxRating {
		return NewValidationError(field, "must be between 1 and 5")
	}
	return nil
}
