// Package user serves the signed-in user's profile and review history.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
)

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Stats(ctx context.Context, userID uuid.UUID) (domain.UserStats, error)
}

type reviewRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserReviewEntry, error)
}

type ratingRepo interface {
	ListBareByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserReviewEntry, error)
}

// Service implements profile operations.
type Service struct {
	log     *slog.Logger
	users   userRepo
	reviews reviewRepo
	ratings ratingRepo
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, users userRepo, reviews reviewRepo, ratings ratingRepo) *Service {
	return &Service{
		log:     logger.With("service", "user"),
		users:   users,
		reviews: reviews,
		ratings: ratings,
	}
}
