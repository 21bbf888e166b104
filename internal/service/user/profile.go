package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/pkg/ctxutil"
)

// Profile is the user record plus per-user counters.
type Profile struct {
	User  *domain.User
	Stats domain.UserStats
}

// Profile returns the authenticated user's profile.
// Returns ErrUnauthorized if no userID is found in context or the user is gone.
func (s *Service) Profile(ctx context.Context) (*Profile, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("user.Profile: %w", err)
	}

	stats, err := s.users.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.Profile stats: %w", err)
	}

	return &Profile{User: user, Stats: stats}, nil
}

// Reviews returns the caller's written reviews and bare ratings merged,
// most recently updated first.
func (s *Service) Reviews(ctx context.Context) ([]domain.UserReviewEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	reviews, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.Reviews list reviews: %w", err)
	}
	ratings, err := s.ratings.ListBareByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.Reviews list ratings: %w", err)
	}

	entries := make([]domain.UserReviewEntry, 0, len(reviews)+len(ratings))
	entries = append(entries, reviews...)
	entries = append(entries, ratings...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})

	s.log.DebugContext(ctx, "user reviews listed",
		slog.String("user_id", userID.String()),
		slog.Int("reviews", len(reviews)),
		slog.Int("ratings", len(ratings)))

	return entries, nil
}
