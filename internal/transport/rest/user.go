package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/internal/service/user"
)

type userService interface {
	Profile(ctx context.Context) (*user.Profile, error)
	Reviews(ctx context.Context) ([]domain.UserReviewEntry, error)
}

// UserHandler serves /api/user/profile and /api/user/reviews.
type UserHandler struct {
	errorWriter
	svc userService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		errorWriter: errorWriter{log: logger.With("handler", "user")},
		svc:         svc,
	}
}

// Profile handles GET /api/user/profile.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Profile(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		userResponse:   toUserResponse(p.User),
		WatchlistCount: p.Stats.WatchlistCount,
		FavoritesCount: p.Stats.FavoritesCount,
		WatchedCount:   p.Stats.WatchedCount,
		LikesCount:     p.Stats.LikesCount,
		RatingsCount:   p.Stats.RatingsCount,
		ReviewsCount:   p.Stats.ReviewsCount,
	})
}

// Reviews handles GET /api/user/reviews.
func (h *UserHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Reviews(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserReviews(entries))
}
