package rest

import (
	"net/http"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/internal/transport/middleware"
)

// Handlers groups every REST handler for NewRouter.
type Handlers struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	Catalog     *CatalogHandler
	Interaction *InteractionHandler
	User        *UserHandler
}

// RouteMiddleware holds the per-route middleware.
type RouteMiddleware struct {
	RequireAuth  middleware.Middleware
	OptionalAuth middleware.Middleware
	AuthLimit    middleware.Middleware
}

// NewRouter registers all routes on a fresh ServeMux. Global middleware is
// applied by the caller.
func NewRouter(h Handlers, mw RouteMiddleware) *http.ServeMux {
	mux := http.NewServeMux()

	authed := func(fn http.HandlerFunc) http.Handler { return mw.RequireAuth(fn) }

	// Health
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	// Auth
	mux.Handle("POST /api/auth/register", mw.AuthLimit(http.HandlerFunc(h.Auth.Register)))
	mux.Handle("POST /api/auth/login", mw.AuthLimit(http.HandlerFunc(h.Auth.Login)))
	mux.Handle("GET /api/auth/me", authed(h.Auth.Me))

	// Catalog (public)
	mux.HandleFunc("GET /api/movie/popular", h.Catalog.Popular)
	mux.HandleFunc("GET /api/movie/search", h.Catalog.Search)
	mux.HandleFunc("GET /api/movie/genres", h.Catalog.Genres)
	mux.HandleFunc("GET /api/movie/languages", h.Catalog.Languages)
	mux.HandleFunc("GET /api/movie/{id}", h.Catalog.Details)

	// GET /api/movie/category/{category} and GET /api/movie/{id}/{view} overlap,
	// which ServeMux rejects, so one pattern serves both.
	mux.Handle("GET /api/movie/{id}/{view}", movieViews(h, map[string]http.Handler{
		"rating":  authed(h.Interaction.Rating),
		"status":  authed(h.Interaction.Status),
		"reviews": mw.OptionalAuth(http.HandlerFunc(h.Interaction.MovieReviews)),
	}))

	// Per-movie writes
	mux.Handle("POST /api/movie/{id}/rate", authed(h.Interaction.Rate))
	mux.Handle("POST /api/movie/{id}/watchlist", authed(h.Interaction.ToggleWatchlist))
	mux.Handle("POST /api/movie/{id}/reviews", authed(h.Interaction.SubmitReview))

	// Reviews
	mux.Handle("PUT /api/movie/reviews/{id}", authed(h.Interaction.UpdateReview))
	mux.Handle("DELETE /api/movie/reviews/{id}", authed(h.Interaction.DeleteReview))
	mux.Handle("POST /api/movie/reviews/{id}/like", authed(h.Interaction.LikeReview))
	mux.HandleFunc("GET /api/movie/reviews/{id}/comments", h.Interaction.Comments)
	mux.Handle("POST /api/movie/reviews/{id}/comments", authed(h.Interaction.AddComment))

	// Membership sets
	for _, kind := range domain.AllMembershipKinds() {
		path := "/api/user/" + kind.String()
		mux.Handle("GET "+path, authed(h.Interaction.ListSet(kind)))
		mux.Handle("POST "+path, authed(h.Interaction.ToggleSet(kind)))
	}

	// Profile
	mux.Handle("GET /api/user/profile", authed(h.User.Profile))
	mux.Handle("GET /api/user/reviews", authed(h.User.Reviews))

	return mux
}

func movieViews(h Handlers, views map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "category" {
			r.SetPathValue("category", r.PathValue("view"))
			h.Catalog.Category(w, r)
			return
		}
		next, ok := views[r.PathValue("view")]
		if !ok {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		next.ServeHTTP(w, r)
	})
}
