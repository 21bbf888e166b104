package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/internal/service/interaction"
)

type interactionService interface {
	Toggle(ctx context.Context, kind domain.MembershipKind, tmdbID int64) (interaction.ToggleResult, error)
	ListMembership(ctx context.Context, kind domain.MembershipKind) ([]interaction.MovieItem, error)
	MovieStatus(ctx context.Context, tmdbID int64) (domain.MembershipStatus, error)
	RateMovie(ctx context.Context, input interaction.RateInput) (*domain.Rating, error)
	GetRating(ctx context.Context, tmdbID int64) (*int, error)
	SubmitReview(ctx context.Context, input interaction.ReviewInput) (*interaction.ReviewResult, error)
	UpdateReview(ctx context.Context, input interaction.UpdateReviewInput) (*domain.Review, error)
	DeleteReview(ctx context.Context, reviewID uuid.UUID) error
	GetMovieReviews(ctx context.Context, tmdbID int64) ([]domain.ReviewView, error)
	ToggleReviewLike(ctx context.Context, reviewID uuid.UUID) (interaction.LikeResult, error)
	ListComments(ctx context.Context, reviewID uuid.UUID) ([]domain.ReviewComment, error)
	AddComment(ctx context.Context, input interaction.CommentInput) (*domain.ReviewComment, error)
}

// InteractionHandler serves the per-user movie endpoints: ratings, reviews,
// review likes and comments, and the four membership sets.
type InteractionHandler struct {
	errorWriter
	svc interactionService
}

// NewInteractionHandler creates an InteractionHandler.
func NewInteractionHandler(svc interactionService, logger *slog.Logger) *InteractionHandler {
	return &InteractionHandler{
		errorWriter: errorWriter{log: logger.With("handler", "interaction")},
		svc:         svc,
	}
}

// ---------------------------------------------------------------------------
// Ratings and status
// ---------------------------------------------------------------------------

// Rate handles POST /api/movie/{id}/rate.
func (h *InteractionHandler) Rate(w http.ResponseWriter, r *http.Request) {
	id, err := pathTMDBID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	var req rateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	rating, err := h.svc.RateMovie(r.Context(), interaction.RateInput{TMDBID: id, Rating: req.Rating})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rateResponse{Success: true, Rating: rating.Score})
}

// Rating handles GET /api/movie/{id}/rating.
func (h *InteractionHandler) Rating(w http.ResponseWriter, r *http.Request) {
	id, err := pathTMDBID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	score, err := h.svc.GetRating(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ratingResponse{Rating: score})
}

// Status handles GET /api/movie/{id}/status.
func (h *InteractionHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, err := pathTMDBID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	st, err := h.svc.MovieStatus(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		InWatchlist: st.InWatchlist,
		InFavorites: st.InFavorites,
		InWatched:   st.InWatched,
		InLikes:     st.InLikes,
		Rating:      st.Rating,
	})
}

// ---------------------------------------------------------------------------
// Membership sets
// ---------------------------------------------------------------------------

// ListSet returns GET /api/user/{watchlist|favorites|watched|likes}.
func (h *InteractionHandler) ListSet(kind domain.MembershipKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.svc.ListMembership(r.Context(), kind)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toMovieItems(items))
	}
}

// ToggleSet returns POST /api/user/{watchlist|favorites|watched|likes} with
// a {movie_id} body.
func (h *InteractionHandler) ToggleSet(kind domain.MembershipKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req toggleRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.handleError(w, r, err)
			return
		}
		if req.MovieID == nil {
			h.handleError(w, r, domain.NewValidationError("movie_id", "movie_id is required"))
			return
		}
		h.toggle(w, r, kind, *req.MovieID)
	}
}

// ToggleWatchlist handles POST /api/movie/{id}/watchlist.
func (h *InteractionHandler) ToggleWatchlist(w http.ResponseWriter, r *http.Request) {
	id, err := pathTMDBID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.toggle(w, r, domain.MembershipWatchlist, id)
}

func (h *InteractionHandler) toggle(w http.ResponseWriter, r *http.Request, kind domain.MembershipKind, tmdbID int64) {
	result, err := h.svc.Toggle(r.Context(), kind, tmdbID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	msg := "Removed from " + kind.String()
	if result.Added {
		msg = "Added to " + kind.String()
	}
	writeJSON(w, http.StatusOK, toggleResponse{Added: result.Added, Message: msg})
}

// ---------------------------------------------------------------------------
// Reviews
// ---------------------------------------------------------------------------

// MovieReviews handles GET /api/movie/{id}/reviews.
func (h *InteractionHandler) MovieReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathTMDBID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	views, err := h.svc.GetMovieReviews(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewViews(views))
}

// SubmitReview handles POST /api/movie/{id}/reviews.
func (h *InteractionHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathTMDBID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	var req reviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	result, err := h.svc.SubmitReview(r.Context(), interaction.ReviewInput{
		TMDBID:  id,
		Rating:  req.Rating,
		Comment: deref(req.Comment),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := submitReviewResponse{Success: true, Rating: result.Rating.Score}
	if result.Review != nil {
		rv := toReviewResponse(result.Review)
		resp.Review = &rv
	}
	writeJSON(w, http.StatusCreated, resp)
}

// UpdateReview handles PUT /api/movie/reviews/{id}.
func (h *InteractionHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	reviewID, err := pathUUID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	var req reviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	review, err := h.svc.UpdateReview(r.Context(), interaction.UpdateReviewInput{
		ReviewID: reviewID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewResponse(review))
}

// DeleteReview handles DELETE /api/movie/reviews/{id}.
func (h *InteractionHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID, err := pathUUID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.svc.DeleteReview(r.Context(), reviewID); err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// LikeReview handles POST /api/movie/reviews/{id}/like.
func (h *InteractionHandler) LikeReview(w http.ResponseWriter, r *http.Request) {
	reviewID, err := pathUUID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	result, err := h.svc.ToggleReviewLike(r.Context(), reviewID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, likeResponse{Liked: result.Liked, Likes: result.Likes})
}

// Comments handles GET /api/movie/reviews/{id}/comments.
func (h *InteractionHandler) Comments(w http.ResponseWriter, r *http.Request) {
	reviewID, err := pathUUID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	comments, err := h.svc.ListComments(r.Context(), reviewID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// AddComment handles POST /api/movie/reviews/{id}/comments.
func (h *InteractionHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	reviewID, err := pathUUID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	var req commentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	comment, err := h.svc.AddComment(r.Context(), interaction.CommentInput{
		ReviewID: reviewID,
		Content:  deref(req.Content),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentResponse(*comment))
}
