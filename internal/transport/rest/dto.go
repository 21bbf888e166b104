package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/internal/provider"
	"github.com/heartmarshall/moviedeck-backend/internal/service/interaction"
)

// ---------------------------------------------------------------------------
// Requests. Pointer fields distinguish "missing" from "zero".
// ---------------------------------------------------------------------------

type registerRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type loginRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type rateRequest struct {
	Rating *int `json:"rating"`
}

type reviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type commentRequest struct {
	Content *string `json:"content"`
}

type toggleRequest struct {
	MovieID *int64 `json:"movie_id"`
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

type profileResponse struct {
	userResponse
	WatchlistCount int `json:"watchlist_count"`
	FavoritesCount int `json:"favorites_count"`
	WatchedCount   int `json:"watched_count"`
	LikesCount     int `json:"likes_count"`
	RatingsCount   int `json:"ratings_count"`
	ReviewsCount   int `json:"reviews_count"`
}

type rateResponse struct {
	Success bool `json:"success"`
	Rating  int  `json:"rating"`
}

type ratingResponse struct {
	Rating *int `json:"rating"`
}

type statusResponse struct {
	InWatchlist bool `json:"in_watchlist"`
	InFavorites bool `json:"in_favorites"`
	InWatched   bool `json:"in_watched"`
	InLikes     bool `json:"in_likes"`
	Rating      *int `json:"rating"`
}

type toggleResponse struct {
	Added   bool   `json:"added"`
	Message string `json:"message"`
}

type reviewResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type reviewViewResponse struct {
	reviewResponse
	Username      string `json:"username"`
	LikesCount    int    `json:"likes_count"`
	CommentsCount int    `json:"comments_count"`
	LikedByViewer bool   `json:"liked_by_viewer"`
}

type submitReviewResponse struct {
	Success bool            `json:"success"`
	Rating  int             `json:"rating"`
	Review  *reviewResponse `json:"review"`
}

type likeResponse struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

type commentResponse struct {
	ID        uuid.UUID `json:"id"`
	ReviewID  uuid.UUID `json:"review_id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type movieItemResponse struct {
	ID              int64            `json:"id"`
	Title           string           `json:"title"`
	Overview        string           `json:"overview"`
	PosterPath      string           `json:"poster_path"`
	VoteAverage     float64          `json:"vote_average"`
	AddedAt         time.Time        `json:"added_at"`
	GenresAvailable bool             `json:"genres_available"`
	Genres          []provider.Genre `json:"genres"`
}

type movieRefResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
}

type userReviewResponse struct {
	Kind      domain.UserReviewKind `json:"kind"`
	ReviewID  *uuid.UUID            `json:"review_id"`
	Movie     movieRefResponse      `json:"movie"`
	Rating    int                   `json:"rating"`
	Comment   *string               `json:"comment"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// ---------------------------------------------------------------------------
// Converters
// ---------------------------------------------------------------------------

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toReviewResponse(r *domain.Review) reviewResponse {
	return reviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		Rating:    r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toReviewViews(views []domain.ReviewView) []reviewViewResponse {
	out := make([]reviewViewResponse, 0, len(views))
	for i := range views {
		v := &views[i]
		out = append(out, reviewViewResponse{
			reviewResponse: toReviewResponse(&v.Review),
			Username:       v.Username,
			LikesCount:     v.LikesCount,
			CommentsCount:  v.CommentsCount,
			LikedByViewer:  v.LikedByViewer,
		})
	}
	return out
}

func toCommentResponse(c domain.ReviewComment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		ReviewID:  c.ReviewID,
		UserID:    c.UserID,
		Username:  c.Username,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func toMovieItems(items []interaction.MovieItem) []movieItemResponse {
	out := make([]movieItemResponse, 0, len(items))
	for _, it := range items {
		resp := movieItemResponse{
			ID:              it.TMDBID,
			Title:           it.Title,
			Overview:        it.Overview,
			PosterPath:      it.PosterPath,
			VoteAverage:     it.VoteAverage,
			AddedAt:         it.AddedAt,
			GenresAvailable: it.GenresAvailable,
		}
		// null genres means "unknown", [] means "none".
		if it.GenresAvailable {
			resp.Genres = it.Genres
			if resp.Genres == nil {
				resp.Genres = []provider.Genre{}
			}
		}
		out = append(out, resp)
	}
	return out
}

func toUserReviews(entries []domain.UserReviewEntry) []userReviewResponse {
	out := make([]userReviewResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, userReviewResponse{
			Kind:     e.Kind,
			ReviewID: e.ReviewID,
			Movie: movieRefResponse{
				ID:          e.Movie.TMDBID,
				Title:       e.Movie.Title,
				Overview:    e.Movie.Overview,
				PosterPath:  e.Movie.PosterPath,
				VoteAverage: e.Movie.VoteAverage,
			},
			Rating:    e.Score,
			Comment:   e.Comment,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		})
	}
	return out
}
