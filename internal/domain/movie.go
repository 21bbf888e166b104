package domain

import (
	"time"

	"github.com/google/uuid"
)

// Movie is the local mirror of an external catalog item. TMDBID is unique;
// ID is a surrogate used only for foreign keys.
type Movie struct {
	ID          uuid.UUID
	TMDBID      int64
	Title       string
	Overview    string
	PosterPath  string
	VoteAverage float64
	CreatedAt   time.Time
}

// MembershipItem is a movie in one of the user's sets.
type MembershipItem struct {
	Movie   Movie
	AddedAt time.Time
}

// MembershipStatus reports, for one movie, which of the caller's sets contain it.
type MembershipStatus struct {
	InWatchlist bool
	InFavorites bool
	InWatched   bool
	InLikes     bool
	Rating      *int
}
