package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Username and email are unique and
// compared case-sensitively.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserStats holds per-user counters shown on the profile page.
type UserStats struct {
	WatchlistCount int
	FavoritesCount int
	WatchedCount   int
	LikesCount     int
	RatingsCount   int
	ReviewsCount   int
}
