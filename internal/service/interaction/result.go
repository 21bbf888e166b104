package interaction

import (
	"time"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/internal/provider"
)

// ToggleResult reports the membership state after a toggle.
type ToggleResult struct {
	Added bool
}

// LikeResult reports the like state of a review after a toggle.
type LikeResult struct {
	Liked bool
	Likes int
}

// ReviewResult is the outcome of submitting a review. Review is nil when the
// submission carried no comment and only the rating was stored.
type ReviewResult struct {
	Rating domain.Rating
	Review *domain.Review
}

// MovieItem is a movie in one of the caller's sets, as listed to clients.
type MovieItem struct {
	TMDBID      int64
	Title       string
	Overview    string
	PosterPath  string
	VoteAverage float64
	AddedAt     time.Time
	// GenresAvailable is false when enrichment failed or timed out; Genres is
	// then empty and must not be read as "no genres".
	GenresAvailable bool
	Genres          []provider.Genre
}
