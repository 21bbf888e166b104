// Package interaction records what users do with movies: set membership,
// ratings, reviews and the social layer on reviews. Every movie-scoped write
// first makes sure the movie is mirrored locally.
package interaction

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/internal/provider"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type movieRepo interface {
	GetByTMDBID(ctx context.Context, tmdbID int64) (*domain.Movie, error)
	GetOrCreate(ctx context.Context, m domain.Movie) (*domain.Movie, error)
}

type membershipRepo interface {
	Add(ctx context.Context, kind domain.MembershipKind, userID, movieID uuid.UUID) (bool, error)
	Remove(ctx context.Context, kind domain.MembershipKind, userID, movieID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, kind domain.MembershipKind, userID uuid.UUID) ([]domain.MembershipItem, error)
	Status(ctx context.Context, userID, movieID uuid.UUID) (domain.MembershipStatus, error)
}

type ratingRepo interface {
	Upsert(ctx context.Context, userID, movieID uuid.UUID, score int) (*domain.Rating, error)
	GetByTMDBID(ctx context.Context, userID uuid.UUID, tmdbID int64) (*domain.Rating, error)
}

type reviewRepo interface {
	Upsert(ctx context.Context, userID, movieID uuid.UUID, score int, comment string) (*domain.Review, error)
	Update(ctx context.Context, id uuid.UUID, score int, comment string) (*domain.Review, error)
	SyncScore(ctx context.Context, userID, movieID uuid.UUID, score int) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	ExistsForPair(ctx context.Context, userID, movieID uuid.UUID) (bool, error)
	ListByMovie(ctx context.Context, movieID, viewerID uuid.UUID) ([]domain.ReviewView, error)
	AddLike(ctx context.Context, userID, reviewID uuid.UUID) error
	RemoveLike(ctx context.Context, userID, reviewID uuid.UUID) (bool, error)
	CountLikes(ctx context.Context, reviewID uuid.UUID) (int, error)
	AddComment(ctx context.Context, userID, reviewID uuid.UUID, content string) (*domain.ReviewComment, error)
	ListComments(ctx context.Context, reviewID uuid.UUID) ([]domain.ReviewComment, error)
}

type catalogProvider interface {
	FetchMovieDetails(ctx context.Context, tmdbID int64, language string) (*provider.MovieDetails, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the interaction business logic.
type Service struct {
	log         *slog.Logger
	tx          txManager
	movies      movieRepo
	memberships membershipRepo
	ratings     ratingRepo
	reviews     reviewRepo
	catalog     catalogProvider
	enricher    GenreEnricher
	language    string
}

// NewService creates a new interaction service. enricher may be nil, in which
// case listings report genres as unavailable. language is used when fetching
// movie details for the mirror.
func NewService(
	logger *slog.Logger,
	tx txManager,
	movies movieRepo,
	memberships membershipRepo,
	ratings ratingRepo,
	reviews reviewRepo,
	catalog catalogProvider,
	enricher GenreEnricher,
	language string,
) *Service {
	return &Service{
		log:         logger.With("service", "interaction"),
		tx:          tx,
		movies:      movies,
		memberships: memberships,
		ratings:     ratings,
		reviews:     reviews,
		catalog:     catalog,
		enricher:    enricher,
		language:    language,
	}
}
