// Package rating implements per-user movie ratings using PostgreSQL.
package rating

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/moviedeck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/moviedeck-backend/internal/adapter/postgres/movie"
	"github.com/heartmarshall/moviedeck-backend/internal/domain"
)

const ratingReturning = "RETURNING id, user_id, movie_id, score, created_at, updated_at"

// Repo provides rating persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new rating repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type ratingRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	MovieID   uuid.UUID `db:"movie_id"`
	Score     int       `db:"score"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r ratingRow) toDomain() *domain.Rating {
	return &domain.Rating{
		ID:        r.ID,
		UserID:    r.UserID,
		MovieID:   r.MovieID,
		Score:     r.Score,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Upsert stores the score for (user, movie), replacing any previous score.
func (r *Repo) Upsert(ctx context.Context, userID, movieID uuid.UUID, score int) (*domain.Rating, error) {
	query, args, err := postgres.Builder.
		Insert("ratings").
		Columns("id", "user_id", "movie_id", "score").
		Values(uuid.New(), userID, movieID, score).
		Suffix("ON CONFLICT (user_id, movie_id) DO UPDATE SET score = EXCLUDED.score, updated_at = now()").
		Suffix(ratingReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert rating: %w", err)
	}

	var row ratingRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "rating", movieID)
	}
	return row.toDomain(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByTMDBID returns the caller's rating for an external movie id without
// touching the mirror. Returns domain.ErrNotFound if there is none.
func (r *Repo) GetByTMDBID(ctx context.Context, userID uuid.UUID, tmdbID int64) (*domain.Rating, error) {
	query, args, err := postgres.Builder.
		Select("r.id", "r.user_id", "r.movie_id", "r.score", "r.created_at", "r.updated_at").
		From("ratings r").
		Join("movies m ON m.id = r.movie_id").
		Where(squirrel.Eq{"r.user_id": userID, "m.tmdb_id": tmdbID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build rating query: %w", err)
	}

	var row ratingRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "rating", tmdbID)
	}
	return row.toDomain(), nil
}

type bareRatingRow struct {
	movie.Row
	Score     int       `db:"score"`
	RatedAt   time.Time `db:"rated_at"`
	UpdatedAt time.Time `db:"rated_updated_at"`
}

// ListBareByUser returns the user's ratings that have no accompanying review,
// newest first.
func (r *Repo) ListBareByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserReviewEntry, error) {
	cols := make([]string, 0, len(movie.Columns)+3)
	for _, c := range movie.Columns {
		cols = append(cols, "m."+c)
	}
	cols = append(cols, "r.score", "r.created_at AS rated_at", "r.updated_at AS rated_updated_at")

	query, args, err := postgres.Builder.
		Select(cols...).
		From("ratings r").
		Join("movies m ON m.id = r.movie_id").
		Where(squirrel.Eq{"r.user_id": userID}).
		Where("NOT EXISTS (SELECT 1 FROM reviews v WHERE v.user_id = r.user_id AND v.movie_id = r.movie_id)").
		OrderBy("r.updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build bare ratings query: %w", err)
	}

	var rows []bareRatingRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list bare ratings: %w", err)
	}

	entries := make([]domain.UserReviewEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.UserReviewEntry{
			Kind:      domain.UserReviewKindRating,
			Movie:     row.Row.ToDomain(),
			Score:     row.Score,
			CreatedAt: row.RatedAt,
			UpdatedAt: row.UpdatedAt,
		}
	}
	return entries, nil
}
