// Package review implements reviews, review likes and review comments using
// PostgreSQL. Deleting a review cascades to its likes and comments through
// foreign keys.
package review

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

var reviewColumns = []string{"id", "user_id", "movie_id", "score", "comment", "created_at", "updated_at"}

const reviewReturning = "RETURNING id, user_id, movie_id, score, comment, created_at, updated_at"

// Repo provides review persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new review repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Row is the scan target for a reviews row.
type Row struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	MovieID   uuid.UUID `db:"movie_id"`
	Score     int       `db:"score"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r Row) toDomain() domain.Review {
	return domain.Review{
		ID:        r.ID,
		UserID:    r.UserID,
		MovieID:   r.MovieID,
		Score:     r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Upsert stores the review for (user, movie), replacing score and comment of
// an existing one.
func (r *Repo) Upsert(ctx context.Context, userID, movieID uuid.UUID, score int, comment string) (*domain.Review, error) {
	query, args, err := postgres.Builder.
		Insert("reviews").
		Columns("id", "user_id", "movie_id", "score", "comment").
		Values(uuid.New(), userID, movieID, score, comment).
		Suffix("ON CONFLICT (user_id, movie_id) DO UPDATE SET score = EXCLUDED.score, comment = EXCLUDED.comment, updated_at = now()").
		Suffix(reviewReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert review: %w", err)
	}

	return r.getWith(ctx, query, args, "review", movieID)
}

// Update overwrites score and comment of a review by id.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, score int, comment string) (*domain.Review, error) {
	query, args, err := postgres.Builder.
		Update("reviews").
		Set("score", score).
		Set("comment", comment).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(reviewReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update review: %w", err)
	}

	return r.getWith(ctx, query, args, "review", id)
}

// SyncScore sets the score of the review on (user, movie), if there is one.
// Reports whether a review was updated.
func (r *Repo) SyncScore(ctx context.Context, userID, movieID uuid.UUID, score int) (bool, error) {
	query, args, err := postgres.Builder.
		Update("reviews").
		Set("score", score).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"user_id": userID, "movie_id": movieID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build sync review score: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return false, postgres.MapError(err, "review", movieID)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a review; its likes and comments go with it.
// Returns domain.ErrNotFound if nothing was deleted.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder.
		Delete("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete review: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "review", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a review by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	query, args, err := postgres.Builder.
		Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build review query: %w", err)
	}

	return r.getWith(ctx, query, args, "review", id)
}

// ExistsForPair reports whether the user has reviewed the movie.
func (r *Repo) ExistsForPair(ctx context.Context, userID, movieID uuid.UUID) (bool, error) {
	var exists bool
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE user_id = $1 AND movie_id = $2)`,
		userID, movieID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("review exists: %w", err)
	}
	return exists, nil
}

func (r *Repo) getWith(ctx context.Context, query string, args []any, entity string, key any) (*domain.Review, error) {
	var row Row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, key)
	}
	rv := row.toDomain()
	return &rv, nil
}

const listByMovieSQL = `
SELECT
    r.id, r.user_id, r.movie_id, r.score, r.comment, r.created_at, r.updated_at,
    u.username,
    (SELECT count(*) FROM review_likes l WHERE l.review_id = r.id)    AS likes_count,
    (SELECT count(*) FROM review_comments c WHERE c.review_id = r.id) AS comments_count,
    EXISTS (SELECT 1 FROM review_likes l WHERE l.review_id = r.id AND l.user_id = $2) AS liked_by_viewer
FROM reviews r
JOIN users u ON u.id = r.user_id
WHERE r.movie_id = $1
ORDER BY r.created_at DESC, r.id`

type reviewViewRow struct {
	Row
	Username      string `db:"username"`
	LikesCount    int    `db:"likes_count"`
	CommentsCount int    `db:"comments_count"`
	LikedByViewer bool   `db:"liked_by_viewer"`
}

// ListByMovie returns a movie's reviews newest first with author name, like
// and comment counts. viewerID may be uuid.Nil for anonymous callers, in which
// case LikedByViewer is always false.
func (r *Repo) ListByMovie(ctx context.Context, movieID, viewerID uuid.UUID) ([]domain.ReviewView, error) {
	var rows []reviewViewRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, listByMovieSQL, movieID, viewerID); err != nil {
		return nil, fmt.Errorf("list reviews for movie %s: %w", movieID, err)
	}

	views := make([]domain.ReviewView, len(rows))
	for i, row := range rows {
		views[i] = domain.ReviewView{
			Review:        row.Row.toDomain(),
			Username:      row.Username,
			LikesCount:    row.LikesCount,
			CommentsCount: row.CommentsCount,
			LikedByViewer: row.LikedByViewer,
		}
	}
	return views, nil
}

type userReviewRow struct {
	movie.Row
	ReviewID        uuid.UUID `db:"review_id"`
	Score           int       `db:"score"`
	Comment         string    `db:"comment"`
	ReviewCreatedAt time.Time `db:"review_created_at"`
	ReviewUpdatedAt time.Time `db:"review_updated_at"`
}

// ListByUser returns the user's reviews with their movies, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserReviewEntry, error) {
	cols := make([]string, 0, len(movie.Columns)+5)
	for _, c := range movie.Columns {
		cols = append(cols, "m."+c)
	}
	cols = append(cols,
		"r.id AS review_id", "r.score", "r.comment",
		"r.created_at AS review_created_at", "r.updated_at AS review_updated_at",
	)

	query, args, err := postgres.Builder.
		Select(cols...).
		From("reviews r").
		Join("movies m ON m.id = r.movie_id").
		Where(squirrel.Eq{"r.user_id": userID}).
		OrderBy("r.updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user reviews query: %w", err)
	}

	var rows []userReviewRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list reviews for user %s: %w", userID, err)
	}

	entries := make([]domain.UserReviewEntry, len(rows))
	for i, row := range rows {
		reviewID := row.ReviewID
		comment := row.Comment
		entries[i] = domain.UserReviewEntry{
			Kind:      domain.UserReviewKindReview,
			ReviewID:  &reviewID,
			Movie:     row.Row.ToDomain(),
			Score:     row.Score,
			Comment:   &comment,
			CreatedAt: row.ReviewCreatedAt,
			UpdatedAt: row.ReviewUpdatedAt,
		}
	}
	return entries, nil
}
