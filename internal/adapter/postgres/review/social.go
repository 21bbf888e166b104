package review

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/moviedeck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/moviedeck-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Likes
// ---------------------------------------------------------------------------

// AddLike records that the user likes the review. Idempotent.
// Returns domain.ErrNotFound if the review does not exist.
func (r *Repo) AddLike(ctx context.Context, userID, reviewID uuid.UUID) error {
	query, args, err := postgres.Builder.
		Insert("review_likes").
		Columns("id", "user_id", "review_id").
		Values(uuid.New(), userID, reviewID).
		Suffix("ON CONFLICT (user_id, review_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert review like: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "review_like", reviewID)
	}
	return nil
}

// RemoveLike deletes the user's like. Reports whether a like was removed.
func (r *Repo) RemoveLike(ctx context.Context, userID, reviewID uuid.UUID) (bool, error) {
	query, args, err := postgres.Builder.
		Delete("review_likes").
		Where(squirrel.Eq{"user_id": userID, "review_id": reviewID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete review like: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return false, postgres.MapError(err, "review_like", reviewID)
	}
	return tag.RowsAffected() > 0, nil
}

// CountLikes returns the number of likes on a review.
func (r *Repo) CountLikes(ctx context.Context, reviewID uuid.UUID) (int, error) {
	var n int
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx,
		`SELECT count(*) FROM review_likes WHERE review_id = $1`, reviewID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count review likes: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Comments
// ---------------------------------------------------------------------------

type commentRow struct {
	ID        uuid.UUID `db:"id"`
	ReviewID  uuid.UUID `db:"review_id"`
	UserID    uuid.UUID `db:"user_id"`
	Username  string    `db:"username"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

func (c commentRow) toDomain() domain.ReviewComment {
	return domain.ReviewComment(c)
}

const addCommentSQL = `
WITH inserted AS (
    INSERT INTO review_comments (id, user_id, review_id, content)
    VALUES ($1, $2, $3, $4)
    RETURNING id, review_id, user_id, content, created_at
)
SELECT i.id, i.review_id, i.user_id, u.username, i.content, i.created_at
FROM inserted i
JOIN users u ON u.id = i.user_id`

// AddComment appends a comment to a review and returns it with the author's
// username. Returns domain.ErrNotFound if the review does not exist.
func (r *Repo) AddComment(ctx context.Context, userID, reviewID uuid.UUID, content string) (*domain.ReviewComment, error) {
	var row commentRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, addCommentSQL,
		uuid.New(), userID, reviewID, content,
	)
	if err != nil {
		return nil, postgres.MapError(err, "review_comment", reviewID)
	}
	c := row.toDomain()
	return &c, nil
}

// ListComments returns a review's comments oldest first.
func (r *Repo) ListComments(ctx context.Context, reviewID uuid.UUID) ([]domain.ReviewComment, error) {
	query, args, err := postgres.Builder.
		Select("c.id", "c.review_id", "c.user_id", "u.username", "c.content", "c.created_at").
		From("review_comments c").
		Join("users u ON u.id = c.user_id").
		Where(squirrel.Eq{"c.review_id": reviewID}).
		OrderBy("c.created_at", "c.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build comments query: %w", err)
	}

	var rows []commentRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list comments for review %s: %w", reviewID, err)
	}

	comments := make([]domain.ReviewComment, len(rows))
	for i, row := range rows {
		comments[i] = row.toDomain()
	}
	return comments, nil
}
