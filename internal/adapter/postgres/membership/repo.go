// Package membership implements the four per-user movie sets (watchlist,
// favorites, watched, likes). Each set is its own table with the same shape;
// the table is chosen from a fixed whitelist keyed by domain.MembershipKind.
package membership

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

var tables = map[domain.MembershipKind]string{
	domain.MembershipWatchlist: "watchlist_items",
	domain.MembershipFavorites: "favorite_items",
	domain.MembershipWatched:   "watched_items",
	domain.MembershipLikes:     "liked_items",
}

func tableFor(kind domain.MembershipKind) (string, error) {
	t, ok := tables[kind]
	if !ok {
		return "", domain.NewValidationError("kind", fmt.Sprintf("unknown membership kind %q", kind))
	}
	return t, nil
}

// Repo provides membership persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new membership repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Add puts the movie into the user's set. Reports whether a row was inserted;
// false means it was already there.
func (r *Repo) Add(ctx context.Context, kind domain.MembershipKind, userID, movieID uuid.UUID) (bool, error) {
	table, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	query, args, err := postgres.Builder.
		Insert(table).
		Columns("id", "user_id", "movie_id").
		Values(uuid.New(), userID, movieID).
		Suffix("ON CONFLICT (user_id, movie_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert %s: %w", table, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return false, postgres.MapError(err, table, movieID)
	}
	return tag.RowsAffected() > 0, nil
}

// Remove takes the movie out of the user's set. Reports whether a row was deleted.
func (r *Repo) Remove(ctx context.Context, kind domain.MembershipKind, userID, movieID uuid.UUID) (bool, error) {
	table, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	query, args, err := postgres.Builder.
		Delete(table).
		Where(squirrel.Eq{"user_id": userID, "movie_id": movieID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete %s: %w", table, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return false, postgres.MapError(err, table, movieID)
	}
	return tag.RowsAffected() > 0, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

type itemRow struct {
	movie.Row
	AddedAt time.Time `db:"added_at"`
}

// ListByUser returns the movies in the user's set, most recently added first.
func (r *Repo) ListByUser(ctx context.Context, kind domain.MembershipKind, userID uuid.UUID) ([]domain.MembershipItem, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	cols := make([]string, 0, len(movie.Columns)+1)
	for _, c := range movie.Columns {
		cols = append(cols, "m."+c)
	}
	cols = append(cols, "i.added_at")

	query, args, err := postgres.Builder.
		Select(cols...).
		From(table + " i").
		Join("movies m ON m.id = i.movie_id").
		Where(squirrel.Eq{"i.user_id": userID}).
		OrderBy("i.added_at DESC", "m.tmdb_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s: %w", table, err)
	}

	var rows []itemRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}

	items := make([]domain.MembershipItem, len(rows))
	for i, row := range rows {
		items[i] = domain.MembershipItem{Movie: row.Row.ToDomain(), AddedAt: row.AddedAt}
	}
	return items, nil
}

const statusSQL = `
SELECT
    EXISTS (SELECT 1 FROM watchlist_items WHERE user_id = $1 AND movie_id = $2) AS in_watchlist,
    EXISTS (SELECT 1 FROM favorite_items  WHERE user_id = $1 AND movie_id = $2) AS in_favorites,
    EXISTS (SELECT 1 FROM watched_items   WHERE user_id = $1 AND movie_id = $2) AS in_watched,
    EXISTS (SELECT 1 FROM liked_items     WHERE user_id = $1 AND movie_id = $2) AS in_likes,
    (SELECT score FROM ratings WHERE user_id = $1 AND movie_id = $2)            AS rating`

type statusRow struct {
	InWatchlist bool `db:"in_watchlist"`
	InFavorites bool `db:"in_favorites"`
	InWatched   bool `db:"in_watched"`
	InLikes     bool `db:"in_likes"`
	Rating      *int `db:"rating"`
}

// Status reports set membership and rating of one movie for the user.
func (r *Repo) Status(ctx context.Context, userID, movieID uuid.UUID) (domain.MembershipStatus, error) {
	var row statusRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, statusSQL, userID, movieID); err != nil {
		return domain.MembershipStatus{}, fmt.Errorf("membership status: %w", err)
	}
	return domain.MembershipStatus(row), nil
}
