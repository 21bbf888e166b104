// Package user implements the User repository using PostgreSQL.
package user

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

const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

var userColumns = []string{"id", "username", "email", "password_hash", "created_at"}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type userRow struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id)
}

// GetByUsername returns a user by exact (case-sensitive) username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username}, username)
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Eq, key any) (*domain.User, error) {
	query, args, err := postgres.Builder.
		Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "user", key)
	}
	return row.toDomain(), nil
}

// ExistsByUsername reports whether a username is already registered.
func (r *Repo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

// ExistsByEmail reports whether an email is already registered.
func (r *Repo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

func (r *Repo) exists(ctx context.Context, column, value string) (bool, error) {
	query, args, err := postgres.Builder.
		Select("1").
		Prefix("SELECT EXISTS (").
		From("users").
		Where(squirrel.Eq{column: value}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var exists bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("user exists by %s: %w", column, err)
	}
	return exists, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new user and returns the persisted row.
// Unique violations map to domain.ErrUsernameTaken or domain.ErrEmailTaken.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	query, args, err := postgres.Builder.
		Insert("users").
		Columns("id", "username", "email", "password_hash").
		Values(u.ID, u.Username, u.Email, u.PasswordHash).
		Suffix("RETURNING id, username, email, password_hash, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert user: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		switch postgres.ConstraintName(err) {
		case usernameConstraint:
			return nil, fmt.Errorf("create user %s: %w", u.Username, domain.ErrUsernameTaken)
		case emailConstraint:
			return nil, fmt.Errorf("create user %s: %w", u.Username, domain.ErrEmailTaken)
		}
		return nil, postgres.MapError(err, "user", u.ID)
	}
	return row.toDomain(), nil
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

const statsSQL = `
SELECT
    (SELECT count(*) FROM watchlist_items WHERE user_id = $1) AS watchlist_count,
    (SELECT count(*) FROM favorite_items  WHERE user_id = $1) AS favorites_count,
    (SELECT count(*) FROM watched_items   WHERE user_id = $1) AS watched_count,
    (SELECT count(*) FROM liked_items     WHERE user_id = $1) AS likes_count,
    (SELECT count(*) FROM ratings         WHERE user_id = $1) AS ratings_count,
    (SELECT count(*) FROM reviews         WHERE user_id = $1) AS reviews_count`

type statsRow struct {
	WatchlistCount int `db:"watchlist_count"`
	FavoritesCount int `db:"favorites_count"`
	WatchedCount   int `db:"watched_count"`
	LikesCount     int `db:"likes_count"`
	RatingsCount   int `db:"ratings_count"`
	ReviewsCount   int `db:"reviews_count"`
}

// Stats returns the per-user counters for the profile page in one round trip.
func (r *Repo) Stats(ctx context.Context, userID uuid.UUID) (domain.UserStats, error) {
	var row statsRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, statsSQL, userID); err != nil {
		return domain.UserStats{}, fmt.Errorf("user stats %s: %w", userID, err)
	}

	return domain.UserStats(row), nil
}
