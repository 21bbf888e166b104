// Package movie implements the local movie mirror using PostgreSQL.
package movie

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/moviedeck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/moviedeck-backend/internal/domain"
)

// Columns lists the movie columns in scan order. Other repositories join
// movies and reuse it with a table alias.
var Columns = []string{"id", "tmdb_id", "title", "overview", "poster_path", "vote_average", "created_at"}

// Row is the scan target for a movies row.
type Row struct {
	ID          uuid.UUID `db:"id"`
	TMDBID      int64     `db:"tmdb_id"`
	Title       string    `db:"title"`
	Overview    string    `db:"overview"`
	PosterPath  string    `db:"poster_path"`
	VoteAverage float64   `db:"vote_average"`
	CreatedAt   time.Time `db:"created_at"`
}

// ToDomain converts the row into a domain.Movie.
func (r Row) ToDomain() domain.Movie {
	return domain.Movie{
		ID:          r.ID,
		TMDBID:      r.TMDBID,
		Title:       r.Title,
		Overview:    r.Overview,
		PosterPath:  r.PosterPath,
		VoteAverage: r.VoteAverage,
		CreatedAt:   r.CreatedAt,
	}
}

// Repo provides movie mirror persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new movie repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByTMDBID returns the mirror row for an external id.
// Returns domain.ErrNotFound if the movie has never been mirrored.
func (r *Repo) GetByTMDBID(ctx context.Context, tmdbID int64) (*domain.Movie, error) {
	query, args, err := postgres.Builder.
		Select(Columns...).
		From("movies").
		Where(squirrel.Eq{"tmdb_id": tmdbID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build movie query: %w", err)
	}

	var row Row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "movie", tmdbID)
	}

	m := row.ToDomain()
	return &m, nil
}

// GetOrCreate inserts the mirror row unless one with the same external id
// already exists, then returns the stored row. Concurrent callers for the
// same id all observe the single winning row.
func (r *Repo) GetOrCreate(ctx context.Context, m domain.Movie) (*domain.Movie, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	query, args, err := postgres.Builder.
		Insert("movies").
		Columns("id", "tmdb_id", "title", "overview", "poster_path", "vote_average").
		Values(m.ID, m.TMDBID, m.Title, m.Overview, m.PosterPath, m.VoteAverage).
		Suffix("ON CONFLICT (tmdb_id) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert movie: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return nil, postgres.MapError(err, "movie", m.TMDBID)
	}

	stored, err := r.GetByTMDBID(ctx, m.TMDBID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("movie %d vanished after upsert: %w", m.TMDBID, domain.ErrConflict)
	}
	return stored, err
}
