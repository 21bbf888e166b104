package testhelper

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueTMDBID returns an external id unlikely to collide across parallel tests.
func UniqueTMDBID() int64 {
	return 1_000_000 + rand.Int64N(1_000_000_000)
}

// SeedUser inserts a user with a dummy password hash.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	user := domain.User{
		ID:           uuid.New(),
		Username:     "user-" + suffix,
		Email:        "user-" + suffix + "@example.com",
		PasswordHash: "$2a$04$dummyhashdummyhashdummyhashdummyhashdummyhashdummyha",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, username, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedMovie inserts a mirrored movie with a unique external id.
func SeedMovie(t *testing.T, pool *pgxpool.Pool) domain.Movie {
	t.Helper()

	movie := domain.Movie{
		ID:          uuid.New(),
		TMDBID:      UniqueTMDBID(),
		Title:       "Movie " + uniqueSuffix(),
		Overview:    "An overview.",
		PosterPath:  "/poster.jpg",
		VoteAverage: 7.5,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO movies (id, tmdb_id, title, overview, poster_path, vote_average, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		movie.ID, movie.TMDBID, movie.Title, movie.Overview, movie.PosterPath, movie.VoteAverage, movie.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMovie: %v", err)
	}

	return movie
}

// SeedReview inserts a review by user on movie.
func SeedReview(t *testing.T, pool *pgxpool.Pool, userID, movieID uuid.UUID, score int, comment string) domain.Review {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	review := domain.Review{
		ID:        uuid.New(),
		UserID:    userID,
		MovieID:   movieID,
		Score:     score,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO reviews (id, user_id, movie_id, score, comment, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		review.ID, review.UserID, review.MovieID, review.Score, review.Comment, review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReview: %v", err)
	}

	return review
}
