package review_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/moviedeck-backend/internal/adapter/postgres/review"
	"github.com/heartmarshall/moviedeck-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/moviedeck-backend/internal/domain"
)

func newRepo(t *testing.T) (*review.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return review.New(pool), pool
}

func countRows(t *testing.T, pool *pgxpool.Pool, table string, reviewID uuid.UUID) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM `+table+` WHERE review_id = $1`, reviewID,
	).Scan(&n)
	require.NoError(t, err)
	return n
}

// ---------------------------------------------------------------------------
// pgxmock
// ---------------------------------------------------------------------------

func TestRepo_Delete_Mock_NothingDeleted(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM reviews WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = review.New(mock).Delete(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_SyncScore_Mock(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID, movieID := uuid.New(), uuid.New()
	mock.ExpectExec(`UPDATE reviews SET score = \$1, updated_at = now\(\) WHERE movie_id = \$2 AND user_id = \$3`).
		WithArgs(3, movieID, userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	synced, err := review.New(mock).SyncScore(context.Background(), userID, movieID, 3)

	require.NoError(t, err)
	assert.True(t, synced)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Integration
// ---------------------------------------------------------------------------

func TestRepo_Upsert_ReplacesPerPair(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	m := testhelper.SeedMovie(t, pool)

	first, err := repo.Upsert(ctx, u.ID, m.ID, 3, "ok")
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, u.ID, m.ID, 5, "Great")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Score)
	assert.Equal(t, "Great", second.Comment)
}

func TestRepo_Upsert_ZeroScoreRejected(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	u := testhelper.SeedUser(t, pool)
	m := testhelper.SeedMovie(t, pool)

	_, err := repo.Upsert(context.Background(), u.ID, m.ID, 0, "meh")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRepo_Delete_CascadesLikesAndComments(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	fan := testhelper.SeedUser(t, pool)
	m := testhelper.SeedMovie(t, pool)
	rv := testhelper.SeedReview(t, pool, author.ID, m.ID, 4, "Good")

	require.NoError(t, repo.AddLike(ctx, fan.ID, rv.ID))
	_, err := repo.AddComment(ctx, fan.ID, rv.ID, "agreed")
	require.NoError(t, err)
	_, err = repo.AddComment(ctx, fan.ID, rv.ID, "watched it twice")
	require.NoError(t, err)

	require.Equal(t, 1, countRows(t, pool, "review_likes", rv.ID))
	require.Equal(t, 2, countRows(t, pool, "review_comments", rv.ID))

	require.NoError(t, repo.Delete(ctx, rv.ID))

	assert.Equal(t, 0, countRows(t, pool, "review_likes", rv.ID))
	assert.Equal(t, 0, countRows(t, pool, "review_comments", rv.ID))

	_, err = repo.GetByID(ctx, rv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	comments, err := repo.ListComments(ctx, rv.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestRepo_Likes_AddIsIdempotent_RemoveReports(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	fan := testhelper.SeedUser(t, pool)
	m := testhelper.SeedMovie(t, pool)
	rv := testhelper.SeedReview(t, pool, author.ID, m.ID, 5, "Masterpiece")

	require.NoError(t, repo.AddLike(ctx, fan.ID, rv.ID))
	require.NoError(t, repo.AddLike(ctx, fan.ID, rv.ID))

	n, err := repo.CountLikes(ctx, rv.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	removed, err := repo.RemoveLike(ctx, fan.ID, rv.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveLike(ctx, fan.ID, rv.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRepo_AddLike_UnknownReview(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	fan := testhelper.SeedUser(t, pool)

	err := repo.AddLike(context.Background(), fan.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_ListByMovie_CountsAndViewer(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	alice := testhelper.SeedUser(t, pool)
	bob := testhelper.SeedUser(t, pool)
	m := testhelper.SeedMovie(t, pool)

	older := testhelper.SeedReview(t, pool, alice.ID, m.ID, 4, "Good")
	_, err := pool.Exec(ctx, `UPDATE reviews SET created_at = now() - interval '1 day' WHERE id = $1`, older.ID)
	require.NoError(t, err)
	newer := testhelper.SeedReview(t, pool, bob.ID, m.ID, 2, "Not for me")

	require.NoError(t, repo.AddLike(ctx, bob.ID, older.ID))
	_, err = repo.AddComment(ctx, bob.ID, older.ID, "why?")
	require.NoError(t, err)

	views, err := repo.ListByMovie(ctx, m.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, newer.ID, views[0].ID, "newest first")
	assert.Equal(t, bob.Username, views[0].Username)
	assert.False(t, views[0].LikedByViewer)

	assert.Equal(t, older.ID, views[1].ID)
	assert.Equal(t, alice.Username, views[1].Username)
	assert.Equal(t, 1, views[1].LikesCount)
	assert.Equal(t, 1, views[1].CommentsCount)
	assert.True(t, views[1].LikedByViewer)

	anon, err := repo.ListByMovie(ctx, m.ID, uuid.Nil)
	require.NoError(t, err)
	for _, v := range anon {
		assert.False(t, v.LikedByViewer)
	}
}

func TestRepo_Comments_OrderedOldestFirst(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	m := testhelper.SeedMovie(t, pool)
	rv := testhelper.SeedReview(t, pool, author.ID, m.ID, 3, "fine")

	c1, err := repo.AddComment(ctx, author.ID, rv.ID, "first")
	require.NoError(t, err)
	assert.Equal(t, author.Username, c1.Username)

	_, err = repo.AddComment(ctx, author.ID, rv.ID, "second")
	require.NoError(t, err)

	comments, err := repo.ListComments(ctx, rv.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
}

func TestRepo_ListByUser(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	m := testhelper.SeedMovie(t, pool)
	rv := testhelper.SeedReview(t, pool, u.ID, m.ID, 5, "Great")

	entries, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.UserReviewKindReview, entries[0].Kind)
	require.NotNil(t, entries[0].ReviewID)
	assert.Equal(t, rv.ID, *entries[0].ReviewID)
	require.NotNil(t, entries[0].Comment)
	assert.Equal(t, "Great", *entries[0].Comment)
	assert.Equal(t, m.TMDBID, entries[0].Movie.TMDBID)
}
