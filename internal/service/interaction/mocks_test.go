package interaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/internal/provider"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockMovieRepo struct {
	GetByTMDBIDFunc func(ctx context.Context, tmdbID int64) (*domain.Movie, error)
	GetOrCreateFunc func(ctx context.Context, m domain.Movie) (*domain.Movie, error)
}

func (m *mockMovieRepo) GetByTMDBID(ctx context.Context, tmdbID int64) (*domain.Movie, error) {
	return m.GetByTMDBIDFunc(ctx, tmdbID)
}

func (m *mockMovieRepo) GetOrCreate(ctx context.Context, mv domain.Movie) (*domain.Movie, error) {
	return m.GetOrCreateFunc(ctx, mv)
}

type mockMembershipRepo struct {
	AddFunc        func(ctx context.Context, kind domain.MembershipKind, userID, movieID uuid.UUID) (bool, error)
	RemoveFunc     func(ctx context.Context, kind domain.MembershipKind, userID, movieID uuid.UUID) (bool, error)
	ListByUserFunc func(ctx context.Context, kind domain.MembershipKind, userID uuid.UUID) ([]domain.MembershipItem, error)
	StatusFunc     func(ctx context.Context, userID, movieID uuid.UUID) (domain.MembershipStatus, error)
}

func (m *mockMembershipRepo) Add(ctx context.Context, kind domain.MembershipKind, userID, movieID uuid.UUID) (bool, error) {
	return m.AddFunc(ctx, kind, userID, movieID)
}

func (m *mockMembershipRepo) Remove(ctx context.Context, kind domain.MembershipKind, userID, movieID uuid.UUID) (bool, error) {
	return m.RemoveFunc(ctx, kind, userID, movieID)
}

func (m *mockMembershipRepo) ListByUser(ctx context.Context, kind domain.MembershipKind, userID uuid.UUID) ([]domain.MembershipItem, error) {
	return m.ListByUserFunc(ctx, kind, userID)
}

func (m *mockMembershipRepo) Status(ctx context.Context, userID, movieID uuid.UUID) (domain.MembershipStatus, error) {
	return m.StatusFunc(ctx, userID, movieID)
}

type mockRatingRepo struct {
	UpsertFunc      func(ctx context.Context, userID, movieID uuid.UUID, score int) (*domain.Rating, error)
	GetByTMDBIDFunc func(ctx context.Context, userID uuid.UUID, tmdbID int64) (*domain.Rating, error)
}

func (m *mockRatingRepo) Upsert(ctx context.Context, userID, movieID uuid.UUID, score int) (*domain.Rating, error) {
	return m.UpsertFunc(ctx, userID, movieID, score)
}

func (m *mockRatingRepo) GetByTMDBID(ctx context.Context, userID uuid.UUID, tmdbID int64) (*domain.Rating, error) {
	return m.GetByTMDBIDFunc(ctx, userID, tmdbID)
}

type mockReviewRepo struct {
	UpsertFunc        func(ctx context.Context, userID, movieID uuid.UUID, score int, comment string) (*domain.Review, error)
	UpdateFunc        func(ctx context.Context, id uuid.UUID, score int, comment string) (*domain.Review, error)
	SyncScoreFunc     func(ctx context.Context, userID, movieID uuid.UUID, score int) (bool, error)
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	ExistsForPairFunc func(ctx context.Context, userID, movieID uuid.UUID) (bool, error)
	ListByMovieFunc   func(ctx context.Context, movieID, viewerID uuid.UUID) ([]domain.ReviewView, error)
	AddLikeFunc       func(ctx context.Context, userID, reviewID uuid.UUID) error
	RemoveLikeFunc    func(ctx context.Context, userID, reviewID uuid.UUID) (bool, error)
	CountLikesFunc    func(ctx context.Context, reviewID uuid.UUID) (int, error)
	AddCommentFunc    func(ctx context.Context, userID, reviewID uuid.UUID, content string) (*domain.ReviewComment, error)
	ListCommentsFunc  func(ctx context.Context, reviewID uuid.UUID) ([]domain.ReviewComment, error)
}

func (m *mockReviewRepo) Upsert(ctx context.Context, userID, movieID uuid.UUID, score int, comment string) (*domain.Review, error) {
	return m.UpsertFunc(ctx, userID, movieID, score, comment)
}

func (m *mockReviewRepo) Update(ctx context.Context, id uuid.UUID, score int, comment string) (*domain.Review, error) {
	return m.UpdateFunc(ctx, id, score, comment)
}

func (m *mockReviewRepo) SyncScore(ctx context.Context, userID, movieID uuid.UUID, score int) (bool, error) {
	return m.SyncScoreFunc(ctx, userID, movieID, score)
}

func (m *mockReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockReviewRepo) ExistsForPair(ctx context.Context, userID, movieID uuid.UUID) (bool, error) {
	return m.ExistsForPairFunc(ctx, userID, movieID)
}

func (m *mockReviewRepo) ListByMovie(ctx context.Context, movieID, viewerID uuid.UUID) ([]domain.ReviewView, error) {
	return m.ListByMovieFunc(ctx, movieID, viewerID)
}

func (m *mockReviewRepo) AddLike(ctx context.Context, userID, reviewID uuid.UUID) error {
	return m.AddLikeFunc(ctx, userID, reviewID)
}

func (m *mockReviewRepo) RemoveLike(ctx context.Context, userID, reviewID uuid.UUID) (bool, error) {
	return m.RemoveLikeFunc(ctx, userID, reviewID)
}

func (m *mockReviewRepo) CountLikes(ctx context.Context, reviewID uuid.UUID) (int, error) {
	return m.CountLikesFunc(ctx, reviewID)
}

func (m *mockReviewRepo) AddComment(ctx context.Context, userID, reviewID uuid.UUID, content string) (*domain.ReviewComment, error) {
	return m.AddCommentFunc(ctx, userID, reviewID, content)
}

func (m *mockReviewRepo) ListComments(ctx context.Context, reviewID uuid.UUID) ([]domain.ReviewComment, error) {
	return m.ListCommentsFunc(ctx, reviewID)
}

type mockCatalog struct {
	FetchMovieDetailsFunc func(ctx context.Context, tmdbID int64, language string) (*provider.MovieDetails, error)
}

func (m *mockCatalog) FetchMovieDetails(ctx context.Context, tmdbID int64, language string) (*provider.MovieDetails, error) {
	return m.FetchMovieDetailsFunc(ctx, tmdbID, language)
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	// Default: pass-through (no real transaction).
	return fn(ctx)
}

type mockEnricher struct {
	EnrichGenresFunc func(ctx context.Context, tmdbIDs []int64) (map[int64][]provider.Genre, error)
}

func (m *mockEnricher) EnrichGenres(ctx context.Context, tmdbIDs []int64) (map[int64][]provider.Genre, error) {
	return m.EnrichGenresFunc(ctx, tmdbIDs)
}
