package rest

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/internal/provider"
	"github.com/heartmarshall/moviedeck-backend/internal/service/auth"
	"github.com/heartmarshall/moviedeck-backend/internal/service/catalog"
	"github.com/heartmarshall/moviedeck-backend/internal/service/interaction"
	"github.com/heartmarshall/moviedeck-backend/internal/service/user"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockAuthService struct {
	RegisterFunc func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	LoginFunc    func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	MeFunc       func(ctx context.Context) (*domain.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *mockAuthService) Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	return m.LoginFunc(ctx, input)
}

func (m *mockAuthService) Me(ctx context.Context) (*domain.User, error) {
	return m.MeFunc(ctx)
}

type mockCatalogService struct {
	PopularFunc   func(ctx context.Context, page int) (*provider.MoviePage, error)
	SearchFunc    func(ctx context.Context, input catalog.SearchInput) (*provider.MoviePage, error)
	CategoryFunc  func(ctx context.Context, input catalog.CategoryInput) (*provider.MoviePage, error)
	DetailsFunc   func(ctx context.Context, tmdbID int64) (*provider.MovieDetails, error)
	GenresFunc    func(ctx context.Context) ([]provider.Genre, error)
	LanguagesFunc func(ctx context.Context) ([]provider.Language, error)
}

func (m *mockCatalogService) Popular(ctx context.Context, page int) (*provider.MoviePage, error) {
	return m.PopularFunc(ctx, page)
}

func (m *mockCatalogService) Search(ctx context.Context, input catalog.SearchInput) (*provider.MoviePage, error) {
	return m.SearchFunc(ctx, input)
}

func (m *mockCatalogService) Category(ctx context.Context, input catalog.CategoryInput) (*provider.MoviePage, error) {
	return m.CategoryFunc(ctx, input)
}

func (m *mockCatalogService) Details(ctx context.Context, tmdbID int64) (*provider.MovieDetails, error) {
	return m.DetailsFunc(ctx, tmdbID)
}

func (m *mockCatalogService) Genres(ctx context.Context) ([]provider.Genre, error) {
	return m.GenresFunc(ctx)
}

func (m *mockCatalogService) Languages(ctx context.Context) ([]provider.Language, error) {
	return m.LanguagesFunc(ctx)
}

type mockInteractionService struct {
	ToggleFunc           func(ctx context.Context, kind domain.MembershipKind, tmdbID int64) (interaction.ToggleResult, error)
	ListMembershipFunc   func(ctx context.Context, kind domain.MembershipKind) ([]interaction.MovieItem, error)
	MovieStatusFunc      func(ctx context.Context, tmdbID int64) (domain.MembershipStatus, error)
	RateMovieFunc        func(ctx context.Context, input interaction.RateInput) (*domain.Rating, error)
	GetRatingFunc        func(ctx context.Context, tmdbID int64) (*int, error)
	SubmitReviewFunc     func(ctx context.Context, input interaction.ReviewInput) (*interaction.ReviewResult, error)
	UpdateReviewFunc     func(ctx context.Context, input interaction.UpdateReviewInput) (*domain.Review, error)
	DeleteReviewFunc     func(ctx context.Context, reviewID uuid.UUID) error
	GetMovieReviewsFunc  func(ctx context.Context, tmdbID int64) ([]domain.ReviewView, error)
	ToggleReviewLikeFunc func(ctx context.Context, reviewID uuid.UUID) (interaction.LikeResult, error)
	ListCommentsFunc     func(ctx context.Context, reviewID uuid.UUID) ([]domain.ReviewComment, error)
	AddCommentFunc       func(ctx context.Context, input interaction.CommentInput) (*domain.ReviewComment, error)
}

func (m *mockInteractionService) Toggle(ctx context.Context, kind domain.MembershipKind, tmdbID int64) (interaction.ToggleResult, error) {
	return m.ToggleFunc(ctx, kind, tmdbID)
}

func (m *mockInteractionService) ListMembership(ctx context.Context, kind domain.MembershipKind) ([]interaction.MovieItem, error) {
	return m.ListMembershipFunc(ctx, kind)
}

func (m *mockInteractionService) MovieStatus(ctx context.Context, tmdbID int64) (domain.MembershipStatus, error) {
	return m.MovieStatusFunc(ctx, tmdbID)
}

func (m *mockInteractionService) RateMovie(ctx context.Context, input interaction.RateInput) (*domain.Rating, error) {
	return m.RateMovieFunc(ctx, input)
}

func (m *mockInteractionService) GetRating(ctx context.Context, tmdbID int64) (*int, error) {
	return m.GetRatingFunc(ctx, tmdbID)
}

func (m *mockInteractionService) SubmitReview(ctx context.Context, input interaction.ReviewInput) (*interaction.ReviewResult, error) {
	return m.SubmitReviewFunc(ctx, input)
}

func (m *mockInteractionService) UpdateReview(ctx context.Context, input interaction.UpdateReviewInput) (*domain.Review, error) {
	return m.UpdateReviewFunc(ctx, input)
}

func (m *mockInteractionService) DeleteReview(ctx context.Context, reviewID uuid.UUID) error {
	return m.DeleteReviewFunc(ctx, reviewID)
}

func (m *mockInteractionService) GetMovieReviews(ctx context.Context, tmdbID int64) ([]domain.ReviewView, error) {
	return m.GetMovieReviewsFunc(ctx, tmdbID)
}

func (m *mockInteractionService) ToggleReviewLike(ctx context.Context, reviewID uuid.UUID) (interaction.LikeResult, error) {
	return m.ToggleReviewLikeFunc(ctx, reviewID)
}

func (m *mockInteractionService) ListComments(ctx context.Context, reviewID uuid.UUID) ([]domain.ReviewComment, error) {
	return m.ListCommentsFunc(ctx, reviewID)
}

func (m *mockInteractionService) AddComment(ctx context.Context, input interaction.CommentInput) (*domain.ReviewComment, error) {
	return m.AddCommentFunc(ctx, input)
}

type mockUserService struct {
	ProfileFunc func(ctx context.Context) (*user.Profile, error)
	ReviewsFunc func(ctx context.Context) ([]domain.UserReviewEntry, error)
}

func (m *mockUserService) Profile(ctx context.Context) (*user.Profile, error) {
	return m.ProfileFunc(ctx)
}

func (m *mockUserService) Reviews(ctx context.Context) ([]domain.UserReviewEntry, error) {
	return m.ReviewsFunc(ctx)
}

// tokenValidatorStub accepts "token-<uuid>".
type tokenValidatorStub struct{}

func (tokenValidatorStub) ValidateToken(_ context.Context, token string) (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}
