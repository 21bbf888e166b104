package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
)

// Register creates an account and signs the new user in.
// Returns ErrUsernameTaken or ErrEmailTaken (both ErrAlreadyExists) on a
// duplicate. Comparison is case-sensitive.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	// Step 1: Validate input
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Friendly duplicate checks. The unique constraints still decide
	// under concurrency.
	taken, err := s.users.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("auth.Register check username: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}
	taken, err = s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("auth.Register check email: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	// Step 3: Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}

	// Step 4: Create user
	user, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	// Step 5: Issue token
	token, err := s.jwt.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.Register issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", slog.String("user_id", user.ID.String()))

	return &AuthResult{AccessToken: token, User: user}, nil
}
