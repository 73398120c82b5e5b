package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"quiz_engine/internal/common"
	"quiz_engine/internal/common/security"
	"quiz_engine/internal/domain/model"
	"quiz_engine/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
	hasher   security.PasswordHasher
}

func NewAuthService(userRepo repository.UserRepository, hasher security.PasswordHasher) *AuthService {
	return &AuthService{userRepo: userRepo, hasher: hasher}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// Register creates a user. Every failure, including store errors, surfaces
// as a validation or conflict error.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	if err := validateUsername(req.Email); err != nil {
		return err
	}
	if err := validatePassword(req.Password); err != nil {
		return err
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		return fmt.Errorf("failed to hash password: %w", common.ErrValidation)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Email,
		HashedPassword: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return err
		}
		slog.Error("Failed to create user", "error", err)
		return fmt.Errorf("failed to create user: %w", common.ErrValidation)
	}

	slog.Info("User registered", "user_id", user.ID)
	return nil
}

// Authenticate resolves a username and raw password to an identity. Unknown
// users and wrong passwords fail the same way.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.Identity, error) {
	if username == "" || password == "" {
		return nil, common.ErrUnauthorized
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Check(password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	return &model.Identity{Username: user.Username}, nil
}

// IssueToken signs a bearer token for an already resolved identity.
func (s *AuthService) IssueToken(identity *model.Identity) (*TokenResponse, error) {
	token, err := security.GenerateToken(identity.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &TokenResponse{Token: token}, nil
}
