package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/glimpsehq/api/internal/common"
	"github.com/glimpsehq/api/internal/config"
	"github.com/glimpsehq/api/internal/crypto"
	"github.com/glimpsehq/api/internal/domain"
	jwtpkg "github.com/glimpsehq/api/internal/jwt"
	"github.com/glimpsehq/api/internal/repository"
)

const minPasswordLength = 8

// Service handles authentication workflows.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
	cfg    config.Config
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger, cfg config.Config) Service {
	return Service{users: users, logger: logger, cfg: cfg}
}

// Signup registers a new user and issues a token for it.
func (s Service) Signup(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = common.NormalizeEmail(email)
	if name == "" {
		return nil, "", fmt.Errorf("%w: name is required", common.ErrInvalidInput)
	}
	if !common.ValidEmail(email) {
		return nil, "", fmt.Errorf("%w: email address is malformed", common.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", common.ErrInvalidInput, minPasswordLength)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, "", fmt.Errorf("%w: email is already registered", common.ErrConflict)
		}
		return nil, "", err
	}
	token, err := jwtpkg.GenerateToken(user.ID, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login authenticates a user and issues a fresh token. Unknown addresses and
// wrong passwords yield the identical error so accounts cannot be enumerated.
func (s Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := crypto.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", common.ErrInvalidCredentials
	}
	token, err := jwtpkg.GenerateToken(user.ID, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// Verify checks a bearer token's signature and expiry and returns its claims.
// The asserted identity is not resolved here; the operation behind the token
// looks it up, so a token for a deleted account fails there as not found
// rather than as an authentication error.
func (s Service) Verify(token string) (*jwtpkg.Claims, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, errors.New("token required")
	}
	return jwtpkg.Parse(trimmed, s.cfg.JWTSecret)
}

// Logout is a client-side token discard; tokens are self-contained and not
// tracked server-side, so the call only records the event.
func (s Service) Logout(ctx context.Context, userID string) error {
	s.logger.Info("user logged out", "user_id", userID)
	return nil
}
