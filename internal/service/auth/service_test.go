package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"log/slog"

	"github.com/glimpsehq/api/internal/common"
	"github.com/glimpsehq/api/internal/config"
	"github.com/glimpsehq/api/internal/crypto"
	"github.com/glimpsehq/api/internal/domain"
	jwtpkg "github.com/glimpsehq/api/internal/jwt"
)

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type userRepoMock struct {
	createFunc     func(ctx context.Context, user *domain.User) error
	getByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	getByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
}

func (m userRepoMock) CreateUser(ctx context.Context, user *domain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m userRepoMock) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, common.ErrNotFound
}

func (m userRepoMock) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, common.ErrNotFound
}

func (m userRepoMock) UpdateUser(ctx context.Context, user *domain.User) error { return nil }

func (m userRepoMock) UpdateProfilePicture(ctx context.Context, id, url, key string, updatedAt time.Time) error {
	return nil
}

func (m userRepoMock) DeleteUser(ctx context.Context, id string) error { return nil }

func TestSignupHashesPasswordAndIssuesToken(t *testing.T) {
	var created *domain.User
	repo := userRepoMock{
		createFunc: func(_ context.Context, user *domain.User) error {
			created = user
			return nil
		},
	}
	svc := New(repo, newLogger(), testConfig())

	user, token, err := svc.Signup(context.Background(), "John Doe", "John@Example.com", "securePassword123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatalf("expected user to be persisted")
	}
	if created.Email != "john@example.com" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if string(created.PasswordHash) == "securePassword123" {
		t.Fatalf("plaintext password was stored")
	}
	if err := crypto.ComparePassword(created.PasswordHash, "securePassword123"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	claims, err := jwtpkg.Parse(token, "test-secret")
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token subject %q does not match user %q", claims.UserID, user.ID)
	}
}

func TestSignupResponseNeverContainsPassword(t *testing.T) {
	svc := New(userRepoMock{}, newLogger(), testConfig())
	user, _, err := svc.Signup(context.Background(), "John Doe", "john@example.com", "securePassword123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload, err := json.Marshal(user.Public())
	if err != nil {
		t.Fatalf("marshal public user: %v", err)
	}
	lowered := strings.ToLower(string(payload))
	if strings.Contains(lowered, "password") || strings.Contains(lowered, "hash") {
		t.Fatalf("public payload leaks password material: %s", payload)
	}
}

func TestSignupValidation(t *testing.T) {
	cases := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{name: "empty name", userName: "  ", email: "john@example.com", password: "securePassword123"},
		{name: "malformed email", userName: "John", email: "not-an-email", password: "securePassword123"},
		{name: "short password", userName: "John", email: "john@example.com", password: "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := userRepoMock{
				createFunc: func(context.Context, *domain.User) error {
					t.Fatalf("user must not be persisted on validation failure")
					return nil
				},
			}
			svc := New(repo, newLogger(), testConfig())
			_, _, err := svc.Signup(context.Background(), tc.userName, tc.email, tc.password)
			if !errors.Is(err, common.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	repo := userRepoMock{
		createFunc: func(context.Context, *domain.User) error {
			return common.ErrConflict
		},
	}
	svc := New(repo, newLogger(), testConfig())
	_, _, err := svc.Signup(context.Background(), "John", "john@example.com", "securePassword123")
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestLoginFailureIsIndistinguishable(t *testing.T) {
	hash, err := crypto.HashPassword("securePassword123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	unknown := New(userRepoMock{}, newLogger(), testConfig())
	_, _, unknownErr := unknown.Login(context.Background(), "nobody@example.com", "securePassword123")

	known := New(userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}, newLogger(), testConfig())
	_, _, wrongErr := known.Login(context.Background(), "john@example.com", "wrongPassword456")

	if !errors.Is(unknownErr, common.ErrInvalidCredentials) || !errors.Is(wrongErr, common.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v and %v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("login failures must be indistinguishable: %q vs %q", unknownErr, wrongErr)
	}
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	hash, err := crypto.HashPassword("securePassword123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo := userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			if email != "john@example.com" {
				t.Fatalf("expected normalized lookup, got %q", email)
			}
			return &domain.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := New(repo, newLogger(), testConfig())

	user, token, err := svc.Login(context.Background(), " John@Example.COM ", "securePassword123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := jwtpkg.Parse(token, "test-secret")
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token subject %q does not match user %q", claims.UserID, user.ID)
	}
}

func TestVerifyReturnsSubjectClaims(t *testing.T) {
	svc := New(userRepoMock{}, newLogger(), testConfig())

	token, err := jwtpkg.GenerateToken("user-42", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "user-42" {
		t.Fatalf("verify returned wrong subject: %q", claims.UserID)
	}
}

// Verify checks the token only; whether the subject still exists is decided
// by the operation that resolves it, never by the middleware.
func TestVerifyDoesNotTouchTheRepository(t *testing.T) {
	repo := userRepoMock{
		getByIDFunc: func(context.Context, string) (*domain.User, error) {
			t.Fatalf("token verification must not resolve the user")
			return nil, nil
		},
	}
	svc := New(repo, newLogger(), testConfig())

	token, err := jwtpkg.GenerateToken("user-42", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVerifyRejectsInvalidTokens(t *testing.T) {
	svc := New(userRepoMock{}, newLogger(), testConfig())

	if _, err := svc.Verify(""); err == nil {
		t.Fatalf("expected empty token to be rejected")
	}
	expired, err := jwtpkg.GenerateToken("user-42", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := svc.Verify(expired); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
	foreign, err := jwtpkg.GenerateToken("user-42", "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := svc.Verify(foreign); err == nil {
		t.Fatalf("expected foreign token to be rejected")
	}
}
