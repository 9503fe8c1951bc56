package profile

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/glimpsehq/api/internal/common"
	"github.com/glimpsehq/api/internal/domain"
	"github.com/glimpsehq/api/internal/media"
	"github.com/glimpsehq/api/internal/repository"
)

// MaxUploadBytes is the picture size ceiling enforced before any upstream call.
const MaxUploadBytes = 5 << 20

const cleanupTimeout = 10 * time.Second

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Service handles profile reads, updates, picture uploads and account removal.
type Service struct {
	users         repository.UserRepository
	uploader      media.Uploader
	logger        *slog.Logger
	uploadTimeout time.Duration
}

// New constructs a Service.
func New(users repository.UserRepository, uploader media.Uploader, logger *slog.Logger, uploadTimeout time.Duration) Service {
	return Service{users: users, uploader: uploader, logger: logger, uploadTimeout: uploadTimeout}
}

// UpdateInput carries the optional profile fields; nil means "leave as is".
type UpdateInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Bio   *string `json:"bio"`
}

// Get returns the current user.
func (s Service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// Update applies the supplied fields only and bumps the updated stamp.
func (s Service) Update(ctx context.Context, userID string, input UpdateInput) (*domain.User, error) {
	if input.Name == nil && input.Email == nil && input.Bio == nil {
		return nil, fmt.Errorf("%w: no updatable fields supplied", common.ErrInvalidInput)
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", common.ErrInvalidInput)
		}
		user.Name = name
	}
	if input.Email != nil {
		email := common.NormalizeEmail(*input.Email)
		if !common.ValidEmail(email) {
			return nil, fmt.Errorf("%w: email address is malformed", common.ErrInvalidInput)
		}
		user.Email = email
	}
	if input.Bio != nil {
		user.Bio = strings.TrimSpace(*input.Bio)
	}
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, fmt.Errorf("%w: email is already registered", common.ErrConflict)
		}
		return nil, err
	}
	s.logger.Info("profile updated", "user_id", user.ID)
	return user, nil
}

// UploadPicture validates the image locally, hands it to the uploader under a
// timeout and persists the returned URL. The user record stays untouched when
// the upstream call fails.
func (s Service) UploadPicture(ctx context.Context, userID string, data []byte, contentType string) (*domain.User, error) {
	ext, err := imageExtension(contentType)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: image payload is empty", common.ErrInvalidInput)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", common.ErrInvalidInput, MaxUploadBytes)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s/%s.%s", userID, uuid.NewString(), ext)
	upCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()
	url, err := s.uploader.Upload(upCtx, key, contentType, data)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.users.UpdateProfilePicture(ctx, userID, url, key, now); err != nil {
		s.removeObjectAsync(key)
		return nil, err
	}

	if user.ProfilePicKey != nil {
		// Re-uploads overwrite; the previous object is orphaned otherwise.
		s.removeObjectAsync(*user.ProfilePicKey)
	}

	user.ProfilePicURL = &url
	user.ProfilePicKey = &key
	user.UpdatedAt = now
	s.logger.Info("profile picture uploaded", "user_id", user.ID, "key", key)
	return user, nil
}

// Delete removes the account. A second call on the same identity reports
// common.ErrNotFound so callers learn their token is stale. Hosted media is
// cleaned up best-effort without blocking the response.
func (s Service) Delete(ctx context.Context, userID string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return err
	}
	if user.ProfilePicKey != nil {
		s.removeObjectAsync(*user.ProfilePicKey)
	}
	s.logger.Info("account deleted", "user_id", userID)
	return nil
}

func (s Service) removeObjectAsync(key string) {
	if s.uploader == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()
		if err := s.uploader.Delete(ctx, key); err != nil {
			s.logger.Warn("media cleanup failed", "key", key, "error", err)
		}
	}()
}

func imageExtension(contentType string) (string, error) {
	parsed, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: unreadable content type", common.ErrInvalidInput)
	}
	ext, ok := allowedImageTypes[strings.ToLower(parsed)]
	if !ok {
		return "", fmt.Errorf("%w: unsupported image type %q", common.ErrInvalidInput, parsed)
	}
	return ext, nil
}
