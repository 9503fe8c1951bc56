package repository

import (
	"context"
	"time"

	"github.com/glimpsehq/api/internal/domain"
)

// UserRepository persists users.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	UpdateProfilePicture(ctx context.Context, id, url, key string, updatedAt time.Time) error
	DeleteUser(ctx context.Context, id string) error
}
