package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glimpsehq/api/internal/common"
	"github.com/glimpsehq/api/internal/domain"
	"github.com/glimpsehq/api/internal/repository"
)

// Repository implements persistence interfaces on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ensure Repository satisfies interfaces.
var _ repository.UserRepository = (*Repository)(nil)

const userColumns = `id, email, name, bio, password_hash, profile_pic_url, profile_pic_key, created_at, updated_at`

// CreateUser inserts a user. A duplicate email surfaces as common.ErrConflict.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `INSERT INTO users (id, email, name, bio, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query, user.ID, user.Email, user.Name, user.Bio, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	return mapWriteError(err)
}

// GetUserByEmail fetches a user by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

// GetUserByID retrieves a user by identifier.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// UpdateUser persists profile fields. A duplicate email surfaces as
// common.ErrConflict; a missing row as common.ErrNotFound.
func (r *Repository) UpdateUser(ctx context.Context, user *domain.User) error {
	const query = `UPDATE users SET email = $2, name = $3, bio = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, user.ID, user.Email, user.Name, user.Bio, user.UpdatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

// UpdateProfilePicture stores the hosted picture URL and its storage key.
func (r *Repository) UpdateProfilePicture(ctx context.Context, id, url, key string, updatedAt time.Time) error {
	const query = `UPDATE users SET profile_pic_url = $2, profile_pic_key = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, url, key, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteUser removes a user row. Deleting an absent row reports
// common.ErrNotFound so stale tokens are detected by callers.
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	const query = `DELETE FROM users WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *Repository) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Bio, &u.PasswordHash, &u.ProfilePicURL, &u.ProfilePicKey, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return common.ErrConflict
	}
	return err
}
