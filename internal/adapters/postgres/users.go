package postgres

import (
	"context"
	"database/sql"

	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	db *sql.DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser implements ports.UserRepository.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	ctx, span := startSpan(ctx, "CreateUser")
	defer span.End()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, password_salt, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.PasswordHash, user.PasswordSalt, user.CreatedAt)

	return fail(span, mapError(err, "user", user.Email))
}

// GetUserByEmail implements ports.UserRepository.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := startSpan(ctx, "GetUserByEmail")
	defer span.End()

	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, password_salt, created_at
		FROM users WHERE email = $1`, email)

	user, err := scanUser(row)

	return user, fail(span, mapError(err, "user", email))
}

// GetUserByID implements ports.UserRepository.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := startSpan(ctx, "GetUserByID")
	defer span.End()

	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, password_salt, created_at
		FROM users WHERE id = $1`, id)

	user, err := scanUser(row)

	return user, fail(span, mapError(err, "user", id))
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.PasswordSalt, &u.CreatedAt); err != nil {
		return nil, err
	}

	return &u, nil
}
