package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	user "book-catalog-backend/internal/domains/user"
	"book-catalog-backend/internal/infrastructure/database"
)

// postgresRepository là concrete implementation của user.Repository interface
type postgresRepository struct {
	pool database.Querier
}

// NewPostgresRepository returns the interface so callers depend on the abstraction.
func NewPostgresRepository(pool database.Querier) user.Repository {
	return &postgresRepository{pool: pool}
}

const insertUserQuery = `
	INSERT INTO users (id, email, first_name, last_name, password_hash, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.pool.Exec(ctx, insertUserQuery,
		u.ID,
		u.Email,
		u.FirstName,
		u.LastName,
		u.PasswordHash,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		// 23505 unique_violation on users_email_key
		if database.IsUniqueViolation(err) {
			return user.ErrDuplicateIdentity
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

const selectUserByEmailQuery = `
	SELECT id, email, first_name, last_name, password_hash, created_at, updated_at
	FROM users
	WHERE email = $1
`

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := r.pool.QueryRow(ctx, selectUserByEmailQuery, email).Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return &u, nil
}
