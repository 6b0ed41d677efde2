package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/tokenkit/internal/platform/db"
)

var (
	ErrNotFound    = errors.New("user repository: user not found")
	ErrQueryFailed = errors.New("user repository: query failed")
)

type repository struct {
	db db.Executor
}

var _ Repository = (*repository)(nil)

func NewRepository(dbExec db.Executor) Repository {
	return &repository{db: dbExec}
}

const QueryUserFind = `
SELECT id, email, password_hash, verified_at, created_at, updated_at FROM users
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1
`

func (r *repository) Find(ctx context.Context, userID string) (*User, error) {
	row := r.db.QueryRowContext(ctx, QueryUserFind, userID)
	return scanUser(row, "id", userID)
}

const QueryUserFindByEmail = `
SELECT id, email, password_hash, verified_at, created_at, updated_at FROM users
WHERE email = $1 AND deleted_at IS NULL
LIMIT 1
`

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, QueryUserFindByEmail, email)
	return scanUser(row, "email", email)
}

func scanUser(row *sql.Row, field, value string) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.VerifiedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find user with %s %s: %w", ErrQueryFailed, field, value, err)
	}
	return &u, nil
}
