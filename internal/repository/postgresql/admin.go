package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/user"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/database"
)

type adminRepository struct {
	db *database.DB
}

func NewAdminRepository(db *database.DB) user.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (user.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, username, password_hash, full_name, created_at, updated_at
		FROM admins
		WHERE username = $1
	`

	var a user.Admin
	err := q.QueryRow(ctx, query, username).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.FullName, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.Admin{}, user.ErrAdminNotFound
		}
		return user.Admin{}, fmt.Errorf("failed to get admin by username: %w", err)
	}

	return a, nil
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (user.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, username, password_hash, full_name, created_at, updated_at
		FROM admins
		WHERE id = $1
	`

	var a user.Admin
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.FullName, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.Admin{}, user.ErrAdminNotFound
		}
		return user.Admin{}, fmt.Errorf("failed to get admin: %w", err)
	}

	return a, nil
}
