package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eusluer/bosphorus-fellas-api/internal/models"
)

var ErrAdminNotFound = errors.New("admin not found")

type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (models.Admin, error)
	FindByID(ctx context.Context, id int64) (models.Admin, error)
	UpdatePassword(ctx context.Context, id int64, password string) error
}

type adminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

const adminColumns = `id, first_name, last_name, email, password, created_at`

// FindByEmail matches case-insensitively; admin rows are seeded by hand
// and may carry mixed-case addresses.
func (r *adminRepository) FindByEmail(ctx context.Context, email string) (models.Admin, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE LOWER(email) = LOWER($1)`, email)
	return scanAdmin(row)
}

func (r *adminRepository) FindByID(ctx context.Context, id int64) (models.Admin, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)
	return scanAdmin(row)
}

func (r *adminRepository) UpdatePassword(ctx context.Context, id int64, password string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE admins SET password = $2 WHERE id = $1`, id, password)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAdminNotFound
	}
	return nil
}

func scanAdmin(row pgx.Row) (models.Admin, error) {
	var admin models.Admin
	if err := row.Scan(
		&admin.ID,
		&admin.FirstName,
		&admin.LastName,
		&admin.Email,
		&admin.Password,
		&admin.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Admin{}, ErrAdminNotFound
		}
		return models.Admin{}, err
	}
	return admin, nil
}
