package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eusluer/bosphorus-fellas-api/internal/models"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	Create(ctx context.Context, app models.MembershipApplication) (int64, error)
	FindByEmail(ctx context.Context, email string) (models.MembershipApplication, error)
	FindByID(ctx context.Context, id int64) (models.MembershipApplication, error)
	ListByStatus(ctx context.Context, status models.ApplicationStatus) ([]models.MembershipApplication, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `id, first_name, last_name, email, phone, birth_date, city, instagram,
	address, car_make, car_model, car_year, plate, experience_years, interests, motivation,
	emergency_contact_name, emergency_contact_phone, terms_accepted, privacy_accepted,
	email_opt_in, photo_url, status, created_at`

func (r *applicationRepository) Create(ctx context.Context, a models.MembershipApplication) (int64, error) {
	const query = `
		INSERT INTO membership_applications (
			first_name, last_name, email, phone, birth_date, city, instagram,
			address, car_make, car_model, car_year, plate, experience_years, interests,
			motivation, emergency_contact_name, emergency_contact_phone, terms_accepted,
			privacy_accepted, email_opt_in, photo_url, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, NOW()
		) RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		a.FirstName, a.LastName, a.Email, a.Phone, a.BirthDate, a.City, a.Instagram,
		a.Address, a.CarMake, a.CarModel, a.CarYear, a.Plate, a.ExperienceYears, a.Interests,
		a.Motivation, a.EmergencyContactName, a.EmergencyContactPhone, a.TermsAccepted,
		a.PrivacyAccepted, a.EmailOptIn, a.PhotoURL, a.Status,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *applicationRepository) FindByEmail(ctx context.Context, email string) (models.MembershipApplication, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM membership_applications WHERE LOWER(email) = LOWER($1)`, email)
	return scanApplication(row)
}

func (r *applicationRepository) FindByID(ctx context.Context, id int64) (models.MembershipApplication, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM membership_applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *applicationRepository) ListByStatus(ctx context.Context, status models.ApplicationStatus) ([]models.MembershipApplication, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM membership_applications WHERE status = $1 ORDER BY created_at`,
		status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.MembershipApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE membership_applications SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func scanApplication(row pgx.Row) (models.MembershipApplication, error) {
	var a models.MembershipApplication
	if err := row.Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.Email,
		&a.Phone,
		&a.BirthDate,
		&a.City,
		&a.Instagram,
		&a.Address,
		&a.CarMake,
		&a.CarModel,
		&a.CarYear,
		&a.Plate,
		&a.ExperienceYears,
		&a.Interests,
		&a.Motivation,
		&a.EmergencyContactName,
		&a.EmergencyContactPhone,
		&a.TermsAccepted,
		&a.PrivacyAccepted,
		&a.EmailOptIn,
		&a.PhotoURL,
		&a.Status,
		&a.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.MembershipApplication{}, ErrApplicationNotFound
		}
		return models.MembershipApplication{}, err
	}
	return a, nil
}
