package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eusluer/bosphorus-fellas-api/internal/models"
)

var ErrMemberNotFound = errors.New("member not found")

type MemberRepository interface {
	Create(ctx context.Context, member models.Member) (int64, error)
	FindByEmail(ctx context.Context, email string) (models.Member, error)
	FindByID(ctx context.Context, id int64) (models.Member, error)
	List(ctx context.Context) ([]models.Member, error)
	UpdatePassword(ctx context.Context, id int64, password string) error
	UpdateStatus(ctx context.Context, id int64, active bool) error
	UpdateProfile(ctx context.Context, member models.Member) error
}

type memberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &memberRepository{pool: pool}
}

const memberColumns = `id, first_name, last_name, email, phone, birth_date, city, instagram,
	address, car_make, car_model, car_year, plate, experience_years, interests,
	emergency_contact_name, emergency_contact_phone, terms_accepted, privacy_accepted,
	email_opt_in, photo_url, password, active, created_at`

func (r *memberRepository) Create(ctx context.Context, m models.Member) (int64, error) {
	const query = `
		INSERT INTO members (
			first_name, last_name, email, phone, birth_date, city, instagram,
			address, car_make, car_model, car_year, plate, experience_years, interests,
			emergency_contact_name, emergency_contact_phone, terms_accepted,
			privacy_accepted, email_opt_in, photo_url, password, active, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, NOW()
		) RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		m.FirstName, m.LastName, m.Email, m.Phone, m.BirthDate, m.City, m.Instagram,
		m.Address, m.CarMake, m.CarModel, m.CarYear, m.Plate, m.ExperienceYears, m.Interests,
		m.EmergencyContactName, m.EmergencyContactPhone, m.TermsAccepted,
		m.PrivacyAccepted, m.EmailOptIn, m.PhotoURL, m.Password, m.Active,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *memberRepository) FindByEmail(ctx context.Context, email string) (models.Member, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE LOWER(email) = LOWER($1)`, email)
	return scanMember(row)
}

func (r *memberRepository) FindByID(ctx context.Context, id int64) (models.Member, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
	return scanMember(row)
}

func (r *memberRepository) List(ctx context.Context) ([]models.Member, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+memberColumns+` FROM members ORDER BY first_name, last_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (r *memberRepository) UpdatePassword(ctx context.Context, id int64, password string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE members SET password = $2 WHERE id = $1`, id, password)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *memberRepository) UpdateStatus(ctx context.Context, id int64, active bool) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE members SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *memberRepository) UpdateProfile(ctx context.Context, m models.Member) error {
	const query = `
		UPDATE members SET
			phone = $2, city = $3, instagram = $4, address = $5,
			car_make = $6, car_model = $7, car_year = $8, plate = $9,
			experience_years = $10, interests = $11,
			emergency_contact_name = $12, emergency_contact_phone = $13,
			email_opt_in = $14, photo_url = $15
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		m.ID, m.Phone, m.City, m.Instagram, m.Address,
		m.CarMake, m.CarModel, m.CarYear, m.Plate,
		m.ExperienceYears, m.Interests,
		m.EmergencyContactName, m.EmergencyContactPhone,
		m.EmailOptIn, m.PhotoURL,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func scanMember(row pgx.Row) (models.Member, error) {
	var m models.Member
	if err := row.Scan(
		&m.ID,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.Phone,
		&m.BirthDate,
		&m.City,
		&m.Instagram,
		&m.Address,
		&m.CarMake,
		&m.CarModel,
		&m.CarYear,
		&m.Plate,
		&m.ExperienceYears,
		&m.Interests,
		&m.EmergencyContactName,
		&m.EmergencyContactPhone,
		&m.TermsAccepted,
		&m.PrivacyAccepted,
		&m.EmailOptIn,
		&m.PhotoURL,
		&m.Password,
		&m.Active,
		&m.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Member{}, ErrMemberNotFound
		}
		return models.Member{}, err
	}
	return m, nil
}
