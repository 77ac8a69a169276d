package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eusluer/bosphorus-fellas-api/internal/models"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrDuplicateParticipant = errors.New("member already joined event")
	ErrParticipantNotFound  = errors.New("participation not found")
)

type EventRepository interface {
	Create(ctx context.Context, event models.Event) (int64, error)
	Update(ctx context.Context, event models.Event) error
	FindByID(ctx context.Context, id int64) (models.Event, error)
	List(ctx context.Context, memberID int64) ([]models.EventSummary, error)
	ListActive(ctx context.Context) ([]models.Event, error)
	CountParticipants(ctx context.Context, eventID int64) (int, error)
	AddParticipant(ctx context.Context, eventID, memberID int64) (int64, error)
	RemoveParticipant(ctx context.Context, eventID, memberID int64) error
	ListParticipants(ctx context.Context, eventID int64) ([]models.EventParticipantDetail, error)
	ListByMember(ctx context.Context, memberID int64) ([]models.Event, error)
	DeactivatePast(ctx context.Context, now time.Time) (int64, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

const eventColumns = `id, title, description, photo_url, pdf_url, address, starts_at, active, created_at`

func (r *eventRepository) Create(ctx context.Context, e models.Event) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO events (title, description, photo_url, pdf_url, address, starts_at, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW()) RETURNING id`,
		e.Title, e.Description, e.PhotoURL, e.PDFURL, e.Address, e.StartsAt, e.Active,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *eventRepository) Update(ctx context.Context, e models.Event) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE events SET title = $2, description = $3, photo_url = $4, pdf_url = $5,
		 address = $6, starts_at = $7, active = $8 WHERE id = $1`,
		e.ID, e.Title, e.Description, e.PhotoURL, e.PDFURL, e.Address, e.StartsAt, e.Active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id int64) (models.Event, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	return scanEvent(row)
}

// List returns every event with its participant count. When memberID is
// non-zero the Joined flag reflects that member's participation.
func (r *eventRepository) List(ctx context.Context, memberID int64) ([]models.EventSummary, error) {
	const query = `
		SELECT e.id, e.title, e.description, e.photo_url, e.pdf_url, e.address,
		       e.starts_at, e.active, e.created_at,
		       (SELECT COUNT(*) FROM event_participants p WHERE p.event_id = e.id),
		       EXISTS (SELECT 1 FROM event_participants p WHERE p.event_id = e.id AND p.member_id = $1)
		FROM events e
		ORDER BY e.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.EventSummary
	for rows.Next() {
		var s models.EventSummary
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Description, &s.PhotoURL, &s.PDFURL, &s.Address,
			&s.StartsAt, &s.Active, &s.CreatedAt,
			&s.ParticipantCount, &s.Joined,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *eventRepository) ListActive(ctx context.Context) ([]models.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE active ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *eventRepository) CountParticipants(ctx context.Context, eventID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_participants WHERE event_id = $1`, eventID,
	).Scan(&count)
	return count, err
}

func (r *eventRepository) AddParticipant(ctx context.Context, eventID, memberID int64) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO event_participants (event_id, member_id, created_at)
		 VALUES ($1, $2, NOW()) RETURNING id`,
		eventID, memberID,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicateParticipant
		}
		return 0, err
	}
	return id, nil
}

func (r *eventRepository) RemoveParticipant(ctx context.Context, eventID, memberID int64) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM event_participants WHERE event_id = $1 AND member_id = $2`,
		eventID, memberID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

func (r *eventRepository) ListParticipants(ctx context.Context, eventID int64) ([]models.EventParticipantDetail, error) {
	const query = `
		SELECT m.id, m.first_name, m.last_name, m.email, m.phone, p.created_at
		FROM event_participants p
		JOIN members m ON m.id = p.member_id
		WHERE p.event_id = $1
		ORDER BY p.created_at
	`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []models.EventParticipantDetail
	for rows.Next() {
		var p models.EventParticipantDetail
		if err := rows.Scan(&p.MemberID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.JoinedAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// ListByMember returns the events a member has joined, most recent first.
func (r *eventRepository) ListByMember(ctx context.Context, memberID int64) ([]models.Event, error) {
	const query = `
		SELECT e.id, e.title, e.description, e.photo_url, e.pdf_url, e.address,
		       e.starts_at, e.active, e.created_at
		FROM event_participants p
		JOIN events e ON e.id = p.event_id
		WHERE p.member_id = $1
		ORDER BY e.starts_at DESC
	`
	rows, err := r.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *eventRepository) DeactivatePast(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE events SET active = FALSE WHERE active AND starts_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanEvent(row pgx.Row) (models.Event, error) {
	var e models.Event
	if err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.PhotoURL,
		&e.PDFURL,
		&e.Address,
		&e.StartsAt,
		&e.Active,
		&e.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Event{}, ErrEventNotFound
		}
		return models.Event{}, err
	}
	return e, nil
}
