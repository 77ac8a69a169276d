package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eusluer/bosphorus-fellas-api/internal/models"
)

var (
	ErrSponsorNotFound = errors.New("sponsor not found")
	ErrNewsNotFound    = errors.New("news not found")
)

type SponsorRepository interface {
	Create(ctx context.Context, sponsor models.Sponsor) (int64, error)
	Update(ctx context.Context, sponsor models.Sponsor) error
	FindByID(ctx context.Context, id int64) (models.Sponsor, error)
	List(ctx context.Context) ([]models.Sponsor, error)
}

type NewsRepository interface {
	Create(ctx context.Context, item models.News) (int64, error)
	Update(ctx context.Context, item models.News) error
	FindByID(ctx context.Context, id int64) (models.News, error)
	List(ctx context.Context) ([]models.News, error)
}

type sponsorRepository struct {
	pool *pgxpool.Pool
}

func NewSponsorRepository(pool *pgxpool.Pool) SponsorRepository {
	return &sponsorRepository{pool: pool}
}

func (r *sponsorRepository) Create(ctx context.Context, s models.Sponsor) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO sponsors (title, content, photo_url, created_at)
		 VALUES ($1, $2, $3, NOW()) RETURNING id`,
		s.Title, s.Content, s.PhotoURL,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *sponsorRepository) Update(ctx context.Context, s models.Sponsor) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE sponsors SET title = $2, content = $3, photo_url = $4 WHERE id = $1`,
		s.ID, s.Title, s.Content, s.PhotoURL)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSponsorNotFound
	}
	return nil
}

func (r *sponsorRepository) FindByID(ctx context.Context, id int64) (models.Sponsor, error) {
	var s models.Sponsor
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, content, photo_url, created_at FROM sponsors WHERE id = $1`, id,
	).Scan(&s.ID, &s.Title, &s.Content, &s.PhotoURL, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Sponsor{}, ErrSponsorNotFound
		}
		return models.Sponsor{}, err
	}
	return s, nil
}

func (r *sponsorRepository) List(ctx context.Context) ([]models.Sponsor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, content, photo_url, created_at FROM sponsors ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sponsors []models.Sponsor
	for rows.Next() {
		var s models.Sponsor
		if err := rows.Scan(&s.ID, &s.Title, &s.Content, &s.PhotoURL, &s.CreatedAt); err != nil {
			return nil, err
		}
		sponsors = append(sponsors, s)
	}
	return sponsors, rows.Err()
}

type newsRepository struct {
	pool *pgxpool.Pool
}

func NewNewsRepository(pool *pgxpool.Pool) NewsRepository {
	return &newsRepository{pool: pool}
}

func (r *newsRepository) Create(ctx context.Context, n models.News) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO news (title, body, photo_url, created_at)
		 VALUES ($1, $2, $3, NOW()) RETURNING id`,
		n.Title, n.Body, n.PhotoURL,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *newsRepository) Update(ctx context.Context, n models.News) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE news SET title = $2, body = $3, photo_url = $4 WHERE id = $1`,
		n.ID, n.Title, n.Body, n.PhotoURL)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNewsNotFound
	}
	return nil
}

func (r *newsRepository) FindByID(ctx context.Context, id int64) (models.News, error) {
	var n models.News
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, body, photo_url, created_at FROM news WHERE id = $1`, id,
	).Scan(&n.ID, &n.Title, &n.Body, &n.PhotoURL, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.News{}, ErrNewsNotFound
		}
		return models.News{}, err
	}
	return n, nil
}

func (r *newsRepository) List(ctx context.Context) ([]models.News, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, body, photo_url, created_at FROM news ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.News
	for rows.Next() {
		var n models.News
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.PhotoURL, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}
