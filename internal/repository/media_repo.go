package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripflux/internal/domain"
)

// MediaRepository define el contrato de persistencia para media.
type MediaRepository interface {
	Create(ctx context.Context, media domain.Media) error
	GetByID(ctx context.Context, id string) (domain.Media, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Media, error)
	Update(ctx context.Context, media domain.Media) error
	Delete(ctx context.Context, id string) error
}

// PgMediaRepository implementa MediaRepository usando pgxpool.
type PgMediaRepository struct {
	pool *pgxpool.Pool
}

func NewPgMediaRepository(pool *pgxpool.Pool) *PgMediaRepository {
	return &PgMediaRepository{pool: pool}
}

func (r *PgMediaRepository) Create(ctx context.Context, media domain.Media) error {
	const query = `
		INSERT INTO media
			(id, user_id, image_url, caption, location, is_public, media_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		media.ID, media.UserID, media.ImageURL, media.Caption, media.Location,
		media.IsPublic, media.Date, media.CreatedAt, media.UpdatedAt,
	)
	return err
}

func (r *PgMediaRepository) GetByID(ctx context.Context, id string) (domain.Media, error) {
	const query = `
		SELECT id, user_id, image_url, caption, location, is_public, media_date, created_at, updated_at
		FROM media
		WHERE id = $1
	`
	return scanMedia(r.pool.QueryRow(ctx, query, id))
}

func (r *PgMediaRepository) ListByUser(ctx context.Context, userID string) ([]domain.Media, error) {
	const query = `
		SELECT id, user_id, image_url, caption, location, is_public, media_date, created_at, updated_at
		FROM media
		WHERE user_id = $1
		ORDER BY media_date DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Media, 0)
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *PgMediaRepository) Update(ctx context.Context, media domain.Media) error {
	const query = `
		UPDATE media
		SET image_url = $2, caption = $3, location = $4, is_public = $5, updated_at = $6
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		media.ID, media.ImageURL, media.Caption, media.Location, media.IsPublic, media.UpdatedAt,
	)
	return err
}

func (r *PgMediaRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM media WHERE id = $1`, id)
	return err
}

func scanMedia(row pgx.Row) (domain.Media, error) {
	var m domain.Media
	err := row.Scan(
		&m.ID, &m.UserID, &m.ImageURL, &m.Caption, &m.Location, &m.IsPublic,
		&m.Date, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return domain.Media{}, err
	}
	return m, nil
}
