package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripflux/internal/domain"
)

// TravelLogRepository define el contrato de persistencia para travel logs.
type TravelLogRepository interface {
	Create(ctx context.Context, log domain.TravelLog) error
	GetByID(ctx context.Context, id string) (domain.TravelLog, error)
	ListByUser(ctx context.Context, userID string) ([]domain.TravelLog, error)
	ListPublic(ctx context.Context) ([]domain.TravelLog, error)
	Update(ctx context.Context, log domain.TravelLog) error
	Delete(ctx context.Context, id string) error
	SetLikes(ctx context.Context, id string, likes []string) error
	SetBookmarks(ctx context.Context, id string, bookmarks []string) error
}

const travelLogColumns = `
	t.id, t.user_id, u.username, t.title, t.destination, t.description, t.status,
	t.latitude, t.longitude, t.is_public, t.log_date, t.members, t.likes,
	t.bookmarks, t.created_at, t.updated_at
`

// PgTravelLogRepository implementa TravelLogRepository usando pgxpool.
type PgTravelLogRepository struct {
	pool *pgxpool.Pool
}

func NewPgTravelLogRepository(pool *pgxpool.Pool) *PgTravelLogRepository {
	return &PgTravelLogRepository{pool: pool}
}

func (r *PgTravelLogRepository) Create(ctx context.Context, log domain.TravelLog) error {
	const query = `
		INSERT INTO travel_logs
			(id, user_id, title, destination, description, status, latitude,
			 longitude, is_public, log_date, members, likes, bookmarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.pool.Exec(ctx, query,
		log.ID, log.UserID, log.Title, log.Destination, log.Description,
		log.Status, log.Latitude, log.Longitude, log.IsPublic, log.Date,
		log.Members, log.Likes, log.Bookmarks, log.CreatedAt, log.UpdatedAt,
	)
	return err
}

func (r *PgTravelLogRepository) GetByID(ctx context.Context, id string) (domain.TravelLog, error) {
	query := `
		SELECT ` + travelLogColumns + `
		FROM travel_logs t
		JOIN users u ON u.id = t.user_id
		WHERE t.id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTravelLog(row)
}

func (r *PgTravelLogRepository) ListByUser(ctx context.Context, userID string) ([]domain.TravelLog, error) {
	query := `
		SELECT ` + travelLogColumns + `
		FROM travel_logs t
		JOIN users u ON u.id = t.user_id
		WHERE t.user_id = $1
		ORDER BY t.log_date DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTravelLogs(rows)
}

func (r *PgTravelLogRepository) ListPublic(ctx context.Context) ([]domain.TravelLog, error) {
	query := `
		SELECT ` + travelLogColumns + `
		FROM travel_logs t
		JOIN users u ON u.id = t.user_id
		WHERE t.is_public
		ORDER BY t.log_date DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTravelLogs(rows)
}

func (r *PgTravelLogRepository) Update(ctx context.Context, log domain.TravelLog) error {
	const query = `
		UPDATE travel_logs
		SET title = $2, destination = $3, description = $4, status = $5,
			latitude = $6, longitude = $7, is_public = $8, log_date = $9,
			members = $10, updated_at = $11
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		log.ID, log.Title, log.Destination, log.Description, log.Status,
		log.Latitude, log.Longitude, log.IsPublic, log.Date, log.Members,
		log.UpdatedAt,
	)
	return err
}

func (r *PgTravelLogRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM travel_logs WHERE id = $1`, id)
	return err
}

func (r *PgTravelLogRepository) SetLikes(ctx context.Context, id string, likes []string) error {
	_, err := r.pool.Exec(ctx, `UPDATE travel_logs SET likes = $2, updated_at = now() WHERE id = $1`, id, likes)
	return err
}

func (r *PgTravelLogRepository) SetBookmarks(ctx context.Context, id string, bookmarks []string) error {
	_, err := r.pool.Exec(ctx, `UPDATE travel_logs SET bookmarks = $2, updated_at = now() WHERE id = $1`, id, bookmarks)
	return err
}

func scanTravelLog(row pgx.Row) (domain.TravelLog, error) {
	var t domain.TravelLog
	err := row.Scan(
		&t.ID, &t.UserID, &t.OwnerUsername, &t.Title, &t.Destination,
		&t.Description, &t.Status, &t.Latitude, &t.Longitude, &t.IsPublic,
		&t.Date, &t.Members, &t.Likes, &t.Bookmarks, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.TravelLog{}, err
	}
	return t, nil
}

func collectTravelLogs(rows pgx.Rows) ([]domain.TravelLog, error) {
	logs := make([]domain.TravelLog, 0)
	for rows.Next() {
		t, err := scanTravelLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, t)
	}
	return logs, rows.Err()
}
