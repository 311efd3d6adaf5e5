package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tripflux/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	SetResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error
	// ConsumeReset reescribe la contraseña y limpia el token de reset en un
	// solo UPDATE; devuelve false si el hash no coincide o ya expiró.
	ConsumeReset(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) (bool, error)
	PurgeExpiredResets(ctx context.Context, now time.Time) (int64, error)
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	return err
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
		SELECT id, username, email, password_hash, COALESCE(reset_token, ''), reset_expires, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(ctx, query, id)
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
		SELECT id, username, email, password_hash, COALESCE(reset_token, ''), reset_expires, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(ctx, query, email)
}

func (r *PgUserRepository) SetResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error {
	const query = `
		UPDATE users
		SET reset_token = $2, reset_expires = $3
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, tokenHash, expires)
	return err
}

func (r *PgUserRepository) ConsumeReset(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) (bool, error) {
	const query = `
		UPDATE users
		SET password_hash = $2, reset_token = NULL, reset_expires = NULL
		WHERE reset_token = $1 AND reset_expires > $3
	`
	tag, err := r.pool.Exec(ctx, query, tokenHash, newPasswordHash, now)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgUserRepository) PurgeExpiredResets(ctx context.Context, now time.Time) (int64, error) {
	const query = `
		UPDATE users
		SET reset_token = NULL, reset_expires = NULL
		WHERE reset_expires IS NOT NULL AND reset_expires <= $1
	`
	tag, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PgUserRepository) scanOne(ctx context.Context, query string, arg any) (domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.ResetToken,
		&u.ResetExpires,
		&u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}
