package repository

import (
	"context"
	"errors"
	"strings"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type PostgresUsers struct {
	pool *pgxpool.Pool
}

func NewPostgresUsers(pool *pgxpool.Pool) *PostgresUsers {
	return &PostgresUsers{pool: pool}
}

func (r *PostgresUsers) Create(ctx context.Context, u domain.User) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO users (id, name, email, image, password_hash, provider, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		u.ID, u.Name, strings.ToLower(u.Email), u.ImageURL, u.PasswordHash, u.Provider, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PostgresUsers) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanOne(ctx, `SELECT id, name, email, image, password_hash, provider, created_at
		FROM users WHERE email = $1`, strings.ToLower(email))
}

func (r *PostgresUsers) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return r.scanOne(ctx, `SELECT id, name, email, image, password_hash, provider, created_at
		FROM users WHERE id = $1`, id)
}

func (r *PostgresUsers) scanOne(ctx context.Context, sql string, arg interface{}) (domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, sql, arg).Scan(&u.ID, &u.Name, &u.Email, &u.ImageURL, &u.PasswordHash, &u.Provider, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}
