package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PostgresResumes keeps the editable document in a JSONB column; ownership
// and timestamps are plain columns so they can be filtered and sorted.
type PostgresResumes struct {
	pool *pgxpool.Pool
}

func NewPostgresResumes(pool *pgxpool.Pool) *PostgresResumes {
	return &PostgresResumes{pool: pool}
}

func (r *PostgresResumes) Insert(ctx context.Context, res domain.Resume) error {
	body, err := json.Marshal(res.ResumeContent.Clone())
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO resumes (id, user_id, title, body, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		res.ID, res.UserID, res.Title, body, res.CreatedAt, res.UpdatedAt)
	return err
}

func (r *PostgresResumes) Get(ctx context.Context, owner, id uuid.UUID) (domain.Resume, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, user_id, body, created_at, updated_at
		FROM resumes WHERE id = $1 AND user_id = $2`, id, owner)
	return scanResume(row)
}

func (r *PostgresResumes) List(ctx context.Context, owner uuid.UUID) ([]domain.Resume, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, user_id, body, created_at, updated_at
		FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Update locks the row for the read-modify-write so two partial updates to
// different sections both land.
func (r *PostgresResumes) Update(ctx context.Context, owner, id uuid.UUID, patch domain.ResumePatch, at time.Time) (domain.Resume, error) {
	var out domain.Resume
	err := r.pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT id, user_id, body, created_at, updated_at
			FROM resumes WHERE id = $1 AND user_id = $2 FOR UPDATE`, id, owner)
		res, err := scanResume(row)
		if err != nil {
			return err
		}
		patch.Apply(&res.ResumeContent)
		res.UpdatedAt = at.UTC()

		body, err := json.Marshal(res.ResumeContent)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE resumes SET title = $3, body = $4, updated_at = $5
			WHERE id = $1 AND user_id = $2`, id, owner, res.Title, body, res.UpdatedAt); err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return domain.Resume{}, err
	}
	return out, nil
}

func (r *PostgresResumes) Delete(ctx context.Context, owner, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresResumes) Ping(ctx context.Context) error { return r.pool.Ping(ctx) }

func scanResume(row pgx.Row) (domain.Resume, error) {
	var (
		res  domain.Resume
		body []byte
	)
	if err := row.Scan(&res.ID, &res.UserID, &body, &res.CreatedAt, &res.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Resume{}, domain.ErrNotFound
		}
		return domain.Resume{}, err
	}
	if err := json.Unmarshal(body, &res.ResumeContent); err != nil {
		return domain.Resume{}, fmt.Errorf("decode resume %s: %w", res.ID, err)
	}
	res.ResumeContent.Normalize()
	res.CreatedAt = res.CreatedAt.UTC()
	res.UpdatedAt = res.UpdatedAt.UTC()
	return res, nil
}
