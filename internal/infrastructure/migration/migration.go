package migration

import (
	"context"
	"fmt"

	"resume-builder/internal/logging"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

// Migration represents a database migration. Up must be idempotent; the
// whole list runs on every start.
type Migration struct {
	Name string
	SQL  string
}

// Migrations is applied in order.
var Migrations = []Migration{
	{
		Name: "create_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`,
	},
	{
		Name: "add_users_image_and_provider",
		SQL: `ALTER TABLE users
			ADD COLUMN IF NOT EXISTS image TEXT,
			ADD COLUMN IF NOT EXISTS provider TEXT NOT NULL DEFAULT ''`,
	},
	{
		Name: "create_resumes",
		SQL: `CREATE TABLE IF NOT EXISTS resumes (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			body JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	},
	{
		Name: "index_resumes_user_updated",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_resumes_user_updated ON resumes (user_id, updated_at DESC)`,
	},
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	log = logging.OrNop(log)
	log.Info("starting database migrations", zap.Int("count", len(Migrations)))

	for _, m := range Migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			log.Error("migration failed", zap.String("name", m.Name), zap.Error(err))
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		log.Debug("migration completed", zap.String("name", m.Name))
	}

	log.Info("all migrations completed")
	return nil
}
