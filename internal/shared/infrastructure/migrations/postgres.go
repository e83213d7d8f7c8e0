// Package migrations applies the relational schema for the remote backend.
package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresSchema is idempotent: every statement guards with IF NOT EXISTS.
// due_date is TEXT on purpose: the planner treats due dates as calendar-date
// strings without a time component, and unparseable values must survive the
// round trip so the view layer can exclude them.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tasks (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id),
	title TEXT NOT NULL,
	details TEXT NOT NULL DEFAULT '',
	due_date TEXT NOT NULL DEFAULT '',
	urgency INT NOT NULL DEFAULT 2,
	score INT NOT NULL DEFAULT 0,
	linked_note_id UUID,
	linked_audio_url TEXT NOT NULL DEFAULT '',
	archived BOOLEAN NOT NULL DEFAULT FALSE,
	deleted_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id),
	title TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	note_type TEXT NOT NULL DEFAULT 'voice',
	audio_data_url TEXT NOT NULL DEFAULT '',
	archived BOOLEAN NOT NULL DEFAULT FALSE,
	deleted_at TIMESTAMPTZ,
	task_created BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_user_created ON tasks (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_notes_user_created ON notes (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_tasks_deleted ON tasks (deleted_at) WHERE deleted_at IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_notes_deleted ON notes (deleted_at) WHERE deleted_at IS NOT NULL;
`

// ApplyPostgres creates the schema if it does not exist yet.
func ApplyPostgres(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to apply postgres schema: %w", err)
	}
	return nil
}
