// Package persistence implements the planner store contract on SQLite,
// Redis, and PostgreSQL backends.
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voxplan/voxplan/internal/planner/domain"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteStore keeps each per-user collection as a single JSON snapshot row,
// the local-storage model: one keyed text blob per collection, overwritten
// whole on every save.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the snapshot table if needed.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.ExecContext(ctx, snapshotSchema); err != nil {
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// LoadTasks returns the user's task collection. A missing or malformed
// snapshot yields an empty collection, never an error.
func (s *SQLiteStore) LoadTasks(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := s.load(ctx, domain.TaskKey(userID), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SaveTasks overwrites the user's task snapshot.
func (s *SQLiteStore) SaveTasks(ctx context.Context, userID uuid.UUID, tasks []domain.Task) error {
	return s.save(ctx, domain.TaskKey(userID), tasks)
}

// LoadNotes returns the user's note collection, parse-or-empty.
func (s *SQLiteStore) LoadNotes(ctx context.Context, userID uuid.UUID) ([]domain.Note, error) {
	var notes []domain.Note
	if err := s.load(ctx, domain.NoteKey(userID), &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// SaveNotes overwrites the user's note snapshot.
func (s *SQLiteStore) SaveNotes(ctx context.Context, userID uuid.UUID, notes []domain.Note) error {
	return s.save(ctx, domain.NoteKey(userID), notes)
}

func (s *SQLiteStore) load(ctx context.Context, key string, dest any) error {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot %q: %w", key, err)
	}

	// Malformed persisted state is silently treated as empty.
	_ = json.Unmarshal([]byte(payload), dest)
	return nil
}

func (s *SQLiteStore) save(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %q: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, string(payload), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to write snapshot %q: %w", key, err)
	}
	return nil
}
