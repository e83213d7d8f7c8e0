package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voxplan/voxplan/internal/planner/domain"
)

// PostgresStore is the remote backend: one row per item, upsert-by-id
// semantics. Every write sends the full item; partial-field updates are not
// supported. It implements both the snapshot Store contract (SaveTasks loops
// upserts) and direct per-item access for the REST adapter.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store over an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// LoadTasks returns the user's tasks, newest first.
func (s *PostgresStore) LoadTasks(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	return s.ListTasks(ctx, userID)
}

// SaveTasks upserts every task in the collection.
func (s *PostgresStore) SaveTasks(ctx context.Context, userID uuid.UUID, tasks []domain.Task) error {
	for i := range tasks {
		if err := s.UpsertTask(ctx, userID, tasks[i]); err != nil {
			return err
		}
	}
	return nil
}

// LoadNotes returns the user's notes, newest first.
func (s *PostgresStore) LoadNotes(ctx context.Context, userID uuid.UUID) ([]domain.Note, error) {
	return s.ListNotes(ctx, userID)
}

// SaveNotes upserts every note in the collection.
func (s *PostgresStore) SaveNotes(ctx context.Context, userID uuid.UUID, notes []domain.Note) error {
	for i := range notes {
		if err := s.UpsertNote(ctx, userID, notes[i]); err != nil {
			return err
		}
	}
	return nil
}

// UpsertTask writes the full task; a conflict on the primary key updates all
// mutable columns.
func (s *PostgresStore) UpsertTask(ctx context.Context, userID uuid.UUID, t domain.Task) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tasks (
			id, user_id, title, details, due_date, urgency, score,
			linked_note_id, linked_audio_url, archived, deleted_at, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			details = EXCLUDED.details,
			due_date = EXCLUDED.due_date,
			urgency = EXCLUDED.urgency,
			score = EXCLUDED.score,
			linked_note_id = EXCLUDED.linked_note_id,
			linked_audio_url = EXCLUDED.linked_audio_url,
			archived = EXCLUDED.archived,
			deleted_at = EXCLUDED.deleted_at`,
		t.ID, userID, t.Title, t.Details, t.DueDate, int(t.Urgency), t.Score,
		t.LinkedNoteID, t.LinkedAudioURL, t.Archived, t.DeletedAt, t.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert task %s: %w", t.ID, err)
	}
	return nil
}

// ListTasks returns a user's tasks ordered by creation time descending.
func (s *PostgresStore) ListTasks(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, details, due_date, urgency, score,
		       linked_note_id, linked_audio_url, archived, deleted_at, created_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		var urgency int
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Details, &t.DueDate, &urgency, &t.Score,
			&t.LinkedNoteID, &t.LinkedAudioURL, &t.Archived, &t.DeletedAt, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.Urgency = domain.Urgency(urgency)
		tasks = append(tasks, t)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return tasks, nil
}

// UpsertNote writes the full note; a conflict on the primary key updates all
// mutable columns.
func (s *PostgresStore) UpsertNote(ctx context.Context, userID uuid.UUID, n domain.Note) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notes (
			id, user_id, title, content, note_type, audio_data_url,
			archived, deleted_at, task_created, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			note_type = EXCLUDED.note_type,
			audio_data_url = EXCLUDED.audio_data_url,
			archived = EXCLUDED.archived,
			deleted_at = EXCLUDED.deleted_at,
			task_created = EXCLUDED.task_created`,
		n.ID, userID, n.Title, n.Content, n.NoteType, n.AudioDataURL,
		n.Archived, n.DeletedAt, n.TaskCreated, n.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert note %s: %w", n.ID, err)
	}
	return nil
}

// ListNotes returns a user's notes ordered by creation time descending.
func (s *PostgresStore) ListNotes(ctx context.Context, userID uuid.UUID) ([]domain.Note, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, content, note_type, audio_data_url,
		       archived, deleted_at, task_created, created_at
		FROM notes
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(
			&n.ID, &n.Title, &n.Content, &n.NoteType, &n.AudioDataURL,
			&n.Archived, &n.DeletedAt, &n.TaskCreated, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return notes, nil
}

// PurgeExpired permanently deletes rows soft-deleted before the cutoff, for
// every user. Returns the number of rows removed.
func (s *PostgresStore) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	var purged int64

	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE deleted_at IS NOT NULL AND deleted_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge tasks: %w", err)
	}
	purged += tag.RowsAffected()

	tag, err = s.pool.Exec(ctx, `DELETE FROM notes WHERE deleted_at IS NOT NULL AND deleted_at < $1`, cutoff)
	if err != nil {
		return purged, fmt.Errorf("failed to purge notes: %w", err)
	}
	purged += tag.RowsAffected()

	return purged, nil
}
