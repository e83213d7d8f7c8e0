package domain

import (
	"context"

	"github.com/google/uuid"
)

// Storage key namespaces. Local backends key the per-user snapshot under
// these prefixes; the anonymous (nil-user) form omits the suffix.
const (
	TaskKeyPrefix = "voice-notes-priority-tasks"
	NoteKeyPrefix = "voice-note-items"
)

// TaskKey returns the snapshot key for a user's task collection.
func TaskKey(userID uuid.UUID) string {
	if userID == uuid.Nil {
		return TaskKeyPrefix
	}
	return TaskKeyPrefix + ":" + userID.String()
}

// NoteKey returns the snapshot key for a user's note collection.
func NoteKey(userID uuid.UUID) string {
	if userID == uuid.Nil {
		return NoteKeyPrefix
	}
	return NoteKeyPrefix + ":" + userID.String()
}

// Store is the persistence contract shared by every backend: load and save
// full per-user collections. Snapshot backends overwrite the whole
// collection on save (last write wins); the row backend upserts item by
// item. Loads never fail on malformed stored data — they yield an empty
// collection instead.
type Store interface {
	LoadTasks(ctx context.Context, userID uuid.UUID) ([]Task, error)
	SaveTasks(ctx context.Context, userID uuid.UUID, tasks []Task) error
	LoadNotes(ctx context.Context, userID uuid.UUID) ([]Note, error)
	SaveNotes(ctx context.Context, userID uuid.UUID, notes []Note) error
}
