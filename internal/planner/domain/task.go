// Package domain holds the planner entities and the persistence contracts
// shared by every storage backend.
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle   = errors.New("title cannot be empty")
	ErrEmptyNote    = errors.New("note needs a title, content, or audio")
	ErrItemDeleted  = errors.New("item is deleted")
	ErrNoteConsumed = errors.New("note already spawned a task")
	ErrNotFound     = errors.New("item not found")
	ErrBadUrgency   = errors.New("urgency must be low, medium, or high")
)

// DueDateLayout is the calendar-date format for task due dates. Due dates
// carry no time component.
const DueDateLayout = "2006-01-02"

// Urgency is the user-chosen priority tier, input to scoring.
type Urgency int

const (
	UrgencyLow    Urgency = 1
	UrgencyMedium Urgency = 2
	UrgencyHigh   Urgency = 3
)

// Valid reports whether the urgency is one of the three tiers.
func (u Urgency) Valid() bool {
	return u >= UrgencyLow && u <= UrgencyHigh
}

func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyMedium:
		return "medium"
	case UrgencyHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Task is a prioritized to-do item. Score is derived from urgency and due
// date proximity and is recomputed on every load/persist cycle, never
// trusted from storage.
type Task struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Details        string     `json:"details,omitempty"`
	DueDate        string     `json:"dueDate,omitempty"`
	Urgency        Urgency    `json:"urgency"`
	Score          int        `json:"score"`
	LinkedNoteID   *uuid.UUID `json:"linkedNoteId,omitempty"`
	LinkedAudioURL string     `json:"linkedAudioUrl,omitempty"`
	Archived       bool       `json:"archived"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// NewTask creates an active task. A zero urgency defaults to medium, matching
// the API default; anything else outside the tier range is rejected.
func NewTask(title, details, dueDate string, urgency Urgency, now time.Time) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if urgency == 0 {
		urgency = UrgencyMedium
	}
	if !urgency.Valid() {
		return nil, ErrBadUrgency
	}

	return &Task{
		ID:        uuid.New(),
		Title:     title,
		Details:   strings.TrimSpace(details),
		DueDate:   strings.TrimSpace(dueDate),
		Urgency:   urgency,
		CreatedAt: now.UTC(),
	}, nil
}

// IsDeleted reports whether the task is soft-deleted. Deletion takes
// precedence over Archived for every filtering decision.
func (t *Task) IsDeleted() bool { return t.DeletedAt != nil }

// Archive marks the task archived. Deleted tasks cannot be archived.
func (t *Task) Archive() error {
	if t.IsDeleted() {
		return ErrItemDeleted
	}
	t.Archived = true
	return nil
}

// Delete soft-deletes the task. Deletion supersedes the archive state.
func (t *Task) Delete(now time.Time) {
	deletedAt := now.UTC()
	t.DeletedAt = &deletedAt
	t.Archived = false
}

// Restore returns the task to the active state unconditionally: restoring
// from deleted never lands in archived.
func (t *Task) Restore() {
	t.DeletedAt = nil
	t.Archived = false
}

// ParsedDueDate returns the due date as a point in time (midnight UTC), or
// false when the task has no parseable due date.
func (t *Task) ParsedDueDate() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	due, err := time.ParseInLocation(DueDateLayout, t.DueDate, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}
