package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultNoteTitle is used when a note is saved without a title.
const DefaultNoteTitle = "Untitled Note"

// NoteTypeVoice is the default note type.
const NoteTypeVoice = "voice"

// linkedDetailsFormat is the timestamp layout embedded in generated task
// details when a task is spawned from a note.
const linkedDetailsFormat = "Jan 2, 2006 3:04 PM"

// Note is a captured voice or text note. TaskCreated gates linking: one note
// yields at most one task.
type Note struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content,omitempty"`
	NoteType     string     `json:"noteType"`
	AudioDataURL string     `json:"audioDataUrl,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	Archived     bool       `json:"archived"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
	TaskCreated  bool       `json:"taskCreated"`
}

// NewNote creates an active note. An empty title falls back to the default;
// a note with neither title, content, nor audio is rejected.
func NewNote(title, content, audioDataURL string, now time.Time) (*Note, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" && content == "" && audioDataURL == "" {
		return nil, ErrEmptyNote
	}
	if title == "" {
		title = DefaultNoteTitle
	}

	return &Note{
		ID:           uuid.New(),
		Title:        title,
		Content:      content,
		NoteType:     NoteTypeVoice,
		AudioDataURL: audioDataURL,
		CreatedAt:    now.UTC(),
	}, nil
}

// IsDeleted reports whether the note is soft-deleted.
func (n *Note) IsDeleted() bool { return n.DeletedAt != nil }

// Archive marks the note archived. Deleted notes cannot be archived.
func (n *Note) Archive() error {
	if n.IsDeleted() {
		return ErrItemDeleted
	}
	n.Archived = true
	return nil
}

// Delete soft-deletes the note.
func (n *Note) Delete(now time.Time) {
	deletedAt := now.UTC()
	n.DeletedAt = &deletedAt
	n.Archived = false
}

// Restore returns the note to the active state.
func (n *Note) Restore() {
	n.DeletedAt = nil
	n.Archived = false
}

// SpawnTask creates a task linked back to this note and marks the note
// consumed. It fails with ErrNoteConsumed once a task has been spawned;
// callers decide whether to surface that or treat it as a no-op.
//
// The generated linkage line is appended to any caller-supplied details,
// joined by a blank line when both are present. An empty title falls back to
// the note title.
func (n *Note) SpawnTask(title, details, dueDate string, urgency Urgency, now time.Time) (*Task, error) {
	if n.TaskCreated {
		return nil, ErrNoteConsumed
	}

	if strings.TrimSpace(title) == "" {
		title = n.Title
	}

	linked := "Linked voice note captured " + n.CreatedAt.Format(linkedDetailsFormat) + ". Listen in the Voice Notes section."
	details = strings.TrimSpace(details)
	if details == "" {
		details = linked
	} else {
		details = details + "\n\n" + linked
	}

	task, err := NewTask(title, details, dueDate, urgency, now)
	if err != nil {
		return nil, err
	}
	noteID := n.ID
	task.LinkedNoteID = &noteID
	task.LinkedAudioURL = n.AudioDataURL

	n.TaskCreated = true
	return task, nil
}
