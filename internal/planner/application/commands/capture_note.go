package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voxplan/voxplan/internal/planner/domain"
	"github.com/voxplan/voxplan/internal/shared/infrastructure/eventbus"
)

// CaptureNoteCommand contains the data to save a note.
type CaptureNoteCommand struct {
	UserID       uuid.UUID
	Title        string
	Content      string
	AudioDataURL string
}

// CaptureNoteResult returns the saved note.
type CaptureNoteResult struct {
	Note domain.Note
}

// CaptureNoteHandler saves a new voice or text note.
type CaptureNoteHandler struct {
	store domain.Store
	bus   eventbus.Publisher
}

// NewCaptureNoteHandler builds a handler.
func NewCaptureNoteHandler(store domain.Store, bus eventbus.Publisher) *CaptureNoteHandler {
	return &CaptureNoteHandler{store: store, bus: bus}
}

// Handle saves the note at the head of the user's collection.
func (h *CaptureNoteHandler) Handle(ctx context.Context, cmd CaptureNoteCommand) (*CaptureNoteResult, error) {
	now := time.Now().UTC()

	notes, err := loadNotes(ctx, h.store, cmd.UserID, now)
	if err != nil {
		return nil, err
	}

	note, err := domain.NewNote(cmd.Title, cmd.Content, cmd.AudioDataURL, now)
	if err != nil {
		return nil, err
	}

	notes = append([]domain.Note{*note}, notes...)
	if err := saveNotes(ctx, h.store, cmd.UserID, notes, now); err != nil {
		return nil, err
	}

	if h.bus != nil {
		_ = h.bus.Publish(ctx, domain.NewNoteCaptured(note.ID, note.Title, note.AudioDataURL != ""))
	}

	return &CaptureNoteResult{Note: *note}, nil
}
