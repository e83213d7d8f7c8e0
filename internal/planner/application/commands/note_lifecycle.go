package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voxplan/voxplan/internal/planner/domain"
	"github.com/voxplan/voxplan/internal/shared/infrastructure/eventbus"
)

// NoteLifecycleCommand identifies the note a lifecycle transition targets.
type NoteLifecycleCommand struct {
	UserID uuid.UUID
	NoteID uuid.UUID
}

// ArchiveNoteHandler moves an active note to the archived state.
type ArchiveNoteHandler struct {
	store domain.Store
	bus   eventbus.Publisher
}

// NewArchiveNoteHandler builds a handler.
func NewArchiveNoteHandler(store domain.Store, bus eventbus.Publisher) *ArchiveNoteHandler {
	return &ArchiveNoteHandler{store: store, bus: bus}
}

// Handle archives the note. Archiving a deleted note fails with
// domain.ErrItemDeleted.
func (h *ArchiveNoteHandler) Handle(ctx context.Context, cmd NoteLifecycleCommand) error {
	return mutateNote(ctx, h.store, cmd, func(n *domain.Note) error {
		if err := n.Archive(); err != nil {
			return err
		}
		if h.bus != nil {
			_ = h.bus.Publish(ctx, domain.NewNoteArchived(n.ID))
		}
		return nil
	})
}

// DeleteNoteHandler soft-deletes a note.
type DeleteNoteHandler struct {
	store domain.Store
	bus   eventbus.Publisher
}

// NewDeleteNoteHandler builds a handler.
func NewDeleteNoteHandler(store domain.Store, bus eventbus.Publisher) *DeleteNoteHandler {
	return &DeleteNoteHandler{store: store, bus: bus}
}

// Handle soft-deletes the note.
func (h *DeleteNoteHandler) Handle(ctx context.Context, cmd NoteLifecycleCommand) error {
	now := time.Now().UTC()
	return mutateNote(ctx, h.store, cmd, func(n *domain.Note) error {
		n.Delete(now)
		if h.bus != nil {
			_ = h.bus.Publish(ctx, domain.NewNoteDeleted(n.ID))
		}
		return nil
	})
}

// RestoreNoteHandler returns an archived or deleted note to the active state.
type RestoreNoteHandler struct {
	store domain.Store
	bus   eventbus.Publisher
}

// NewRestoreNoteHandler builds a handler.
func NewRestoreNoteHandler(store domain.Store, bus eventbus.Publisher) *RestoreNoteHandler {
	return &RestoreNoteHandler{store: store, bus: bus}
}

// Handle restores the note to active.
func (h *RestoreNoteHandler) Handle(ctx context.Context, cmd NoteLifecycleCommand) error {
	return mutateNote(ctx, h.store, cmd, func(n *domain.Note) error {
		n.Restore()
		if h.bus != nil {
			_ = h.bus.Publish(ctx, domain.NewNoteRestored(n.ID))
		}
		return nil
	})
}

// mutateNote runs the load -> find -> mutate -> save cycle shared by the
// note lifecycle handlers.
func mutateNote(ctx context.Context, store domain.Store, cmd NoteLifecycleCommand, fn func(*domain.Note) error) error {
	now := time.Now().UTC()

	notes, err := loadNotes(ctx, store, cmd.UserID, now)
	if err != nil {
		return err
	}

	idx := -1
	for i := range notes {
		if notes[i].ID == cmd.NoteID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}

	if err := fn(&notes[idx]); err != nil {
		return err
	}

	return saveNotes(ctx, store, cmd.UserID, notes, now)
}
