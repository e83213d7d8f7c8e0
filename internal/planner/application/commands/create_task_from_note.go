package commands

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/voxplan/voxplan/internal/planner/domain"
	"github.com/voxplan/voxplan/internal/planner/services"
	"github.com/voxplan/voxplan/internal/shared/infrastructure/eventbus"
)

// CreateTaskFromNoteCommand spawns a task from an existing note.
type CreateTaskFromNoteCommand struct {
	UserID  uuid.UUID
	NoteID  uuid.UUID
	Title   string
	Details string
	DueDate string
	Urgency domain.Urgency
}

// CreateTaskFromNoteResult reports whether a task was created. Created is
// false when the note had already spawned a task: that is a silent no-op,
// not an error.
type CreateTaskFromNoteResult struct {
	Created bool
	Task    *domain.Task
}

// CreateTaskFromNoteHandler links a note to a newly created task. The note
// write and the task write are two independent store writes; a crash in
// between is an accepted inconsistency window.
type CreateTaskFromNoteHandler struct {
	store  domain.Store
	engine *services.ScoreEngine
	bus    eventbus.Publisher
}

// NewCreateTaskFromNoteHandler builds a handler.
func NewCreateTaskFromNoteHandler(store domain.Store, engine *services.ScoreEngine, bus eventbus.Publisher) *CreateTaskFromNoteHandler {
	return &CreateTaskFromNoteHandler{store: store, engine: engine, bus: bus}
}

// Handle spawns the task, consumes the note, and persists both collections.
func (h *CreateTaskFromNoteHandler) Handle(ctx context.Context, cmd CreateTaskFromNoteCommand) (*CreateTaskFromNoteResult, error) {
	now := time.Now().UTC()

	notes, err := loadNotes(ctx, h.store, cmd.UserID, now)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range notes {
		if notes[i].ID == cmd.NoteID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrNotFound
	}

	task, err := notes[idx].SpawnTask(cmd.Title, cmd.Details, cmd.DueDate, cmd.Urgency, now)
	if err != nil {
		if errors.Is(err, domain.ErrNoteConsumed) {
			return &CreateTaskFromNoteResult{Created: false}, nil
		}
		return nil, err
	}
	task.Score = h.engine.Score(task.DueDate, task.Urgency, now)

	// Consume the note first: a crash here leaves taskCreated=true without
	// the task persisted, the accepted side of the inconsistency window.
	if err := saveNotes(ctx, h.store, cmd.UserID, notes, now); err != nil {
		return nil, err
	}

	tasks, err := loadTasks(ctx, h.store, cmd.UserID, now)
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, *task)
	if err := saveTasks(ctx, h.store, h.engine, cmd.UserID, tasks, now); err != nil {
		return nil, err
	}

	if h.bus != nil {
		_ = h.bus.Publish(ctx, domain.NewNoteLinked(cmd.NoteID, task.ID))
		_ = h.bus.Publish(ctx, domain.NewTaskCreated(task.ID, task.Title, task.Score))
	}

	return &CreateTaskFromNoteResult{Created: true, Task: task}, nil
}
