package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voxplan/voxplan/internal/planner/domain"
	"github.com/voxplan/voxplan/internal/planner/services"
	"github.com/voxplan/voxplan/internal/shared/infrastructure/eventbus"
)

// TaskLifecycleCommand identifies the task a lifecycle transition targets.
type TaskLifecycleCommand struct {
	UserID uuid.UUID
	TaskID uuid.UUID
}

// ArchiveTaskHandler moves an active task to the archived state.
type ArchiveTaskHandler struct {
	store  domain.Store
	engine *services.ScoreEngine
	bus    eventbus.Publisher
}

// NewArchiveTaskHandler builds a handler.
func NewArchiveTaskHandler(store domain.Store, engine *services.ScoreEngine, bus eventbus.Publisher) *ArchiveTaskHandler {
	return &ArchiveTaskHandler{store: store, engine: engine, bus: bus}
}

// Handle archives the task. Archiving a deleted task fails with
// domain.ErrItemDeleted.
func (h *ArchiveTaskHandler) Handle(ctx context.Context, cmd TaskLifecycleCommand) error {
	return mutateTask(ctx, h.store, h.engine, cmd, func(t *domain.Task) error {
		if err := t.Archive(); err != nil {
			return err
		}
		if h.bus != nil {
			_ = h.bus.Publish(ctx, domain.NewTaskArchived(t.ID))
		}
		return nil
	})
}

// DeleteTaskHandler soft-deletes a task.
type DeleteTaskHandler struct {
	store  domain.Store
	engine *services.ScoreEngine
	bus    eventbus.Publisher
}

// NewDeleteTaskHandler builds a handler.
func NewDeleteTaskHandler(store domain.Store, engine *services.ScoreEngine, bus eventbus.Publisher) *DeleteTaskHandler {
	return &DeleteTaskHandler{store: store, engine: engine, bus: bus}
}

// Handle soft-deletes the task; deletion supersedes the archive state.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd TaskLifecycleCommand) error {
	now := time.Now().UTC()
	return mutateTask(ctx, h.store, h.engine, cmd, func(t *domain.Task) error {
		t.Delete(now)
		if h.bus != nil {
			_ = h.bus.Publish(ctx, domain.NewTaskDeleted(t.ID))
		}
		return nil
	})
}

// RestoreTaskHandler returns an archived or deleted task to the active state.
type RestoreTaskHandler struct {
	store  domain.Store
	engine *services.ScoreEngine
	bus    eventbus.Publisher
}

// NewRestoreTaskHandler builds a handler.
func NewRestoreTaskHandler(store domain.Store, engine *services.ScoreEngine, bus eventbus.Publisher) *RestoreTaskHandler {
	return &RestoreTaskHandler{store: store, engine: engine, bus: bus}
}

// Handle restores the task to active, clearing both archived and deletedAt.
func (h *RestoreTaskHandler) Handle(ctx context.Context, cmd TaskLifecycleCommand) error {
	return mutateTask(ctx, h.store, h.engine, cmd, func(t *domain.Task) error {
		t.Restore()
		if h.bus != nil {
			_ = h.bus.Publish(ctx, domain.NewTaskRestored(t.ID))
		}
		return nil
	})
}

// mutateTask runs the load -> find -> mutate -> save cycle shared by the
// task lifecycle handlers.
func mutateTask(ctx context.Context, store domain.Store, engine *services.ScoreEngine, cmd TaskLifecycleCommand, fn func(*domain.Task) error) error {
	now := time.Now().UTC()

	tasks, err := loadTasks(ctx, store, cmd.UserID, now)
	if err != nil {
		return err
	}

	idx := -1
	for i := range tasks {
		if tasks[i].ID == cmd.TaskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}

	if err := fn(&tasks[idx]); err != nil {
		return err
	}

	return saveTasks(ctx, store, engine, cmd.UserID, tasks, now)
}
