package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voxplan/voxplan/internal/planner/domain"
	"github.com/voxplan/voxplan/internal/planner/services"
	"github.com/voxplan/voxplan/internal/shared/infrastructure/eventbus"
)

// CreateTaskCommand contains the data to create a task.
type CreateTaskCommand struct {
	UserID  uuid.UUID
	Title   string
	Details string
	DueDate string
	Urgency domain.Urgency
}

// CreateTaskResult returns the created task with its computed score.
type CreateTaskResult struct {
	Task domain.Task
}

// CreateTaskHandler appends a new task to the user's collection.
type CreateTaskHandler struct {
	store  domain.Store
	engine *services.ScoreEngine
	bus    eventbus.Publisher
}

// NewCreateTaskHandler builds a handler.
func NewCreateTaskHandler(store domain.Store, engine *services.ScoreEngine, bus eventbus.Publisher) *CreateTaskHandler {
	return &CreateTaskHandler{store: store, engine: engine, bus: bus}
}

// Handle creates the task and persists the collection.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	now := time.Now().UTC()

	tasks, err := loadTasks(ctx, h.store, cmd.UserID, now)
	if err != nil {
		return nil, err
	}

	task, err := domain.NewTask(cmd.Title, cmd.Details, cmd.DueDate, cmd.Urgency, now)
	if err != nil {
		return nil, err
	}
	task.Score = h.engine.Score(task.DueDate, task.Urgency, now)

	tasks = append(tasks, *task)
	if err := saveTasks(ctx, h.store, h.engine, cmd.UserID, tasks, now); err != nil {
		return nil, err
	}

	if h.bus != nil {
		_ = h.bus.Publish(ctx, domain.NewTaskCreated(task.ID, task.Title, task.Score))
	}

	return &CreateTaskResult{Task: *task}, nil
}
