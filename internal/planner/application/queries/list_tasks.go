// Package queries implements the planner read side: sweep, rescore, filter,
// and paginate the stored collections.
package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voxplan/voxplan/internal/planner/domain"
	"github.com/voxplan/voxplan/internal/planner/services"
)

// ListTasksQuery selects a view of the user's tasks.
type ListTasksQuery struct {
	UserID   uuid.UUID
	View     string
	DateFrom string
	DateTo   string
	Page     int
	PageSize int
}

// TaskListItem is a task decorated with its display tier.
type TaskListItem struct {
	domain.Task
	Tier services.Tier `json:"tier"`
}

// TaskPage is one page of filtered, score-ordered tasks.
type TaskPage struct {
	Tasks      []TaskListItem `json:"tasks"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
}

// ListTasksHandler answers task list queries.
type ListTasksHandler struct {
	store  domain.Store
	engine *services.ScoreEngine
}

// NewListTasksHandler builds a handler.
func NewListTasksHandler(store domain.Store, engine *services.ScoreEngine) *ListTasksHandler {
	return &ListTasksHandler{store: store, engine: engine}
}

// Handle loads, sweeps, rescores, filters, and paginates the user's tasks.
func (h *ListTasksHandler) Handle(ctx context.Context, q ListTasksQuery) (*TaskPage, error) {
	now := time.Now().UTC()

	tasks, err := h.store.LoadTasks(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	tasks = services.SweepTasks(tasks, now)
	h.engine.Rescore(tasks, now)

	filtered := services.FilterTasks(tasks, services.ParseView(q.View), q.DateFrom, q.DateTo)
	page := services.Paginate(filtered, q.Page, q.PageSize)

	items := make([]TaskListItem, 0, len(page.Items))
	for _, t := range page.Items {
		items = append(items, TaskListItem{Task: t, Tier: h.engine.Tier(t.Score)})
	}

	return &TaskPage{
		Tasks:      items,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	}, nil
}
