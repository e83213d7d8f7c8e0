package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voxplan/voxplan/internal/planner/domain"
	"github.com/voxplan/voxplan/internal/planner/services"
)

// ListNotesQuery selects a view of the user's notes.
type ListNotesQuery struct {
	UserID   uuid.UUID
	View     string
	DateFrom string
	DateTo   string
	Page     int
	PageSize int
}

// NotePage is one page of filtered notes, newest first.
type NotePage struct {
	Notes      []domain.Note `json:"notes"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

// ListNotesHandler answers note list queries.
type ListNotesHandler struct {
	store domain.Store
}

// NewListNotesHandler builds a handler.
func NewListNotesHandler(store domain.Store) *ListNotesHandler {
	return &ListNotesHandler{store: store}
}

// Handle loads, sweeps, filters, and paginates the user's notes.
func (h *ListNotesHandler) Handle(ctx context.Context, q ListNotesQuery) (*NotePage, error) {
	now := time.Now().UTC()

	notes, err := h.store.LoadNotes(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	notes = services.SweepNotes(notes, now)
	services.SortNotes(notes)

	filtered := services.FilterNotes(notes, services.ParseView(q.View), q.DateFrom, q.DateTo)
	page := services.Paginate(filtered, q.Page, q.PageSize)

	return &NotePage{
		Notes:      page.Items,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	}, nil
}
