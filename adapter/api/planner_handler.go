package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voxplan/voxplan/internal/planner/domain"
	"github.com/voxplan/voxplan/internal/planner/services"
)

// RowStore is the per-item persistence surface the REST adapter writes
// through. Each POST carries the full item and is upserted by ID.
type RowStore interface {
	UpsertTask(ctx context.Context, userID uuid.UUID, t domain.Task) error
	ListTasks(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)
	UpsertNote(ctx context.Context, userID uuid.UUID, n domain.Note) error
	ListNotes(ctx context.Context, userID uuid.UUID) ([]domain.Note, error)
}

// PlannerHandler serves the task and note sync endpoints.
type PlannerHandler struct {
	store  RowStore
	engine *services.ScoreEngine
	logger *slog.Logger
}

// NewPlannerHandler creates a new planner handler.
func NewPlannerHandler(store RowStore, engine *services.ScoreEngine, logger *slog.Logger) *PlannerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlannerHandler{store: store, engine: engine, logger: logger}
}

// taskRequest is the full-task POST body. Absent urgency defaults to medium;
// absent booleans default to false; absent createdAt defaults to now.
type taskRequest struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Details        string     `json:"details"`
	DueDate        string     `json:"dueDate"`
	Urgency        int        `json:"urgency"`
	LinkedNoteID   *uuid.UUID `json:"linkedNoteId"`
	LinkedAudioURL string     `json:"linkedAudioUrl"`
	Archived       bool       `json:"archived"`
	DeletedAt      *time.Time `json:"deletedAt"`
	CreatedAt      *time.Time `json:"createdAt"`
}

// noteRequest is the full-note POST body. Absent noteType defaults to "voice".
type noteRequest struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	NoteType     string     `json:"noteType"`
	AudioDataURL string     `json:"audioDataUrl"`
	Archived     bool       `json:"archived"`
	DeletedAt    *time.Time `json:"deletedAt"`
	TaskCreated  bool       `json:"taskCreated"`
	CreatedAt    *time.Time `json:"createdAt"`
}

// ListTasks handles GET /tasks. Scores are recomputed at read time so a stale
// stored score never reaches a client. The store's newest-first order is
// preserved; score-descending sorting is a view concern, not a sync one.
func (h *PlannerHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tasks, err := h.store.ListTasks(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load tasks")
		return
	}

	now := time.Now()
	for i := range tasks {
		tasks[i].Score = h.engine.Score(tasks[i].DueDate, tasks[i].Urgency, now)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	writeJSON(w, http.StatusOK, map[string][]domain.Task{"tasks": tasks})
}

// UpsertTask handles POST /tasks.
func (h *PlannerHandler) UpsertTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == uuid.Nil || strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "Task id and title are required")
		return
	}

	now := time.Now()
	urgency := domain.Urgency(req.Urgency)
	if req.Urgency == 0 {
		urgency = domain.UrgencyMedium
	}
	if !urgency.Valid() {
		writeError(w, http.StatusBadRequest, "Urgency must be 1, 2, or 3")
		return
	}

	task := domain.Task{
		ID:             req.ID,
		Title:          strings.TrimSpace(req.Title),
		Details:        req.Details,
		DueDate:        strings.TrimSpace(req.DueDate),
		Urgency:        urgency,
		LinkedNoteID:   req.LinkedNoteID,
		LinkedAudioURL: req.LinkedAudioURL,
		Archived:       req.Archived,
		DeletedAt:      req.DeletedAt,
		CreatedAt:      now.UTC(),
	}
	if req.CreatedAt != nil {
		task.CreatedAt = req.CreatedAt.UTC()
	}
	task.Score = h.engine.Score(task.DueDate, task.Urgency, now)

	if err := h.store.UpsertTask(r.Context(), userID, task); err != nil {
		h.logger.Error("failed to upsert task", "task_id", task.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save task")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

// ListNotes handles GET /notes.
func (h *PlannerHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notes, err := h.store.ListNotes(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list notes", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load notes")
		return
	}

	if notes == nil {
		notes = []domain.Note{}
	}
	writeJSON(w, http.StatusOK, map[string][]domain.Note{"notes": notes})
}

// UpsertNote handles POST /notes.
func (h *PlannerHandler) UpsertNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "Note id is required")
		return
	}
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Content) == "" && req.AudioDataURL == "" {
		writeError(w, http.StatusBadRequest, "Note needs a title, content, or audio")
		return
	}

	note := domain.Note{
		ID:           req.ID,
		Title:        strings.TrimSpace(req.Title),
		Content:      req.Content,
		NoteType:     req.NoteType,
		AudioDataURL: req.AudioDataURL,
		Archived:     req.Archived,
		DeletedAt:    req.DeletedAt,
		TaskCreated:  req.TaskCreated,
		CreatedAt:    time.Now().UTC(),
	}
	if note.Title == "" {
		note.Title = domain.DefaultNoteTitle
	}
	if note.NoteType == "" {
		note.NoteType = domain.NoteTypeVoice
	}
	if req.CreatedAt != nil {
		note.CreatedAt = req.CreatedAt.UTC()
	}

	if err := h.store.UpsertNote(r.Context(), userID, note); err != nil {
		h.logger.Error("failed to upsert note", "note_id", note.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save note")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}
