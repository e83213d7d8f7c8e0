package queries

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxplan/voxplan/internal/planner/domain"
	"github.com/voxplan/voxplan/internal/planner/services"
)

// stubStore is a read-only in-memory domain.Store.
type stubStore struct {
	tasks map[uuid.UUID][]domain.Task
	notes map[uuid.UUID][]domain.Note
}

func newStubStore() *stubStore {
	return &stubStore{
		tasks: make(map[uuid.UUID][]domain.Task),
		notes: make(map[uuid.UUID][]domain.Note),
	}
}

func (s *stubStore) LoadTasks(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	return s.tasks[userID], nil
}

func (s *stubStore) SaveTasks(ctx context.Context, userID uuid.UUID, tasks []domain.Task) error {
	s.tasks[userID] = tasks
	return nil
}

func (s *stubStore) LoadNotes(ctx context.Context, userID uuid.UUID) ([]domain.Note, error) {
	return s.notes[userID], nil
}

func (s *stubStore) SaveNotes(ctx context.Context, userID uuid.UUID, notes []domain.Note) error {
	s.notes[userID] = notes
	return nil
}

func TestListTasksHandler(t *testing.T) {
	userID := uuid.New()
	engine := services.NewScoreEngine(services.DefaultScoreConfig())

	t.Run("rescored and ordered by score with tiers", func(t *testing.T) {
		store := newStubStore()
		today := time.Now().UTC().Format(domain.DueDateLayout)
		store.tasks[userID] = []domain.Task{
			{ID: uuid.New(), Title: "high no due", Urgency: domain.UrgencyHigh},
			{ID: uuid.New(), Title: "low due today", DueDate: today, Urgency: domain.UrgencyLow},
		}
		handler := NewListTasksHandler(store, engine)

		page, err := handler.Handle(context.Background(), ListTasksQuery{UserID: userID})

		require.NoError(t, err)
		require.Len(t, page.Tasks, 2)
		assert.Equal(t, "low due today", page.Tasks[0].Title)
		assert.Equal(t, 130, page.Tasks[0].Score)
		assert.Equal(t, services.TierHigh, page.Tasks[0].Tier)
		assert.Equal(t, "high no due", page.Tasks[1].Title)
		assert.Equal(t, 90, page.Tasks[1].Score)
		assert.Equal(t, services.TierMedium, page.Tasks[1].Tier)
	})

	t.Run("expired deletions never surface", func(t *testing.T) {
		store := newStubStore()
		expired := time.Now().UTC().Add(-31 * 24 * time.Hour)
		recent := time.Now().UTC().Add(-time.Hour)
		store.tasks[userID] = []domain.Task{
			{ID: uuid.New(), Title: "expired", DeletedAt: &expired},
			{ID: uuid.New(), Title: "recent", DeletedAt: &recent},
		}
		handler := NewListTasksHandler(store, engine)

		page, err := handler.Handle(context.Background(), ListTasksQuery{UserID: userID, View: "deleted"})

		require.NoError(t, err)
		require.Len(t, page.Tasks, 1)
		assert.Equal(t, "recent", page.Tasks[0].Title)
	})

	t.Run("paginates with clamping", func(t *testing.T) {
		store := newStubStore()
		for i := 0; i < 12; i++ {
			store.tasks[userID] = append(store.tasks[userID],
				domain.Task{ID: uuid.New(), Title: "t", Urgency: domain.UrgencyMedium})
		}
		handler := NewListTasksHandler(store, engine)

		page, err := handler.Handle(context.Background(), ListTasksQuery{UserID: userID, Page: 99, PageSize: 10})

		require.NoError(t, err)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Tasks, 2)
	})

	t.Run("empty collection yields one empty page", func(t *testing.T) {
		handler := NewListTasksHandler(newStubStore(), engine)

		page, err := handler.Handle(context.Background(), ListTasksQuery{UserID: userID})

		require.NoError(t, err)
		assert.Empty(t, page.Tasks)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 1, page.TotalPages)
	})
}

func TestListNotesHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("newest first", func(t *testing.T) {
		store := newStubStore()
		store.notes[userID] = []domain.Note{
			{ID: uuid.New(), Title: "old", CreatedAt: time.Now().UTC().Add(-48 * time.Hour)},
			{ID: uuid.New(), Title: "new", CreatedAt: time.Now().UTC()},
		}
		handler := NewListNotesHandler(store)

		page, err := handler.Handle(context.Background(), ListNotesQuery{UserID: userID})

		require.NoError(t, err)
		require.Len(t, page.Notes, 2)
		assert.Equal(t, "new", page.Notes[0].Title)
		assert.Equal(t, "old", page.Notes[1].Title)
	})

	t.Run("archived view excludes deleted notes", func(t *testing.T) {
		store := newStubStore()
		deletedAt := time.Now().UTC().Add(-time.Hour)
		store.notes[userID] = []domain.Note{
			{ID: uuid.New(), Title: "archived", Archived: true, CreatedAt: time.Now().UTC()},
			{ID: uuid.New(), Title: "deleted but stale-archived", Archived: true, DeletedAt: &deletedAt, CreatedAt: time.Now().UTC()},
		}
		handler := NewListNotesHandler(store)

		page, err := handler.Handle(context.Background(), ListNotesQuery{UserID: userID, View: "archived"})

		require.NoError(t, err)
		require.Len(t, page.Notes, 1)
		assert.Equal(t, "archived", page.Notes[0].Title)
	})
}
