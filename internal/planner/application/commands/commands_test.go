package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxplan/voxplan/internal/planner/domain"
	"github.com/voxplan/voxplan/internal/planner/services"
	shared "github.com/voxplan/voxplan/internal/shared/domain"
)

// stubStore is an in-memory domain.Store for handler tests.
type stubStore struct {
	tasks   map[uuid.UUID][]domain.Task
	notes   map[uuid.UUID][]domain.Note
	loadErr error
	saveErr error
}

func newStubStore() *stubStore {
	return &stubStore{
		tasks: make(map[uuid.UUID][]domain.Task),
		notes: make(map[uuid.UUID][]domain.Note),
	}
}

func (s *stubStore) LoadTasks(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	return s.tasks[userID], s.loadErr
}

func (s *stubStore) SaveTasks(ctx context.Context, userID uuid.UUID, tasks []domain.Task) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.tasks[userID] = append([]domain.Task(nil), tasks...)
	return nil
}

func (s *stubStore) LoadNotes(ctx context.Context, userID uuid.UUID) ([]domain.Note, error) {
	return s.notes[userID], s.loadErr
}

func (s *stubStore) SaveNotes(ctx context.Context, userID uuid.UUID, notes []domain.Note) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.notes[userID] = append([]domain.Note(nil), notes...)
	return nil
}

// recordingBus captures published routing keys.
type recordingBus struct {
	events []shared.DomainEvent
}

func (b *recordingBus) Publish(ctx context.Context, event shared.DomainEvent) error {
	b.events = append(b.events, event)
	return nil
}

func (b *recordingBus) routingKeys() []string {
	keys := make([]string, 0, len(b.events))
	for _, e := range b.events {
		keys = append(keys, e.RoutingKey())
	}
	return keys
}

func testEngine() *services.ScoreEngine {
	return services.NewScoreEngine(services.DefaultScoreConfig())
}

func TestCreateTaskHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("creates and persists a scored task", func(t *testing.T) {
		store := newStubStore()
		bus := &recordingBus{}
		handler := NewCreateTaskHandler(store, testEngine(), bus)

		result, err := handler.Handle(context.Background(), CreateTaskCommand{
			UserID:  userID,
			Title:   "Buy groceries",
			Urgency: domain.UrgencyHigh,
		})

		require.NoError(t, err)
		assert.Equal(t, "Buy groceries", result.Task.Title)
		assert.Equal(t, 90, result.Task.Score)

		saved := store.tasks[userID]
		require.Len(t, saved, 1)
		assert.Equal(t, result.Task.ID, saved[0].ID)
		assert.Equal(t, []string{"planner.task.created"}, bus.routingKeys())
	})

	t.Run("rejects an empty title without persisting", func(t *testing.T) {
		store := newStubStore()
		handler := NewCreateTaskHandler(store, testEngine(), nil)

		_, err := handler.Handle(context.Background(), CreateTaskCommand{UserID: userID, Title: "  "})

		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
		assert.Empty(t, store.tasks[userID])
	})

	t.Run("persisted collection is sorted by score", func(t *testing.T) {
		store := newStubStore()
		handler := NewCreateTaskHandler(store, testEngine(), nil)

		_, err := handler.Handle(context.Background(), CreateTaskCommand{UserID: userID, Title: "low", Urgency: domain.UrgencyLow})
		require.NoError(t, err)
		_, err = handler.Handle(context.Background(), CreateTaskCommand{UserID: userID, Title: "high", Urgency: domain.UrgencyHigh})
		require.NoError(t, err)

		saved := store.tasks[userID]
		require.Len(t, saved, 2)
		assert.Equal(t, "high", saved[0].Title)
		assert.Equal(t, "low", saved[1].Title)
	})

	t.Run("propagates store failures", func(t *testing.T) {
		store := newStubStore()
		store.loadErr = errors.New("backend down")
		handler := NewCreateTaskHandler(store, testEngine(), nil)

		_, err := handler.Handle(context.Background(), CreateTaskCommand{UserID: userID, Title: "x"})
		assert.Error(t, err)
	})
}

func TestCaptureNoteHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("saves the note at the head of the collection", func(t *testing.T) {
		store := newStubStore()
		bus := &recordingBus{}
		handler := NewCaptureNoteHandler(store, bus)

		first, err := handler.Handle(context.Background(), CaptureNoteCommand{UserID: userID, Content: "first"})
		require.NoError(t, err)
		second, err := handler.Handle(context.Background(), CaptureNoteCommand{UserID: userID, Content: "second"})
		require.NoError(t, err)

		saved := store.notes[userID]
		require.Len(t, saved, 2)
		assert.Equal(t, second.Note.ID, saved[0].ID)
		assert.Equal(t, first.Note.ID, saved[1].ID)
		assert.Equal(t, []string{"planner.note.captured", "planner.note.captured"}, bus.routingKeys())
	})

	t.Run("untitled note gets the default title", func(t *testing.T) {
		store := newStubStore()
		handler := NewCaptureNoteHandler(store, nil)

		result, err := handler.Handle(context.Background(), CaptureNoteCommand{UserID: userID, Content: "words"})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultNoteTitle, result.Note.Title)
	})

	t.Run("rejects an empty note", func(t *testing.T) {
		handler := NewCaptureNoteHandler(newStubStore(), nil)

		_, err := handler.Handle(context.Background(), CaptureNoteCommand{UserID: userID})
		assert.ErrorIs(t, err, domain.ErrEmptyNote)
	})
}

func TestCreateTaskFromNoteHandler(t *testing.T) {
	userID := uuid.New()

	seedNote := func(store *stubStore) domain.Note {
		note, err := domain.NewNote("Groceries", "milk", "data:audio/webm;base64,xyz", time.Now().UTC())
		require.NoError(t, err)
		store.notes[userID] = []domain.Note{*note}
		return *note
	}

	t.Run("spawns a linked task and consumes the note", func(t *testing.T) {
		store := newStubStore()
		note := seedNote(store)
		bus := &recordingBus{}
		handler := NewCreateTaskFromNoteHandler(store, testEngine(), bus)

		result, err := handler.Handle(context.Background(), CreateTaskFromNoteCommand{
			UserID: userID,
			NoteID: note.ID,
			Title:  "Buy milk",
		})

		require.NoError(t, err)
		require.True(t, result.Created)
		require.NotNil(t, result.Task.LinkedNoteID)
		assert.Equal(t, note.ID, *result.Task.LinkedNoteID)
		assert.Equal(t, note.AudioDataURL, result.Task.LinkedAudioURL)

		assert.True(t, store.notes[userID][0].TaskCreated)
		require.Len(t, store.tasks[userID], 1)
		assert.Equal(t, []string{"planner.note.linked", "planner.task.created"}, bus.routingKeys())
	})

	t.Run("second link attempt is a silent no-op", func(t *testing.T) {
		store := newStubStore()
		note := seedNote(store)
		handler := NewCreateTaskFromNoteHandler(store, testEngine(), nil)

		first, err := handler.Handle(context.Background(), CreateTaskFromNoteCommand{UserID: userID, NoteID: note.ID})
		require.NoError(t, err)
		require.True(t, first.Created)

		second, err := handler.Handle(context.Background(), CreateTaskFromNoteCommand{UserID: userID, NoteID: note.ID})
		require.NoError(t, err)
		assert.False(t, second.Created)
		assert.Len(t, store.tasks[userID], 1, "no second task is created")
	})

	t.Run("unknown note fails with not found", func(t *testing.T) {
		handler := NewCreateTaskFromNoteHandler(newStubStore(), testEngine(), nil)

		_, err := handler.Handle(context.Background(), CreateTaskFromNoteCommand{UserID: userID, NoteID: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTaskLifecycleHandlers(t *testing.T) {
	userID := uuid.New()

	seedTask := func(store *stubStore) domain.Task {
		task, err := domain.NewTask("Write report", "", "", domain.UrgencyMedium, time.Now().UTC())
		require.NoError(t, err)
		store.tasks[userID] = []domain.Task{*task}
		return *task
	}

	t.Run("archive then restore", func(t *testing.T) {
		store := newStubStore()
		task := seedTask(store)
		cmd := TaskLifecycleCommand{UserID: userID, TaskID: task.ID}

		require.NoError(t, NewArchiveTaskHandler(store, testEngine(), nil).Handle(context.Background(), cmd))
		assert.True(t, store.tasks[userID][0].Archived)

		require.NoError(t, NewRestoreTaskHandler(store, testEngine(), nil).Handle(context.Background(), cmd))
		assert.False(t, store.tasks[userID][0].Archived)
	})

	t.Run("delete supersedes archive and restore clears both", func(t *testing.T) {
		store := newStubStore()
		task := seedTask(store)
		cmd := TaskLifecycleCommand{UserID: userID, TaskID: task.ID}

		require.NoError(t, NewArchiveTaskHandler(store, testEngine(), nil).Handle(context.Background(), cmd))
		require.NoError(t, NewDeleteTaskHandler(store, testEngine(), nil).Handle(context.Background(), cmd))

		stored := store.tasks[userID][0]
		assert.NotNil(t, stored.DeletedAt)
		assert.False(t, stored.Archived)

		require.NoError(t, NewRestoreTaskHandler(store, testEngine(), nil).Handle(context.Background(), cmd))
		stored = store.tasks[userID][0]
		assert.Nil(t, stored.DeletedAt)
		assert.False(t, stored.Archived)
	})

	t.Run("archiving a deleted task fails", func(t *testing.T) {
		store := newStubStore()
		task := seedTask(store)
		cmd := TaskLifecycleCommand{UserID: userID, TaskID: task.ID}

		require.NoError(t, NewDeleteTaskHandler(store, testEngine(), nil).Handle(context.Background(), cmd))
		err := NewArchiveTaskHandler(store, testEngine(), nil).Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, domain.ErrItemDeleted)
	})

	t.Run("unknown task fails with not found", func(t *testing.T) {
		store := newStubStore()
		seedTask(store)

		err := NewArchiveTaskHandler(store, testEngine(), nil).Handle(context.Background(),
			TaskLifecycleCommand{UserID: userID, TaskID: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestNoteLifecycleHandlers(t *testing.T) {
	userID := uuid.New()

	store := newStubStore()
	note, err := domain.NewNote("n", "content", "", time.Now().UTC())
	require.NoError(t, err)
	store.notes[userID] = []domain.Note{*note}
	cmd := NoteLifecycleCommand{UserID: userID, NoteID: note.ID}

	require.NoError(t, NewArchiveNoteHandler(store, nil).Handle(context.Background(), cmd))
	assert.True(t, store.notes[userID][0].Archived)

	require.NoError(t, NewDeleteNoteHandler(store, nil).Handle(context.Background(), cmd))
	assert.NotNil(t, store.notes[userID][0].DeletedAt)
	assert.False(t, store.notes[userID][0].Archived)

	require.NoError(t, NewRestoreNoteHandler(store, nil).Handle(context.Background(), cmd))
	assert.Nil(t, store.notes[userID][0].DeletedAt)

	err = NewArchiveNoteHandler(store, nil).Handle(context.Background(),
		NoteLifecycleCommand{UserID: userID, NoteID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
