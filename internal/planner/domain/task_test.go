package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("creates an active task", func(t *testing.T) {
		task, err := NewTask("  Buy groceries  ", " milk, eggs ", "2026-03-15", UrgencyHigh, now)

		require.NoError(t, err)
		assert.NotEqual(t, "", task.ID.String())
		assert.Equal(t, "Buy groceries", task.Title)
		assert.Equal(t, "milk, eggs", task.Details)
		assert.Equal(t, "2026-03-15", task.DueDate)
		assert.Equal(t, UrgencyHigh, task.Urgency)
		assert.False(t, task.Archived)
		assert.Nil(t, task.DeletedAt)
		assert.Equal(t, now, task.CreatedAt)
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		_, err := NewTask("   ", "", "", UrgencyMedium, now)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("zero urgency defaults to medium", func(t *testing.T) {
		task, err := NewTask("Call mom", "", "", 0, now)
		require.NoError(t, err)
		assert.Equal(t, UrgencyMedium, task.Urgency)
	})

	t.Run("rejects out-of-range urgency", func(t *testing.T) {
		_, err := NewTask("Call mom", "", "", Urgency(5), now)
		assert.ErrorIs(t, err, ErrBadUrgency)
	})
}

func TestTask_Lifecycle(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("archive and restore", func(t *testing.T) {
		task := &Task{Title: "t"}

		require.NoError(t, task.Archive())
		assert.True(t, task.Archived)

		task.Restore()
		assert.False(t, task.Archived)
		assert.Nil(t, task.DeletedAt)
	})

	t.Run("delete supersedes archive", func(t *testing.T) {
		task := &Task{Title: "t", Archived: true}

		task.Delete(now)

		assert.True(t, task.IsDeleted())
		assert.False(t, task.Archived)
		assert.Equal(t, now, *task.DeletedAt)
	})

	t.Run("deleted tasks cannot be archived", func(t *testing.T) {
		task := &Task{Title: "t"}
		task.Delete(now)

		assert.ErrorIs(t, task.Archive(), ErrItemDeleted)
	})

	t.Run("restore from deleted lands active, not archived", func(t *testing.T) {
		task := &Task{Title: "t", Archived: true}
		task.Delete(now)
		task.Restore()

		assert.False(t, task.IsDeleted())
		assert.False(t, task.Archived)
	})
}

func TestTask_ParsedDueDate(t *testing.T) {
	t.Run("parses a calendar date at midnight UTC", func(t *testing.T) {
		task := &Task{DueDate: "2026-03-15"}
		due, ok := task.ParsedDueDate()

		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), due)
	})

	t.Run("empty and unparseable dates report false", func(t *testing.T) {
		_, ok := (&Task{}).ParsedDueDate()
		assert.False(t, ok)

		_, ok = (&Task{DueDate: "soonish"}).ParsedDueDate()
		assert.False(t, ok)
	})
}

func TestUrgency(t *testing.T) {
	assert.True(t, UrgencyLow.Valid())
	assert.True(t, UrgencyMedium.Valid())
	assert.True(t, UrgencyHigh.Valid())
	assert.False(t, Urgency(0).Valid())
	assert.False(t, Urgency(4).Valid())

	assert.Equal(t, "low", UrgencyLow.String())
	assert.Equal(t, "medium", UrgencyMedium.String())
	assert.Equal(t, "high", UrgencyHigh.String())
	assert.Equal(t, "unknown", Urgency(9).String())
}
