package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/voxplan/voxplan/internal/planner/domain"
)

func TestExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		deletedAt *time.Time
		want      bool
	}{
		{"not deleted", nil, false},
		{"deleted just now", timePtr(now), false},
		{"one second short of the window", timePtr(now.Add(-RetentionWindow + time.Second)), false},
		{"exactly at the window boundary", timePtr(now.Add(-RetentionWindow)), false},
		{"one second past the window", timePtr(now.Add(-RetentionWindow - time.Second)), true},
		{"deleted months ago", timePtr(now.Add(-90 * 24 * time.Hour)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expired(tt.deletedAt, now))
		})
	}
}

func TestSweepTasks(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-24 * time.Hour)
	expired := now.Add(-31 * 24 * time.Hour)

	tasks := []domain.Task{
		{Title: "active"},
		{Title: "recently deleted", DeletedAt: &recent},
		{Title: "expired", DeletedAt: &expired},
	}

	kept := SweepTasks(tasks, now)

	assert.Len(t, kept, 2)
	assert.Equal(t, "active", kept[0].Title)
	assert.Equal(t, "recently deleted", kept[1].Title)
}

func TestSweepNotes(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	expired := now.Add(-RetentionWindow - time.Minute)

	notes := []domain.Note{
		{Title: "keep"},
		{Title: "drop", DeletedAt: &expired},
	}

	kept := SweepNotes(notes, now)

	assert.Len(t, kept, 1)
	assert.Equal(t, "keep", kept[0].Title)
}

func TestSweepTasks_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	expired := now.Add(-31 * 24 * time.Hour)

	tasks := []domain.Task{{Title: "a"}, {Title: "b", DeletedAt: &expired}}

	once := SweepTasks(tasks, now)
	twice := SweepTasks(once, now)

	assert.Equal(t, once, twice)
}

func timePtr(t time.Time) *time.Time { return &t }
