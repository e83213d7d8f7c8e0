// Package commands implements the state-changing planner use cases. Every
// handler follows the same cycle: load the user's collection (sweeping
// expired deletions), mutate it, recompute derived state, and persist the
// whole collection back.
package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voxplan/voxplan/internal/planner/domain"
	"github.com/voxplan/voxplan/internal/planner/services"
)

// loadTasks loads a user's tasks and drops expired deletions.
func loadTasks(ctx context.Context, store domain.Store, userID uuid.UUID, now time.Time) ([]domain.Task, error) {
	tasks, err := store.LoadTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	return services.SweepTasks(tasks, now), nil
}

// saveTasks sweeps, recomputes scores, sorts, and persists the collection.
func saveTasks(ctx context.Context, store domain.Store, engine *services.ScoreEngine, userID uuid.UUID, tasks []domain.Task, now time.Time) error {
	tasks = services.SweepTasks(tasks, now)
	engine.Rescore(tasks, now)
	return store.SaveTasks(ctx, userID, tasks)
}

// loadNotes loads a user's notes and drops expired deletions.
func loadNotes(ctx context.Context, store domain.Store, userID uuid.UUID, now time.Time) ([]domain.Note, error) {
	notes, err := store.LoadNotes(ctx, userID)
	if err != nil {
		return nil, err
	}
	return services.SweepNotes(notes, now), nil
}

// saveNotes sweeps, sorts newest-first, and persists the collection.
func saveNotes(ctx context.Context, store domain.Store, userID uuid.UUID, notes []domain.Note, now time.Time) error {
	notes = services.SweepNotes(notes, now)
	services.SortNotes(notes)
	return store.SaveNotes(ctx, userID, notes)
}
