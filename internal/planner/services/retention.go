package services

import (
	"time"

	"github.com/voxplan/voxplan/internal/planner/domain"
)

// RetentionWindow is how long soft-deleted items survive before the sweep
// permanently removes them.
const RetentionWindow = 720 * time.Hour // 30 days

// Expired reports whether a soft-deleted timestamp is past the retention
// window. Items deleted exactly at the window boundary are retained.
func Expired(deletedAt *time.Time, now time.Time) bool {
	return deletedAt != nil && now.Sub(*deletedAt) > RetentionWindow
}

// SweepTasks drops tasks whose deletion is past the retention window. The
// sweep is idempotent and runs on every load and before every persist, so a
// logically expired item is never shown or re-saved.
func SweepTasks(tasks []domain.Task, now time.Time) []domain.Task {
	kept := tasks[:0]
	for _, t := range tasks {
		if Expired(t.DeletedAt, now) {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

// SweepNotes drops notes whose deletion is past the retention window.
func SweepNotes(notes []domain.Note, now time.Time) []domain.Note {
	kept := notes[:0]
	for _, n := range notes {
		if Expired(n.DeletedAt, now) {
			continue
		}
		kept = append(kept, n)
	}
	return kept
}
