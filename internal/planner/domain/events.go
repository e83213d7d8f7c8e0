package domain

import (
	"github.com/google/uuid"

	shared "github.com/voxplan/voxplan/internal/shared/domain"
)

const (
	TaskAggregateType = "Task"
	NoteAggregateType = "Note"

	RoutingKeyTaskCreated  = "planner.task.created"
	RoutingKeyTaskArchived = "planner.task.archived"
	RoutingKeyTaskDeleted  = "planner.task.deleted"
	RoutingKeyTaskRestored = "planner.task.restored"
	RoutingKeyNoteCaptured = "planner.note.captured"
	RoutingKeyNoteArchived = "planner.note.archived"
	RoutingKeyNoteDeleted  = "planner.note.deleted"
	RoutingKeyNoteRestored = "planner.note.restored"
	RoutingKeyNoteLinked   = "planner.note.linked"
	RoutingKeyItemsPurged  = "planner.items.purged"
)

// TaskCreated is emitted when a new task is created.
type TaskCreated struct {
	shared.BaseEvent
	Title string `json:"title"`
	Score int    `json:"score"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(taskID uuid.UUID, title string, score int) TaskCreated {
	return TaskCreated{
		BaseEvent: shared.NewBaseEvent(taskID, TaskAggregateType, RoutingKeyTaskCreated),
		Title:     title,
		Score:     score,
	}
}

// TaskArchived is emitted when a task is archived.
type TaskArchived struct {
	shared.BaseEvent
}

// NewTaskArchived creates a TaskArchived event.
func NewTaskArchived(taskID uuid.UUID) TaskArchived {
	return TaskArchived{BaseEvent: shared.NewBaseEvent(taskID, TaskAggregateType, RoutingKeyTaskArchived)}
}

// TaskDeleted is emitted when a task is soft-deleted.
type TaskDeleted struct {
	shared.BaseEvent
}

// NewTaskDeleted creates a TaskDeleted event.
func NewTaskDeleted(taskID uuid.UUID) TaskDeleted {
	return TaskDeleted{BaseEvent: shared.NewBaseEvent(taskID, TaskAggregateType, RoutingKeyTaskDeleted)}
}

// TaskRestored is emitted when a task returns to the active state.
type TaskRestored struct {
	shared.BaseEvent
}

// NewTaskRestored creates a TaskRestored event.
func NewTaskRestored(taskID uuid.UUID) TaskRestored {
	return TaskRestored{BaseEvent: shared.NewBaseEvent(taskID, TaskAggregateType, RoutingKeyTaskRestored)}
}

// NoteCaptured is emitted when a note is saved.
type NoteCaptured struct {
	shared.BaseEvent
	Title    string `json:"title"`
	HasAudio bool   `json:"has_audio"`
}

// NewNoteCaptured creates a NoteCaptured event.
func NewNoteCaptured(noteID uuid.UUID, title string, hasAudio bool) NoteCaptured {
	return NoteCaptured{
		BaseEvent: shared.NewBaseEvent(noteID, NoteAggregateType, RoutingKeyNoteCaptured),
		Title:     title,
		HasAudio:  hasAudio,
	}
}

// NoteArchived is emitted when a note is archived.
type NoteArchived struct {
	shared.BaseEvent
}

// NewNoteArchived creates a NoteArchived event.
func NewNoteArchived(noteID uuid.UUID) NoteArchived {
	return NoteArchived{BaseEvent: shared.NewBaseEvent(noteID, NoteAggregateType, RoutingKeyNoteArchived)}
}

// NoteDeleted is emitted when a note is soft-deleted.
type NoteDeleted struct {
	shared.BaseEvent
}

// NewNoteDeleted creates a NoteDeleted event.
func NewNoteDeleted(noteID uuid.UUID) NoteDeleted {
	return NoteDeleted{BaseEvent: shared.NewBaseEvent(noteID, NoteAggregateType, RoutingKeyNoteDeleted)}
}

// NoteRestored is emitted when a note returns to the active state.
type NoteRestored struct {
	shared.BaseEvent
}

// NewNoteRestored creates a NoteRestored event.
func NewNoteRestored(noteID uuid.UUID) NoteRestored {
	return NoteRestored{BaseEvent: shared.NewBaseEvent(noteID, NoteAggregateType, RoutingKeyNoteRestored)}
}

// NoteLinked is emitted when a task is spawned from a note.
type NoteLinked struct {
	shared.BaseEvent
	TaskID uuid.UUID `json:"task_id"`
}

// NewNoteLinked creates a NoteLinked event.
func NewNoteLinked(noteID, taskID uuid.UUID) NoteLinked {
	return NoteLinked{
		BaseEvent: shared.NewBaseEvent(noteID, NoteAggregateType, RoutingKeyNoteLinked),
		TaskID:    taskID,
	}
}

// ItemsPurged is emitted after a retention sweep permanently removed items.
type ItemsPurged struct {
	shared.BaseEvent
	Count int64 `json:"count"`
}

// NewItemsPurged creates an ItemsPurged event.
func NewItemsPurged(count int64) ItemsPurged {
	return ItemsPurged{
		BaseEvent: shared.NewBaseEvent(uuid.Nil, TaskAggregateType, RoutingKeyItemsPurged),
		Count:     count,
	}
}
