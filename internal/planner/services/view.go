package services

import (
	"sort"
	"time"

	"github.com/voxplan/voxplan/internal/planner/domain"
)

// View selects which lifecycle slice of the collection to show.
type View string

const (
	ViewActive   View = "active"
	ViewArchived View = "archived"
	ViewDeleted  View = "deleted"
)

// ParseView maps a request string onto a view, defaulting to active.
func ParseView(s string) View {
	switch View(s) {
	case ViewArchived:
		return ViewArchived
	case ViewDeleted:
		return ViewDeleted
	default:
		return ViewActive
	}
}

// Page is one page of a filtered collection. TotalPages is never zero: an
// empty result still has one (empty) page.
type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
}

// DefaultPageSize is used when a request does not specify a page size.
const DefaultPageSize = 10

// Paginate clamps the requested page into [1, totalPages] and slices out
// that page.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		TotalPages: totalPages,
	}
}

// dateRange is the inclusive [from 00:00:00, to 23:59:59] window parsed from
// calendar-date strings. Either bound may be absent.
type dateRange struct {
	from, to time.Time
	hasFrom  bool
	hasTo    bool
}

func parseDateRange(dateFrom, dateTo string) dateRange {
	var r dateRange
	if dateFrom != "" {
		if from, err := time.ParseInLocation(domain.DueDateLayout, dateFrom, time.UTC); err == nil {
			r.from = from
			r.hasFrom = true
		}
	}
	if dateTo != "" {
		if to, err := time.ParseInLocation(domain.DueDateLayout, dateTo, time.UTC); err == nil {
			r.to = to.Add(24*time.Hour - time.Second)
			r.hasTo = true
		}
	}
	return r
}

func (r dateRange) active() bool {
	return r.hasFrom || r.hasTo
}

func (r dateRange) contains(t time.Time) bool {
	if r.hasFrom && t.Before(r.from) {
		return false
	}
	if r.hasTo && t.After(r.to) {
		return false
	}
	return true
}

// FilterTasks applies the date-range filter and then the lifecycle filter.
// The range keys on CreatedAt, falling back to the due date for tasks
// persisted before creation timestamps existed; tasks without any parseable
// date are excluded while a range is active.
func FilterTasks(tasks []domain.Task, view View, dateFrom, dateTo string) []domain.Task {
	r := parseDateRange(dateFrom, dateTo)

	var out []domain.Task
	for _, t := range tasks {
		if r.active() {
			ts, ok := t.CreatedAt.UTC(), !t.CreatedAt.IsZero()
			if !ok {
				ts, ok = t.ParsedDueDate()
			}
			if !ok || !r.contains(ts) {
				continue
			}
		}
		if !matchesView(view, t.Archived, t.DeletedAt) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterNotes applies the date-range filter on CreatedAt and then the
// lifecycle filter.
func FilterNotes(notes []domain.Note, view View, dateFrom, dateTo string) []domain.Note {
	r := parseDateRange(dateFrom, dateTo)

	var out []domain.Note
	for _, n := range notes {
		if r.active() {
			if n.CreatedAt.IsZero() || !r.contains(n.CreatedAt.UTC()) {
				continue
			}
		}
		if !matchesView(view, n.Archived, n.DeletedAt) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// matchesView implements the lifecycle precedence: a deleted item is never
// shown as archived, even when it still carries a stale archived flag.
func matchesView(view View, archived bool, deletedAt *time.Time) bool {
	deleted := deletedAt != nil
	switch view {
	case ViewDeleted:
		return deleted
	case ViewArchived:
		return !deleted && archived
	default:
		return !deleted && !archived
	}
}

// SortNotes orders notes most-recently-created first. The sort is stable,
// so notes sharing a timestamp keep their insertion order.
func SortNotes(notes []domain.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
}
