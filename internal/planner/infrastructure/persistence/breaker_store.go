package persistence

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/voxplan/voxplan/internal/planner/domain"
)

// BreakerStore decorates a remote store with a circuit breaker so a dead
// backend fails fast instead of stalling every request. Backend failures
// stay terminal per-request; the breaker never retries.
type BreakerStore struct {
	inner   domain.Store
	breaker *gobreaker.CircuitBreaker[any]
}

// NewBreakerStore wraps the store with default breaker settings.
func NewBreakerStore(inner domain.Store, logger *slog.Logger) *BreakerStore {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        "planner-store",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"store", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &BreakerStore{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

// LoadTasks loads through the breaker.
func (s *BreakerStore) LoadTasks(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	result, err := s.breaker.Execute(func() (any, error) {
		return s.inner.LoadTasks(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	tasks, _ := result.([]domain.Task)
	return tasks, nil
}

// SaveTasks saves through the breaker.
func (s *BreakerStore) SaveTasks(ctx context.Context, userID uuid.UUID, tasks []domain.Task) error {
	_, err := s.breaker.Execute(func() (any, error) {
		return nil, s.inner.SaveTasks(ctx, userID, tasks)
	})
	return err
}

// LoadNotes loads through the breaker.
func (s *BreakerStore) LoadNotes(ctx context.Context, userID uuid.UUID) ([]domain.Note, error) {
	result, err := s.breaker.Execute(func() (any, error) {
		return s.inner.LoadNotes(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	notes, _ := result.([]domain.Note)
	return notes, nil
}

// SaveNotes saves through the breaker.
func (s *BreakerStore) SaveNotes(ctx context.Context, userID uuid.UUID, notes []domain.Note) error {
	_, err := s.breaker.Execute(func() (any, error) {
		return nil, s.inner.SaveNotes(ctx, userID, notes)
	})
	return err
}
