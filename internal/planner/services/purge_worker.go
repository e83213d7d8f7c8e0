package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/voxplan/voxplan/internal/planner/domain"
	"github.com/voxplan/voxplan/internal/shared/infrastructure/eventbus"
)

// RowPurger permanently removes expired soft-deleted rows from a remote
// backend. Snapshot backends sweep inline on load/save and do not need it.
type RowPurger interface {
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// PurgeWorker periodically deletes remote rows that outlived the retention
// window, so deleted items do not accumulate server-side.
type PurgeWorker struct {
	purger   RowPurger
	bus      eventbus.Publisher
	interval time.Duration
	logger   *slog.Logger
}

// NewPurgeWorker creates a worker sweeping at the given interval.
func NewPurgeWorker(purger RowPurger, bus eventbus.Publisher, interval time.Duration, logger *slog.Logger) *PurgeWorker {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &PurgeWorker{purger: purger, bus: bus, interval: interval, logger: logger}
}

// Start runs the sweep loop until the context is cancelled. The first sweep
// runs immediately.
func (w *PurgeWorker) Start(ctx context.Context) {
	w.logger.Info("purge worker started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("purge worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep.
func (w *PurgeWorker) RunOnce(ctx context.Context) error {
	return w.runOnce(ctx)
}

func (w *PurgeWorker) runOnce(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-RetentionWindow)
	purged, err := w.purger.PurgeExpired(ctx, cutoff)
	if err != nil {
		w.logger.Error("purge sweep failed", "error", err)
		return err
	}
	if purged > 0 {
		w.logger.Info("purge sweep removed expired items", "count", purged, "cutoff", cutoff)
		if w.bus != nil {
			_ = w.bus.Publish(ctx, domain.NewItemsPurged(purged))
		}
	}
	return nil
}
