package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/paymentrails/monei-sync/internal/application"
	"github.com/paymentrails/monei-sync/internal/domain"
)

// SyncWorker drives the automatic reconciliation loop. Each tick consults
// the cron-enable setting, so the switch takes effect without a restart;
// the sync lock keeps overlapping ticks and concurrent processes serialized.
type SyncWorker struct {
	logger   *slog.Logger
	service  *application.Service
	interval time.Duration
}

func NewSyncWorker(logger *slog.Logger, service *application.Service, interval time.Duration) *SyncWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncWorker{
		logger:   logger.With("module", "scheduler", "layer", "adapter"),
		service:  service,
		interval: interval,
	}
}

// Run executes the periodic sync loop until context cancellation.
func (w *SyncWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.syncOnce(ctx); err != nil {
			w.logger.ErrorContext(ctx, "scheduled sync failed",
				"operation", "cron_sync",
				"outcome", "failure",
				"error", err.Error(),
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *SyncWorker) syncOnce(ctx context.Context) error {
	enabled, err := w.service.CronSyncEnabled(ctx)
	if err != nil {
		return err
	}
	if !enabled {
		w.logger.DebugContext(ctx, "automatic sync disabled; skipping tick",
			"operation", "cron_sync",
			"outcome", "skipped",
		)
		return nil
	}

	summary, err := w.service.SyncCharges(ctx, application.SyncRequest{IsCron: true})
	if err != nil {
		// Another process holding the lock is expected, not a failure.
		if errors.Is(err, domain.ErrSyncInProgress) {
			w.logger.InfoContext(ctx, "sync already in progress; skipping tick",
				"operation", "cron_sync",
				"outcome", "skipped",
			)
			return nil
		}
		return err
	}

	w.logger.InfoContext(ctx, "scheduled sync completed",
		"operation", "cron_sync",
		"outcome", "success",
		"added", summary.Added,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"deleted", summary.Deleted,
	)
	return nil
}
