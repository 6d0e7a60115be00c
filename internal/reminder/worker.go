package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/notify"
)

// Worker periodically sweeps for confirmed appointments starting within
// the reminder window that have not been reminded yet. Each appointment
// is processed inside its own error boundary: one failed notification
// never aborts the batch.
type Worker struct {
	store    schedule.AppointmentStore
	notifier notify.Notifier
	logger   *slog.Logger
	interval time.Duration
	window   time.Duration
}

func NewWorker(
	store schedule.AppointmentStore,
	notifier notify.Notifier,
	logger *slog.Logger,
	interval time.Duration,
	window time.Duration,
) *Worker {
	if interval <= 0 {
		interval = time.Hour
	}
	if window <= 0 {
		window = 25 * time.Hour
	}
	return &Worker{
		store:    store,
		notifier: notifier,
		logger:   logger,
		interval: interval,
		window:   window,
	}
}

// Run blocks until ctx is cancelled. The ticker is process-lifetime
// scoped; shutdown happens through context cancellation in main.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one pass. Exported so tests can drive it without a ticker.
func (w *Worker) Sweep(ctx context.Context) {
	now := time.Now().UTC()
	due, err := w.store.FindDueReminders(ctx, now, now.Add(w.window))
	if err != nil {
		w.logger.Error("reminder sweep query failed", "err", err)
		return
	}

	sent := 0
	for _, ap := range due {
		if err := w.notifier.AppointmentReminder(ctx, &ap); err != nil {
			w.logger.Error("reminder dispatch failed",
				"appointment", ap.ID, "reference", ap.Reference, "err", err)
			continue
		}
		if err := w.store.MarkReminderSent(ctx, ap.ID); err != nil {
			w.logger.Error("failed to mark reminder sent",
				"appointment", ap.ID, "err", err)
			continue
		}
		sent++
	}

	if len(due) > 0 {
		w.logger.Info("reminder sweep finished", "due", len(due), "sent", sent)
	}
}
