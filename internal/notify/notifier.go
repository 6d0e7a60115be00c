package notify

import (
	"context"
	"log/slog"

	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

// Notifier is the extension point for booking notifications. Delivery
// (email, SMS) is plugged in behind this interface; the core only
// decides when to notify.
type Notifier interface {
	AppointmentCreated(ctx context.Context, ap *models.Appointment)
	AppointmentReminder(ctx context.Context, ap *models.Appointment) error
}

// LogNotifier is the shipped implementation: it records the
// notification instead of delivering it.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) AppointmentCreated(ctx context.Context, ap *models.Appointment) {
	n.logger.Info("appointment confirmation",
		"reference", ap.Reference,
		"client", ap.Client.FullName(),
		"therapist", ap.Therapist.Name,
		"service", ap.Service.Name,
		"start", ap.StartTime,
	)
}

func (n *LogNotifier) AppointmentReminder(ctx context.Context, ap *models.Appointment) error {
	n.logger.Info("appointment reminder",
		"reference", ap.Reference,
		"client", ap.Client.FullName(),
		"start", ap.StartTime,
	)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
