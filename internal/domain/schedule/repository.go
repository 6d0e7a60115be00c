package schedule

import (
	"context"
	"time"

	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

// ConfigStore is the schedule configuration read/write contract.
// A missing rule for a day is returned as (nil, nil): closed, not an error.
type ConfigStore interface {
	GetRuleForDay(ctx context.Context, weekday int) (*models.ScheduleSettings, error)
	HasAnyRule(ctx context.Context) (bool, error)
	ReplaceAllRules(ctx context.Context, rules []models.ScheduleSettings) error
	ListRules(ctx context.Context) ([]models.ScheduleSettings, error)

	// GetExceptionForDate prefers a therapist-scoped exception over a
	// salon-wide one for the same date. Absent is (nil, nil).
	GetExceptionForDate(ctx context.Context, date string, therapistID uint) (*models.ScheduleException, error)
	CreateException(ctx context.Context, exc *models.ScheduleException) error
	DeleteException(ctx context.Context, id uint) error
	ListExceptions(ctx context.Context) ([]models.ScheduleException, error)
}

// ConflictSource returns the bookings that collide with a proposed
// window for one therapist, self excluded when excludeID != 0.
type ConflictSource interface {
	FindOverlapping(ctx context.Context, therapistID uint, start, end time.Time, excludeID uint) ([]models.Appointment, error)
}

// AppointmentFilters narrows range queries.
type AppointmentFilters struct {
	TherapistID uint
	ClientID    uint
	ServiceID   uint
	Statuses    []Status
}

// AppointmentStore is the persistence contract the usecases depend on.
type AppointmentStore interface {
	ConflictSource

	FindInRange(ctx context.Context, start, end time.Time, f AppointmentFilters) ([]models.Appointment, error)
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)
	FindUpcoming(ctx context.Context, from time.Time) ([]models.Appointment, error)

	// Create and Update run the conflict re-check and the write inside
	// one transaction with row locks, closing the probe/create race.
	Create(ctx context.Context, ap *models.Appointment) error
	Update(ctx context.Context, ap *models.Appointment) error
	Delete(ctx context.Context, id uint) error

	FindDueReminders(ctx context.Context, from, until time.Time) ([]models.Appointment, error)
	MarkReminderSent(ctx context.Context, id uint) error
}
