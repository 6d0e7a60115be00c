package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *AppointmentGormRepository) FindOverlapping(
	ctx context.Context,
	therapistID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) ([]models.Appointment, error) {
	return r.findOverlapping(r.db.WithContext(ctx), therapistID, start, end, excludeID, false)
}

// findOverlapping is the one place the overlap predicate is written in
// SQL; the locked variant runs inside create/update transactions.
func (r *AppointmentGormRepository) findOverlapping(
	tx *gorm.DB,
	therapistID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
	lock bool,
) ([]models.Appointment, error) {

	q := tx.
		Model(&models.Appointment{}).
		Where(
			"therapist_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			therapistID, string(schedule.StatusCancelled), end, start,
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var apps []models.Appointment
	if err := q.
		Preload("Client").
		Preload("Service").
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, &schedule.StorageError{Op: "find_overlapping", Err: err}
	}
	return apps, nil
}

func (r *AppointmentGormRepository) FindInRange(
	ctx context.Context,
	start time.Time,
	end time.Time,
	f schedule.AppointmentFilters,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time < ?", start, end)

	if f.TherapistID != 0 {
		q = q.Where("therapist_id = ?", f.TherapistID)
	}
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.ServiceID != 0 {
		q = q.Where("service_id = ?", f.ServiceID)
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		q = q.Where("status IN ?", statuses)
	}

	var apps []models.Appointment
	if err := q.
		Preload("Client").
		Preload("Therapist").
		Preload("Service").
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, &schedule.StorageError{Op: "find_in_range", Err: err}
	}
	return apps, nil
}

func (r *AppointmentGormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Therapist").
		Preload("Service").
		First(&ap, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &schedule.NotFoundError{Entity: "appointment", ID: id}
		}
		return nil, &schedule.StorageError{Op: "find_by_id", Err: err}
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) FindUpcoming(
	ctx context.Context,
	from time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Where(
			"start_time >= ? AND status NOT IN ?",
			from,
			[]string{string(schedule.StatusCancelled), string(schedule.StatusNoShow)},
		).
		Preload("Client").
		Preload("Therapist").
		Preload("Service").
		Order("start_time ASC").
		Find(&apps).Error
	if err != nil {
		return nil, &schedule.StorageError{Op: "find_upcoming", Err: err}
	}
	return apps, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

// Create re-runs the conflict query with row locks inside the same
// transaction as the insert, so a concurrent booking for the same
// therapist/slot cannot slip between the probe and the write.
func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conflicts, err := r.findOverlapping(tx, ap.TherapistID, ap.StartTime, ap.EndTime, 0, true)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &schedule.OverlapError{Conflicts: schedule.Summarize(conflicts)}
		}
		if err := tx.Create(ap).Error; err != nil {
			return &schedule.StorageError{Op: "create_appointment", Err: err}
		}
		return nil
	})
	return err
}

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conflicts, err := r.findOverlapping(tx, ap.TherapistID, ap.StartTime, ap.EndTime, ap.ID, true)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 && schedule.BlocksSlot(schedule.Status(ap.Status)) {
			return &schedule.OverlapError{Conflicts: schedule.Summarize(conflicts)}
		}
		if err := tx.Save(ap).Error; err != nil {
			return &schedule.StorageError{Op: "update_appointment", Err: err}
		}
		return nil
	})
	return err
}

func (r *AppointmentGormRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return &schedule.StorageError{Op: "delete_appointment", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &schedule.NotFoundError{Entity: "appointment", ID: id}
	}
	return nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *AppointmentGormRepository) FindDueReminders(
	ctx context.Context,
	from time.Time,
	until time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Where(
			"status = ? AND reminder_sent = false AND start_time >= ? AND start_time <= ?",
			string(schedule.StatusConfirmed), from, until,
		).
		Preload("Client").
		Preload("Therapist").
		Preload("Service").
		Order("start_time ASC").
		Find(&apps).Error
	if err != nil {
		return nil, &schedule.StorageError{Op: "find_due_reminders", Err: err}
	}
	return apps, nil
}

func (r *AppointmentGormRepository) MarkReminderSent(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("reminder_sent", true).Error
	if err != nil {
		return &schedule.StorageError{Op: "mark_reminder_sent", Err: err}
	}
	return nil
}

// Compile-time check
var _ schedule.AppointmentStore = (*AppointmentGormRepository)(nil)
