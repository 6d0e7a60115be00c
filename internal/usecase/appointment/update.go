package appointment

import (
	"context"
	"time"

	"github.com/aurelia-labs/salon-scheduler/internal/audit"
	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

// UpdateAppointmentInput is a partial update: nil fields stay as they are.
type UpdateAppointmentInput struct {
	ID uint

	StartTime   *time.Time
	EndTime     *time.Time
	TherapistID *uint
	ServiceID   *uint
	Price       *float64
	Notes       *string

	ActorID uint
}

type UpdateAppointment struct {
	store   schedule.AppointmentStore
	catalog Catalog
	checker *schedule.Checker
	audit   *audit.Dispatcher
	cache   Invalidator
}

func NewUpdateAppointment(
	store schedule.AppointmentStore,
	catalog Catalog,
	checker *schedule.Checker,
	auditor *audit.Dispatcher,
	cache Invalidator,
) *UpdateAppointment {
	return &UpdateAppointment{
		store:   store,
		catalog: catalog,
		checker: checker,
		audit:   auditor,
		cache:   cache,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.store.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	reschedule := false

	if in.TherapistID != nil && *in.TherapistID != ap.TherapistID {
		therapist, err := uc.catalog.GetTherapist(ctx, *in.TherapistID)
		if err != nil {
			return nil, err
		}
		ap.TherapistID = therapist.ID
		ap.Therapist = *therapist
		reschedule = true
	}

	if in.ServiceID != nil && *in.ServiceID != ap.ServiceID {
		service, err := uc.catalog.GetService(ctx, *in.ServiceID)
		if err != nil {
			return nil, err
		}
		ap.ServiceID = service.ID
		ap.Service = *service
		// switching service re-snapshots the price unless an explicit
		// price comes with the same update
		if in.Price == nil {
			ap.Price = service.Price
		}
	}

	if in.StartTime != nil {
		ap.StartTime = in.StartTime.UTC()
		reschedule = true
	}
	if in.EndTime != nil {
		ap.EndTime = in.EndTime.UTC()
		reschedule = true
	}
	if in.Price != nil {
		ap.Price = *in.Price
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if !ap.EndTime.After(ap.StartTime) {
		return nil, schedule.ErrValidation("end time must be after start time")
	}

	if reschedule {
		// both invariants re-run, with the appointment itself excluded
		// from the conflict scan
		res, err := uc.checker.Check(ctx, ap.StartTime, ap.EndTime, ap.TherapistID, ap.ID)
		if err != nil {
			return nil, err
		}
		if err := res.AsError(); err != nil {
			return nil, err
		}
	}

	if err := uc.store.Update(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorRef(in.ActorID),
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})
	uc.cache.Invalidate(ctx)

	return ap, nil
}
