package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aurelia-labs/salon-scheduler/internal/audit"
	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/models"
	"github.com/aurelia-labs/salon-scheduler/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID    uint
	TherapistID uint
	ServiceID   uint

	StartTime time.Time
	// EndTime may be zero: then the service duration decides it.
	EndTime time.Time

	// Price zero means "snapshot the service's current price".
	Price float64
	Notes string

	ActorID uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	store    schedule.AppointmentStore
	catalog  Catalog
	checker  *schedule.Checker
	notifier notify.Notifier
	audit    *audit.Dispatcher
	cache    Invalidator
}

func NewCreateAppointment(
	store schedule.AppointmentStore,
	catalog Catalog,
	checker *schedule.Checker,
	notifier notify.Notifier,
	auditor *audit.Dispatcher,
	cache Invalidator,
) *CreateAppointment {
	return &CreateAppointment{
		store:    store,
		catalog:  catalog,
		checker:  checker,
		notifier: notifier,
		audit:    auditor,
		cache:    cache,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.ClientID == 0 || in.TherapistID == 0 || in.ServiceID == 0 {
		return nil, schedule.ErrValidation("client, therapist and service are required")
	}
	if in.StartTime.IsZero() {
		return nil, schedule.ErrValidation("start time is required")
	}

	client, err := uc.catalog.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	therapist, err := uc.catalog.GetTherapist(ctx, in.TherapistID)
	if err != nil {
		return nil, err
	}
	service, err := uc.catalog.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	end := in.EndTime
	if end.IsZero() {
		if service.DurationMin <= 0 {
			return nil, schedule.ErrValidation("service has no duration, end time is required")
		}
		end = in.StartTime.Add(time.Duration(service.DurationMin) * time.Minute)
	}

	res, err := uc.checker.Check(ctx, in.StartTime, end, in.TherapistID, 0)
	if err != nil {
		return nil, err
	}
	if err := res.AsError(); err != nil {
		return nil, err
	}

	price := in.Price
	if price == 0 {
		price = service.Price
	}

	ap := &models.Appointment{
		Reference:   uuid.NewString(),
		ClientID:    client.ID,
		TherapistID: therapist.ID,
		ServiceID:   service.ID,
		StartTime:   in.StartTime.UTC(),
		EndTime:     end.UTC(),
		Status:      string(schedule.InitialStatus()),
		Price:       price,
		Notes:       in.Notes,
	}

	// the store re-checks conflicts under row locks in the same
	// transaction as the insert
	if err := uc.store.Create(ctx, ap); err != nil {
		return nil, err
	}

	ap.Client = *client
	ap.Therapist = *therapist
	ap.Service = *service

	uc.audit.Dispatch(audit.Event{
		UserID:   actorRef(in.ActorID),
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})
	uc.notifier.AppointmentCreated(ctx, ap)
	uc.cache.Invalidate(ctx)

	return ap, nil
}

func actorRef(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
