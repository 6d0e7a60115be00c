package appointment

import (
	"context"

	"github.com/aurelia-labs/salon-scheduler/internal/audit"
	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/models"
	"github.com/aurelia-labs/salon-scheduler/internal/timezone"
)

type TransitionStatusInput struct {
	ID                 uint
	Status             schedule.Status
	CancellationReason string
	ActorID            uint
}

// TransitionStatus is the only mutation path after creation besides
// reschedule. Cancellation keeps the record; deletion is a separate,
// explicit operation.
type TransitionStatus struct {
	store schedule.AppointmentStore
	audit *audit.Dispatcher
	cache Invalidator
}

func NewTransitionStatus(
	store schedule.AppointmentStore,
	auditor *audit.Dispatcher,
	cache Invalidator,
) *TransitionStatus {
	return &TransitionStatus{store: store, audit: auditor, cache: cache}
}

func (uc *TransitionStatus) Execute(
	ctx context.Context,
	in TransitionStatusInput,
) (*models.Appointment, error) {

	if !schedule.IsValidStatus(in.Status) {
		return nil, schedule.ErrValidation("unknown status %q", in.Status)
	}

	ap, err := uc.store.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	from := schedule.Status(ap.Status)
	if !schedule.CanTransition(from, in.Status) {
		return nil, schedule.ErrValidation("cannot change status from %s to %s", from, in.Status)
	}

	now := timezone.Now()
	ap.Status = string(in.Status)

	switch in.Status {
	case schedule.StatusCancelled:
		ap.CancelledAt = &now
		ap.CancellationReason = in.CancellationReason
	case schedule.StatusCompleted:
		ap.CompletedAt = &now
	}

	if err := uc.store.Update(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorRef(in.ActorID),
		Action:   "appointment_" + string(in.Status),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})
	uc.cache.Invalidate(ctx)

	return ap, nil
}
