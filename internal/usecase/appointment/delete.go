package appointment

import (
	"context"

	"github.com/aurelia-labs/salon-scheduler/internal/audit"
	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
)

type DeleteAppointment struct {
	store schedule.AppointmentStore
	audit *audit.Dispatcher
	cache Invalidator
}

func NewDeleteAppointment(
	store schedule.AppointmentStore,
	auditor *audit.Dispatcher,
	cache Invalidator,
) *DeleteAppointment {
	return &DeleteAppointment{store: store, audit: auditor, cache: cache}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, id uint, actorID uint) error {
	if err := uc.store.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorRef(actorID),
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
	})
	uc.cache.Invalidate(ctx)

	return nil
}
