package appointment

import (
	"context"
	"time"

	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

type ListAppointments struct {
	store schedule.AppointmentStore
}

func NewListAppointments(store schedule.AppointmentStore) *ListAppointments {
	return &ListAppointments{store: store}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	start time.Time,
	end time.Time,
	f schedule.AppointmentFilters,
) ([]models.Appointment, error) {

	if start.IsZero() || end.IsZero() {
		return nil, schedule.ErrValidation("start and end dates are required")
	}
	if end.Before(start) {
		return nil, schedule.ErrValidation("end date must not precede start date")
	}

	return uc.store.FindInRange(ctx, start, end, f)
}

type ListUpcoming struct {
	store schedule.AppointmentStore
}

func NewListUpcoming(store schedule.AppointmentStore) *ListUpcoming {
	return &ListUpcoming{store: store}
}

func (uc *ListUpcoming) Execute(ctx context.Context, from time.Time) ([]models.Appointment, error) {
	return uc.store.FindUpcoming(ctx, from)
}
