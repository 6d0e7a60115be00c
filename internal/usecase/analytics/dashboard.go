package analytics

import (
	"context"
	"time"

	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/domain/stats"
)

type DashboardStats struct {
	PeriodAppointments int            `json:"period_appointments"`
	ActiveClients      int            `json:"active_clients"`
	TotalTurnover      float64        `json:"total_turnover"`
	ChartData          []stats.Bucket `json:"chart_data"`
}

type Dashboard struct {
	store schedule.AppointmentStore
	loc   *time.Location
}

func NewDashboard(store schedule.AppointmentStore, loc *time.Location) *Dashboard {
	return &Dashboard{store: store, loc: loc}
}

// Execute aggregates the dashboard view for an inclusive calendar
// range. rangeStart and rangeEnd are local-midnight instants.
func (uc *Dashboard) Execute(
	ctx context.Context,
	rangeStart time.Time,
	rangeEnd time.Time,
) (*DashboardStats, error) {

	if rangeEnd.Before(rangeStart) {
		return nil, schedule.ErrValidation("end date must not precede start date")
	}

	apps, err := uc.store.FindInRange(
		ctx,
		rangeStart,
		rangeEnd.AddDate(0, 0, 1),
		schedule.AppointmentFilters{},
	)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		PeriodAppointments: len(apps),
		ActiveClients:      stats.CountDistinctClients(apps),
		TotalTurnover:      stats.TotalRevenue(apps),
		ChartData:          stats.BucketAppointments(apps, rangeStart, rangeEnd, uc.loc),
	}, nil
}
