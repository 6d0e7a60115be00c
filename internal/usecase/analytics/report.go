package analytics

import (
	"context"
	"time"

	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/domain/stats"
)

const (
	FilterTherapist = "therapist"
	FilterService   = "service"
)

type Filter struct {
	Type  string
	Value uint
}

type PeriodSummary struct {
	RangeStart       string  `json:"range_start"`
	RangeEnd         string  `json:"range_end"`
	TotalRevenue     float64 `json:"total_revenue"`
	AppointmentCount int     `json:"appointment_count"`
}

type Report struct {
	Current  PeriodSummary `json:"current"`
	Previous PeriodSummary `json:"previous"`

	Series      []stats.Bucket           `json:"series"`
	ByTherapist []stats.TherapistRevenue `json:"by_therapist"`
	Services    []stats.ServiceStat      `json:"services"`

	// Occupancy is present only when filtering by therapist.
	Occupancy *float64 `json:"occupancy,omitempty"`
}

type Analytics struct {
	store  schedule.AppointmentStore
	config schedule.ConfigStore
	loc    *time.Location
}

func NewAnalytics(store schedule.AppointmentStore, config schedule.ConfigStore, loc *time.Location) *Analytics {
	return &Analytics{store: store, config: config, loc: loc}
}

func (uc *Analytics) Execute(
	ctx context.Context,
	rangeStart time.Time,
	rangeEnd time.Time,
	filter Filter,
) (*Report, error) {

	if rangeEnd.Before(rangeStart) {
		return nil, schedule.ErrValidation("end date must not precede start date")
	}

	filters := schedule.AppointmentFilters{}
	switch filter.Type {
	case FilterTherapist:
		if filter.Value == 0 {
			return nil, schedule.ErrValidation("therapist filter requires a value")
		}
		filters.TherapistID = filter.Value
	case FilterService:
		if filter.Value == 0 {
			return nil, schedule.ErrValidation("service filter requires a value")
		}
		filters.ServiceID = filter.Value
	case "":
	default:
		return nil, schedule.ErrValidation("unknown filter type %q", filter.Type)
	}

	current, err := uc.store.FindInRange(ctx, rangeStart, rangeEnd.AddDate(0, 0, 1), filters)
	if err != nil {
		return nil, err
	}

	// previous period = the same span immediately before this one
	spanDays := stats.SpanDays(rangeStart, rangeEnd, uc.loc)
	prevEnd := rangeStart.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(spanDays - 1))

	previous, err := uc.store.FindInRange(ctx, prevStart, prevEnd.AddDate(0, 0, 1), filters)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Current: PeriodSummary{
			RangeStart:       rangeStart.Format("2006-01-02"),
			RangeEnd:         rangeEnd.Format("2006-01-02"),
			TotalRevenue:     stats.TotalRevenue(current),
			AppointmentCount: len(current),
		},
		Previous: PeriodSummary{
			RangeStart:       prevStart.Format("2006-01-02"),
			RangeEnd:         prevEnd.Format("2006-01-02"),
			TotalRevenue:     stats.TotalRevenue(previous),
			AppointmentCount: len(previous),
		},
		Series:      stats.BucketAppointments(current, rangeStart, rangeEnd, uc.loc),
		ByTherapist: stats.RevenueByTherapist(current),
		Services:    stats.ServiceDistribution(current),
	}

	if filter.Type == FilterTherapist {
		rules, err := uc.config.ListRules(ctx)
		if err != nil {
			return nil, err
		}
		occ := stats.OccupancyRate(current, rules, rangeStart, rangeEnd, uc.loc)
		report.Occupancy = &occ
	}

	return report, nil
}
