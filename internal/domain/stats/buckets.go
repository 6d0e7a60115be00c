package stats

import (
	"time"

	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Bucket is one chart point. Revenue skips cancelled and no-show
// bookings; the count includes every status. That asymmetry is
// deliberate and load-bearing for the dashboard.
type Bucket struct {
	Label            string  `json:"date"`
	Revenue          float64 `json:"turnover"`
	AppointmentCount int     `json:"appointments"`
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// weekStart truncates to Monday.
func weekStart(t time.Time, loc *time.Location) time.Time {
	d := dayStart(t, loc)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func monthStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}

// GranularityFor picks the bucket size from the span alone; callers
// never choose it directly. Spans are counted in inclusive calendar days.
func GranularityFor(rangeStart, rangeEnd time.Time, loc *time.Location) Granularity {
	days := SpanDays(rangeStart, rangeEnd, loc)
	switch {
	case days <= 30:
		return GranularityDay
	case days <= 90:
		return GranularityWeek
	default:
		return GranularityMonth
	}
}

// SpanDays counts inclusive calendar days between the two instants in
// loc. The dates are re-anchored in UTC before subtracting so a DST
// transition inside the range (a 23- or 25-hour day) cannot shift the
// count.
func SpanDays(rangeStart, rangeEnd time.Time, loc *time.Location) int {
	s := dayStart(rangeStart, loc)
	e := dayStart(rangeEnd, loc)
	su := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	eu := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC)
	return int(eu.Sub(su).Hours()/24) + 1
}

func periodStart(t time.Time, g Granularity, loc *time.Location) time.Time {
	switch g {
	case GranularityWeek:
		return weekStart(t, loc)
	case GranularityMonth:
		return monthStart(t, loc)
	default:
		return dayStart(t, loc)
	}
}

func periodLabel(start time.Time, g Granularity) string {
	if g == GranularityMonth {
		return start.Format("2006-01")
	}
	return start.Format("2006-01-02")
}

func nextPeriod(start time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeek:
		return start.AddDate(0, 0, 7)
	case GranularityMonth:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}

// BucketAppointments groups appointments into a gap-free series over
// [rangeStart, rangeEnd]. Every period is present even when empty.
func BucketAppointments(
	apps []models.Appointment,
	rangeStart time.Time,
	rangeEnd time.Time,
	loc *time.Location,
) []Bucket {

	g := GranularityFor(rangeStart, rangeEnd, loc)

	first := periodStart(rangeStart, g, loc)
	last := dayStart(rangeEnd, loc)

	var buckets []Bucket
	index := make(map[string]int)

	for cur := first; !cur.After(last); cur = nextPeriod(cur, g) {
		label := periodLabel(cur, g)
		index[label] = len(buckets)
		buckets = append(buckets, Bucket{Label: label})
	}

	for _, ap := range apps {
		label := periodLabel(periodStart(ap.StartTime, g, loc), g)
		i, ok := index[label]
		if !ok {
			continue
		}
		buckets[i].AppointmentCount++
		if schedule.CountsForRevenue(schedule.Status(ap.Status)) {
			buckets[i].Revenue += ap.Price
		}
	}

	return buckets
}
