package stats

import (
	"time"

	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

const workdayHours = 8.0

// OccupancyRate is booked hours over available hours for one therapist:
// the sum of service durations of their kept appointments in the range,
// divided by working-day-count x 8 hours. Cancelled and no-show
// bookings do not count as booked time.
func OccupancyRate(
	apps []models.Appointment,
	rules []models.ScheduleSettings,
	rangeStart time.Time,
	rangeEnd time.Time,
	loc *time.Location,
) float64 {

	workingDays := countWorkingDays(rules, rangeStart, rangeEnd, loc)
	if workingDays == 0 {
		return 0
	}

	var bookedHours float64
	for _, ap := range apps {
		if !schedule.CountsForRevenue(schedule.Status(ap.Status)) {
			continue
		}
		if ap.Service.DurationMin > 0 {
			bookedHours += float64(ap.Service.DurationMin) / 60
		} else {
			bookedHours += ap.EndTime.Sub(ap.StartTime).Hours()
		}
	}

	return bookedHours / (float64(workingDays) * workdayHours)
}

func countWorkingDays(rules []models.ScheduleSettings, rangeStart, rangeEnd time.Time, loc *time.Location) int {
	working := make(map[int]bool, len(rules))
	for _, r := range rules {
		working[r.Weekday] = r.IsWorkingDay
	}

	count := 0
	last := dayStart(rangeEnd, loc)
	for cur := dayStart(rangeStart, loc); !cur.After(last); cur = cur.AddDate(0, 0, 1) {
		if working[int(cur.Weekday())] {
			count++
		}
	}
	return count
}
