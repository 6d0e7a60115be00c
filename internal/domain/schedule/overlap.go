package schedule

import (
	"time"

	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

// Overlaps is the single interval test used everywhere a collision is
// decided: [s1,e1) and [s2,e2) overlap iff s1 < e2 && e1 > s2.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// FilterOverlapping applies the shared predicate over a slice of
// appointments for one therapist. Cancelled bookings do not block the
// slot, and excludeID skips the appointment being rescheduled.
func FilterOverlapping(apps []models.Appointment, start, end time.Time, excludeID uint) []models.Appointment {
	var out []models.Appointment
	for _, ap := range apps {
		if ap.ID == excludeID && excludeID != 0 {
			continue
		}
		if !BlocksSlot(Status(ap.Status)) {
			continue
		}
		if Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, ap)
		}
	}
	return out
}

// ConflictSummary is what an overlap failure exposes to the client UI.
type ConflictSummary struct {
	ID          uint      `json:"id"`
	Reference   string    `json:"reference"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

func Summarize(apps []models.Appointment) []ConflictSummary {
	out := make([]ConflictSummary, 0, len(apps))
	for _, ap := range apps {
		out = append(out, ConflictSummary{
			ID:          ap.ID,
			Reference:   ap.Reference,
			ClientName:  ap.Client.FullName(),
			ServiceName: ap.Service.Name,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
		})
	}
	return out
}
