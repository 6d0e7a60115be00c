package schedule

import (
	"testing"
	"time"

	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"partial overlap", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"containment", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"back to back before", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"back to back after", at(11, 0), at(12, 0), at(10, 0), at(11, 0), false},
		{"disjoint", at(8, 0), at(9, 0), at(14, 0), at(15, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
				t.Fatalf("Overlaps(%v-%v, %v-%v) = %v, want %v",
					tc.s1.Format("15:04"), tc.e1.Format("15:04"),
					tc.s2.Format("15:04"), tc.e2.Format("15:04"),
					got, tc.want)
			}
			// symmetric by construction
			if got := Overlaps(tc.s2, tc.e2, tc.s1, tc.e1); got != tc.want {
				t.Fatalf("Overlaps is not symmetric for %s", tc.name)
			}
		})
	}
}

func TestFilterOverlapping(t *testing.T) {
	apps := []models.Appointment{
		{ID: 1, Status: string(StatusScheduled), StartTime: at(10, 0), EndTime: at(11, 0)},
		{ID: 2, Status: string(StatusCancelled), StartTime: at(10, 0), EndTime: at(11, 0)},
		{ID: 3, Status: string(StatusCompleted), StartTime: at(14, 0), EndTime: at(15, 0)},
	}

	got := FilterOverlapping(apps, at(10, 30), at(11, 30), 0)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only appointment 1 to conflict, got %v", got)
	}
}

func TestFilterOverlappingCancelledFreesSlot(t *testing.T) {
	apps := []models.Appointment{
		{ID: 1, Status: string(StatusCancelled), StartTime: at(10, 0), EndTime: at(11, 0)},
	}

	if got := FilterOverlapping(apps, at(10, 0), at(11, 0), 0); len(got) != 0 {
		t.Fatalf("cancelled appointment must not block the slot, got %v", got)
	}
}

func TestFilterOverlappingExcludesSelf(t *testing.T) {
	apps := []models.Appointment{
		{ID: 7, Status: string(StatusScheduled), StartTime: at(10, 0), EndTime: at(11, 0)},
	}

	if got := FilterOverlapping(apps, at(10, 0), at(11, 0), 7); len(got) != 0 {
		t.Fatalf("rescheduled appointment must not conflict with itself, got %v", got)
	}
	if got := FilterOverlapping(apps, at(10, 0), at(11, 0), 8); len(got) != 1 {
		t.Fatalf("different id must still conflict, got %v", got)
	}
}

func TestSummarize(t *testing.T) {
	apps := []models.Appointment{
		{
			ID:        1,
			Reference: "ref-1",
			Client:    models.Client{FirstName: "Mira", LastName: "Kovac"},
			Service:   models.Service{Name: "Deep Tissue Massage"},
			StartTime: at(10, 0),
			EndTime:   at(11, 0),
		},
	}

	got := Summarize(apps)
	if len(got) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(got))
	}
	if got[0].ClientName != "Mira Kovac" {
		t.Errorf("ClientName = %q", got[0].ClientName)
	}
	if got[0].ServiceName != "Deep Tissue Massage" {
		t.Errorf("ServiceName = %q", got[0].ServiceName)
	}
	if got[0].Reference != "ref-1" {
		t.Errorf("Reference = %q", got[0].Reference)
	}
}
