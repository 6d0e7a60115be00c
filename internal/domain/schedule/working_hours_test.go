package schedule

import (
	"testing"
	"time"

	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

var testDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday

func openRule(start, end string) *models.ScheduleSettings {
	return &models.ScheduleSettings{Weekday: 1, StartTime: start, EndTime: end, IsWorkingDay: true}
}

func TestResolveWindowFromRule(t *testing.T) {
	w, err := ResolveWindow(openRule("09:00", "17:00"), nil, testDay, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.Open {
		t.Fatal("expected an open window")
	}
	if w.Start.Hour() != 9 || w.End.Hour() != 17 {
		t.Fatalf("window = %v-%v", w.Start, w.End)
	}
	if w.StartLabel != "09:00" || w.EndLabel != "17:00" {
		t.Fatalf("labels = %q-%q", w.StartLabel, w.EndLabel)
	}
}

func TestResolveWindowClosedRule(t *testing.T) {
	rule := &models.ScheduleSettings{Weekday: 0, IsWorkingDay: false}
	w, err := ResolveWindow(rule, nil, testDay, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Open {
		t.Fatal("non-working day must resolve closed")
	}
}

func TestResolveWindowNoRuleNoException(t *testing.T) {
	w, err := ResolveWindow(nil, nil, testDay, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Open {
		t.Fatal("missing rule must mean closed, not open")
	}
}

func TestResolveWindowClosedExceptionWins(t *testing.T) {
	exc := &models.ScheduleException{Date: "2026-03-02", IsWorkingDay: false}
	w, err := ResolveWindow(openRule("09:00", "17:00"), exc, testDay, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Open {
		t.Fatal("closed exception must override an open rule")
	}
}

func TestResolveWindowExceptionOverridesHours(t *testing.T) {
	exc := &models.ScheduleException{
		Date:         "2026-03-02",
		IsWorkingDay: true,
		StartTime:    "12:00",
		EndTime:      "16:00",
	}
	w, err := ResolveWindow(openRule("09:00", "17:00"), exc, testDay, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.Open || w.Start.Hour() != 12 || w.End.Hour() != 16 {
		t.Fatalf("exception window not applied: %+v", w)
	}
}

func TestResolveWindowOpenExceptionFallsBackToRuleHours(t *testing.T) {
	exc := &models.ScheduleException{Date: "2026-03-02", IsWorkingDay: true}
	w, err := ResolveWindow(openRule("09:00", "17:00"), exc, testDay, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.Open || w.StartLabel != "09:00" || w.EndLabel != "17:00" {
		t.Fatalf("expected the rule's hours, got %+v", w)
	}
}

func TestResolveWindowOpenExceptionOnClosedDay(t *testing.T) {
	// A date-specific opening on a weekday that is normally closed.
	exc := &models.ScheduleException{
		Date:         "2026-03-02",
		IsWorkingDay: true,
		StartTime:    "10:00",
		EndTime:      "14:00",
	}
	w, err := ResolveWindow(nil, exc, testDay, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.Open || w.StartLabel != "10:00" {
		t.Fatalf("expected exception to open the day: %+v", w)
	}
}

func TestResolveWindowRejectsBadTimes(t *testing.T) {
	if _, err := ResolveWindow(openRule("9am", "17:00"), nil, testDay, time.UTC); err == nil {
		t.Fatal("expected a validation error for a malformed time")
	}
	if _, err := ResolveWindow(openRule("17:00", "09:00"), nil, testDay, time.UTC); err == nil {
		t.Fatal("expected a validation error for an inverted window")
	}
}

func TestResolveWindowAnchorsInLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Belgrade")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	w, err := ResolveWindow(openRule("09:00", "17:00"), nil, testDay, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Start.Location() != loc {
		t.Fatalf("window must be anchored in the salon zone, got %v", w.Start.Location())
	}
	// March 2nd is CET: 09:00 local is 08:00 UTC.
	if got := w.Start.UTC().Hour(); got != 8 {
		t.Fatalf("09:00 Belgrade should be 08:00 UTC in winter, got %02d:00", got)
	}
}

func TestContains(t *testing.T) {
	w, err := ResolveWindow(openRule("09:00", "17:00"), nil, testDay, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"well inside", at(10, 0), at(11, 0), true},
		{"touching both edges", at(9, 0), at(17, 0), true},
		{"starts too early", at(8, 0), at(8, 30), false},
		{"spills past close", at(16, 30), at(17, 30), false},
		{"entirely outside", at(18, 0), at(19, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.Contains(tc.start, tc.end); got != tc.want {
				t.Fatalf("Contains(%v, %v) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}
