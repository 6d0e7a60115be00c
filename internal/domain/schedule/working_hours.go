package schedule

import (
	"time"

	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

// DayWindow is the resolved open window for one calendar date,
// anchored to that date in the salon timezone.
type DayWindow struct {
	Open       bool
	Start      time.Time
	End        time.Time
	StartLabel string // HH:mm, for error messages
	EndLabel   string
}

func parseHM(hm string) (hour, minute int, ok bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

func anchor(day time.Time, hour, minute int, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
}

// ResolveWindow combines the weekly rule with an optional date exception.
// The exception wins: closed means closed regardless of the rule, and an
// override window replaces the rule's window. A nil rule with no
// exception is a closed day.
func ResolveWindow(
	rule *models.ScheduleSettings,
	exc *models.ScheduleException,
	day time.Time,
	loc *time.Location,
) (DayWindow, error) {

	startHM, endHM := "", ""

	switch {
	case exc != nil:
		if !exc.IsWorkingDay {
			return DayWindow{Open: false}, nil
		}
		startHM, endHM = exc.StartTime, exc.EndTime
		// an open exception without its own window falls back to the rule's
		if (startHM == "" || endHM == "") && rule != nil {
			startHM, endHM = rule.StartTime, rule.EndTime
		}
	case rule != nil:
		if !rule.IsWorkingDay {
			return DayWindow{Open: false}, nil
		}
		startHM, endHM = rule.StartTime, rule.EndTime
	default:
		return DayWindow{Open: false}, nil
	}

	if startHM == "" || endHM == "" {
		return DayWindow{Open: false}, nil
	}

	sh, sm, ok := parseHM(startHM)
	if !ok {
		return DayWindow{}, ErrValidation("invalid working-hours start time %q", startHM)
	}
	eh, em, ok := parseHM(endHM)
	if !ok {
		return DayWindow{}, ErrValidation("invalid working-hours end time %q", endHM)
	}

	w := DayWindow{
		Open:       true,
		Start:      anchor(day, sh, sm, loc),
		End:        anchor(day, eh, em, loc),
		StartLabel: startHM,
		EndLabel:   endHM,
	}
	if !w.End.After(w.Start) {
		return DayWindow{}, ErrValidation("working-hours window %s-%s is empty", startHM, endHM)
	}
	return w, nil
}

// Contains is the full-containment rule: the appointment must sit
// entirely inside the window, touching the edges is allowed.
func (w DayWindow) Contains(start, end time.Time) bool {
	return !start.Before(w.Start) && !end.After(w.End)
}
