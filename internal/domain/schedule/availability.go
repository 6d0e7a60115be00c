package schedule

import (
	"context"
	"fmt"
	"time"
)

const (
	ReasonOutsideWorkingHours = "outside_working_hours"
	ReasonOverlap             = "time_conflict"
)

// Result is the outcome of an availability check. The two business
// failures (outside hours, overlap) are results, not errors; bad input
// and missing configuration surface as errors.
type Result struct {
	Available bool              `json:"available"`
	Reason    string            `json:"reason,omitempty"`
	Message   string            `json:"message,omitempty"`
	Conflicts []ConflictSummary `json:"conflicts,omitempty"`
}

// Checker decides whether a proposed appointment window is legal.
// The same instance guards the HTTP probe and the create/update paths,
// so the two call sites can never drift apart.
type Checker struct {
	config    ConfigStore
	conflicts ConflictSource
	loc       *time.Location
}

func NewChecker(config ConfigStore, conflicts ConflictSource, loc *time.Location) *Checker {
	return &Checker{
		config:    config,
		conflicts: conflicts,
		loc:       loc,
	}
}

// Check validates the window against working hours first, then against
// existing bookings. excludeID skips the appointment being edited.
func (c *Checker) Check(
	ctx context.Context,
	start time.Time,
	end time.Time,
	therapistID uint,
	excludeID uint,
) (Result, error) {

	if therapistID == 0 {
		return Result{}, ErrValidation("therapist id is required")
	}
	if start.IsZero() || end.IsZero() {
		return Result{}, ErrValidation("start and end times are required")
	}
	if !end.After(start) {
		return Result{}, ErrValidation("end time must be after start time")
	}

	// The calendar day is derived in the salon timezone, never from a
	// fixed UTC offset.
	localStart := start.In(c.loc)
	date := localStart.Format("2006-01-02")

	rule, err := c.config.GetRuleForDay(ctx, int(localStart.Weekday()))
	if err != nil {
		return Result{}, err
	}
	exc, err := c.config.GetExceptionForDate(ctx, date, therapistID)
	if err != nil {
		return Result{}, err
	}

	if rule == nil && exc == nil {
		any, err := c.config.HasAnyRule(ctx)
		if err != nil {
			return Result{}, err
		}
		if !any {
			return Result{}, &ConfigurationError{Msg: "no working hours configured"}
		}
	}

	window, err := ResolveWindow(rule, exc, localStart, c.loc)
	if err != nil {
		return Result{}, err
	}

	if !window.Open {
		return Result{
			Available: false,
			Reason:    ReasonOutsideWorkingHours,
			Message:   "the salon is closed on " + date,
		}, nil
	}

	if !window.Contains(start, end) {
		return Result{
			Available: false,
			Reason:    ReasonOutsideWorkingHours,
			Message: fmt.Sprintf(
				"appointment must fall within working hours %s-%s",
				window.StartLabel, window.EndLabel,
			),
		}, nil
	}

	overlapping, err := c.conflicts.FindOverlapping(ctx, therapistID, start, end, excludeID)
	if err != nil {
		return Result{}, err
	}
	if len(overlapping) > 0 {
		return Result{
			Available: false,
			Reason:    ReasonOverlap,
			Message:   "the therapist already has an appointment in this time slot",
			Conflicts: Summarize(overlapping),
		}, nil
	}

	return Result{Available: true}, nil
}

// AsError converts a negative result into the matching typed error for
// the create/update guard path.
func (r Result) AsError() error {
	if r.Available {
		return nil
	}
	if r.Reason == ReasonOverlap {
		return &OverlapError{Conflicts: r.Conflicts}
	}
	return &OutsideWorkingHoursError{Msg: r.Message}
}
