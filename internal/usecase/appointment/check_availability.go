package appointment

import (
	"context"
	"time"

	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
)

// CheckAvailability serves the client-side probe. It delegates to the
// same checker instance the create/update guards use, so the probe can
// never disagree with the write path.
type CheckAvailability struct {
	checker *schedule.Checker
}

func NewCheckAvailability(checker *schedule.Checker) *CheckAvailability {
	return &CheckAvailability{checker: checker}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	start time.Time,
	end time.Time,
	therapistID uint,
	excludeID uint,
) (schedule.Result, error) {
	return uc.checker.Check(ctx, start, end, therapistID, excludeID)
}
