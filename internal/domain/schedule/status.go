package schedule

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CountsForRevenue reports whether an appointment in this status
// contributes to turnover. Cancelled and no-show bookings never do.
func CountsForRevenue(s Status) bool {
	return s != StatusCancelled && s != StatusNoShow
}

// BlocksSlot reports whether an appointment in this status occupies its
// time slot for conflict detection. Only cancellation frees the slot.
func BlocksSlot(s Status) bool {
	return s != StatusCancelled
}

// IsUpcomingStatus filters the reminder/upcoming views.
func IsUpcomingStatus(s Status) bool {
	return s != StatusCancelled && s != StatusNoShow
}

func InitialStatus() Status {
	return StatusScheduled
}

// allowed status transitions after creation
var transitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

func CanTransition(from, to Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}
