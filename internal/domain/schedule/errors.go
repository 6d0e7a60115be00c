package schedule

import "fmt"

// ValidationError covers malformed or missing input. The checker never
// approves on ambiguous input, it fails with this instead.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func ErrValidation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// OutsideWorkingHoursError carries the configured window (or the closed
// day) in its message so the client can show which hours were violated.
type OutsideWorkingHoursError struct {
	Msg string
}

func (e *OutsideWorkingHoursError) Error() string {
	return e.Msg
}

// OverlapError carries summaries of the bookings that collide.
type OverlapError struct {
	Conflicts []ConflictSummary
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("time slot conflicts with %d existing appointment(s)", len(e.Conflicts))
}

// ConfigurationError means no working hours are configured at all.
// A single day configured as closed is a normal result, not this error.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return e.Msg
}

type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// StorageError wraps a database failure with the original cause attached
// for server-side logging.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
