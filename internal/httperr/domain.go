package httperr

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
)

// FromDomain maps the scheduling error taxonomy onto HTTP responses.
// Storage failures log the cause server-side and return a generic
// message; everything else carries a structured reason for the UI.
func FromDomain(c *gin.Context, err error, logger *slog.Logger) {
	var (
		validation *schedule.ValidationError
		outside    *schedule.OutsideWorkingHoursError
		overlap    *schedule.OverlapError
		configErr  *schedule.ConfigurationError
		notFound   *schedule.NotFoundError
		storage    *schedule.StorageError
	)

	switch {
	case errors.As(err, &validation):
		BadRequest(c, "validation_error", validation.Msg)
	case errors.As(err, &outside):
		BadRequest(c, "outside_working_hours", outside.Msg)
	case errors.As(err, &overlap):
		Conflict(c, "time_conflict", overlap.Error(), overlap.Conflicts)
	case errors.As(err, &configErr):
		BadRequest(c, "schedule_not_configured", configErr.Msg)
	case errors.As(err, &notFound):
		NotFound(c, "not_found", notFound.Error())
	case errors.As(err, &storage):
		logger.Error("storage failure", "op", storage.Op, "err", storage.Err)
		Internal(c, "storage_error", "An internal error occurred.")
	default:
		logger.Error("unexpected error", "err", err)
		Internal(c, "internal_error", "An internal error occurred.")
	}
}
