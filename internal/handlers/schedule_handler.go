package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aurelia-labs/salon-scheduler/internal/audit"
	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/httperr"
	"github.com/aurelia-labs/salon-scheduler/internal/httpresp"
	"github.com/aurelia-labs/salon-scheduler/internal/middleware"
	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

type ScheduleHandler struct {
	config schedule.ConfigStore
	audit  *audit.Dispatcher
	logger *slog.Logger
}

func NewScheduleHandler(config schedule.ConfigStore, auditor *audit.Dispatcher, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{config: config, audit: auditor, logger: logger}
}

// --------- Requests ---------

type WorkingDayConfig struct {
	Weekday      *int   `json:"weekday"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	IsWorkingDay *bool  `json:"is_working_day"`
}

type CreateExceptionRequest struct {
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	IsWorkingDay bool   `json:"is_working_day"`
	Note         string `json:"note"`
	TherapistID  *uint  `json:"therapist_id"`
}

// ======================================================
// WORKING HOURS
// ======================================================

func (h *ScheduleHandler) GetWorkingHours(c *gin.Context) {
	rules, err := h.config.ListRules(c.Request.Context())
	if err != nil {
		httperr.FromDomain(c, err, h.logger)
		return
	}

	httpresp.List(c, rules)
}

// UpdateWorkingHours is an atomic full replace of the weekly rules.
func (h *ScheduleHandler) UpdateWorkingHours(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var days []WorkingDayConfig
	if err := c.ShouldBindJSON(&days); err != nil {
		httperr.BadRequest(c, "invalid_request", "Request body must be an array of working-day rules.")
		return
	}

	rules := make([]models.ScheduleSettings, 0, len(days))
	seen := make(map[int]bool)

	for _, d := range days {
		if d.Weekday == nil || d.IsWorkingDay == nil {
			httperr.BadRequest(c, "validation_error", "Each rule needs weekday and is_working_day.")
			return
		}
		if *d.Weekday < 0 || *d.Weekday > 6 {
			httperr.BadRequest(c, "validation_error", "weekday must be between 0 (Sunday) and 6 (Saturday).")
			return
		}
		if seen[*d.Weekday] {
			httperr.BadRequest(c, "validation_error", "Duplicate rule for the same weekday.")
			return
		}
		seen[*d.Weekday] = true

		if *d.IsWorkingDay {
			if d.StartTime == "" || d.EndTime == "" {
				httperr.BadRequest(c, "validation_error", "Working days need start_time and end_time.")
				return
			}
			if !isValidHM(d.StartTime) || !isValidHM(d.EndTime) {
				httperr.BadRequest(c, "validation_error", "Times must be in HH:mm format.")
				return
			}
		}

		rules = append(rules, models.ScheduleSettings{
			Weekday:      *d.Weekday,
			StartTime:    d.StartTime,
			EndTime:      d.EndTime,
			IsWorkingDay: *d.IsWorkingDay,
		})
	}

	if err := h.config.ReplaceAllRules(c.Request.Context(), rules); err != nil {
		httperr.FromDomain(c, err, h.logger)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: &actorID,
		Action: "working_hours_replaced",
		Entity: "schedule_settings",
	})

	c.JSON(200, gin.H{"status": "ok"})
}

// ======================================================
// EXCEPTIONS
// ======================================================

func (h *ScheduleHandler) ListExceptions(c *gin.Context) {
	excs, err := h.config.ListExceptions(c.Request.Context())
	if err != nil {
		httperr.FromDomain(c, err, h.logger)
		return
	}

	httpresp.List(c, excs)
}

func (h *ScheduleHandler) CreateException(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		httperr.BadRequest(c, "validation_error", "date must be YYYY-MM-DD.")
		return
	}

	if req.IsWorkingDay && (req.StartTime != "" || req.EndTime != "") {
		if !isValidHM(req.StartTime) || !isValidHM(req.EndTime) {
			httperr.BadRequest(c, "validation_error", "Times must be in HH:mm format.")
			return
		}
	}

	exc := models.ScheduleException{
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		IsWorkingDay: req.IsWorkingDay,
		Note:         req.Note,
		TherapistID:  req.TherapistID,
	}

	if err := h.config.CreateException(c.Request.Context(), &exc); err != nil {
		httperr.FromDomain(c, err, h.logger)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "schedule_exception_created",
		Entity:   "schedule_exception",
		EntityID: &exc.ID,
	})

	httpresp.Created(c, exc)
}

func (h *ScheduleHandler) DeleteException(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.config.DeleteException(c.Request.Context(), id); err != nil {
		httperr.FromDomain(c, err, h.logger)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "schedule_exception_deleted",
		Entity:   "schedule_exception",
		EntityID: &id,
	})

	c.Status(204)
}

func isValidHM(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}
