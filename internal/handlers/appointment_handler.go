package handlers

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/httperr"
	"github.com/aurelia-labs/salon-scheduler/internal/httpresp"
	"github.com/aurelia-labs/salon-scheduler/internal/middleware"
	ucAppointment "github.com/aurelia-labs/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	checkUC  *ucAppointment.CheckAvailability
	createUC *ucAppointment.CreateAppointment
	updateUC *ucAppointment.UpdateAppointment
	statusUC *ucAppointment.TransitionStatus
	deleteUC *ucAppointment.DeleteAppointment
	listUC   *ucAppointment.ListAppointments
	upcomUC  *ucAppointment.ListUpcoming

	loc    *time.Location
	logger *slog.Logger
}

func NewAppointmentHandler(
	checkUC *ucAppointment.CheckAvailability,
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	statusUC *ucAppointment.TransitionStatus,
	deleteUC *ucAppointment.DeleteAppointment,
	listUC *ucAppointment.ListAppointments,
	upcomUC *ucAppointment.ListUpcoming,
	loc *time.Location,
	logger *slog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		checkUC:  checkUC,
		createUC: createUC,
		updateUC: updateUC,
		statusUC: statusUC,
		deleteUC: deleteUC,
		listUC:   listUC,
		upcomUC:  upcomUC,
		loc:      loc,
		logger:   logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID    uint    `json:"client_id" binding:"required"`
	TherapistID uint    `json:"therapist_id" binding:"required"`
	ServiceID   uint    `json:"service_id" binding:"required"`
	StartTime   string  `json:"start_time" binding:"required"` // RFC3339
	EndTime     string  `json:"end_time"`
	Price       float64 `json:"price"`
	Notes       string  `json:"notes"`
}

type UpdateAppointmentRequest struct {
	StartTime   *string  `json:"start_time,omitempty"`
	EndTime     *string  `json:"end_time,omitempty"`
	TherapistID *uint    `json:"therapist_id,omitempty"`
	ServiceID   *uint    `json:"service_id,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

type UpdateStatusRequest struct {
	Status             string `json:"status" binding:"required"`
	CancellationReason string `json:"cancellation_reason"`
}

// ======================================================
// CHECK AVAILABILITY
// ======================================================

func (h *AppointmentHandler) CheckAvailability(c *gin.Context) {
	startStr := c.Query("startTime")
	endStr := c.Query("endTime")
	therapistStr := c.Query("therapistId")

	if startStr == "" || endStr == "" || therapistStr == "" {
		httperr.BadRequest(c, "validation_error", "startTime, endTime and therapistId are required.")
		return
	}

	start, err := parseInstant(startStr)
	if err != nil {
		httperr.BadRequest(c, "validation_error", "startTime is not a valid ISO8601 timestamp.")
		return
	}
	end, err := parseInstant(endStr)
	if err != nil {
		httperr.BadRequest(c, "validation_error", "endTime is not a valid ISO8601 timestamp.")
		return
	}

	therapistID, err := strconv.ParseUint(therapistStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "validation_error", "therapistId must be numeric.")
		return
	}

	var excludeID uint
	if s := c.Query("excludeId"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "validation_error", "excludeId must be numeric.")
			return
		}
		excludeID = uint(v)
	}

	res, err := h.checkUC.Execute(c.Request.Context(), start, end, uint(therapistID), excludeID)
	if err != nil {
		httperr.FromDomain(c, err, h.logger)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	start, err := parseInstant(req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "validation_error", "start_time is not a valid ISO8601 timestamp.")
		return
	}

	var end time.Time
	if req.EndTime != "" {
		end, err = parseInstant(req.EndTime)
		if err != nil {
			httperr.BadRequest(c, "validation_error", "end_time is not a valid ISO8601 timestamp.")
			return
		}
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:    req.ClientID,
		TherapistID: req.TherapistID,
		ServiceID:   req.ServiceID,
		StartTime:   start,
		EndTime:     end,
		Price:       req.Price,
		Notes:       req.Notes,
		ActorID:     actorID,
	})
	if err != nil {
		httperr.FromDomain(c, err, h.logger)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// UPDATE (RESCHEDULE / EDIT)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	in := ucAppointment.UpdateAppointmentInput{
		ID:          id,
		TherapistID: req.TherapistID,
		ServiceID:   req.ServiceID,
		Price:       req.Price,
		Notes:       req.Notes,
		ActorID:     actorID,
	}

	if req.StartTime != nil {
		t, err := parseInstant(*req.StartTime)
		if err != nil {
			httperr.BadRequest(c, "validation_error", "start_time is not a valid ISO8601 timestamp.")
			return
		}
		in.StartTime = &t
	}
	if req.EndTime != nil {
		t, err := parseInstant(*req.EndTime)
		if err != nil {
			httperr.BadRequest(c, "validation_error", "end_time is not a valid ISO8601 timestamp.")
			return
		}
		in.EndTime = &t
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromDomain(c, err, h.logger)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATUS TRANSITION
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.statusUC.Execute(c.Request.Context(), ucAppointment.TransitionStatusInput{
		ID:                 id,
		Status:             schedule.Status(req.Status),
		CancellationReason: req.CancellationReason,
		ActorID:            actorID,
	})
	if err != nil {
		httperr.FromDomain(c, err, h.logger)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id, actorID); err != nil {
		httperr.FromDomain(c, err, h.logger)
		return
	}

	c.Status(204)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr == "" || endStr == "" {
		httperr.BadRequest(c, "validation_error", "startDate and endDate are required.")
		return
	}

	start, err := parseLocalDate(startStr, h.loc)
	if err != nil {
		httperr.BadRequest(c, "validation_error", "startDate must be YYYY-MM-DD.")
		return
	}
	end, err := parseLocalDate(endStr, h.loc)
	if err != nil {
		httperr.BadRequest(c, "validation_error", "endDate must be YYYY-MM-DD.")
		return
	}

	filters := schedule.AppointmentFilters{}
	if s := c.Query("therapistId"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "validation_error", "therapistId must be numeric.")
			return
		}
		filters.TherapistID = uint(v)
	}
	if s := c.Query("clientId"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "validation_error", "clientId must be numeric.")
			return
		}
		filters.ClientID = uint(v)
	}
	for _, s := range c.QueryArray("status") {
		st := schedule.Status(s)
		if !schedule.IsValidStatus(st) {
			httperr.BadRequest(c, "validation_error", "unknown status "+s)
			return
		}
		filters.Statuses = append(filters.Statuses, st)
	}

	apps, err := h.listUC.Execute(c.Request.Context(), start, end.AddDate(0, 0, 1), filters)
	if err != nil {
		httperr.FromDomain(c, err, h.logger)
		return
	}

	httpresp.List(c, apps)
}

// ======================================================
// UPCOMING
// ======================================================

func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	apps, err := h.upcomUC.Execute(c.Request.Context(), time.Now().UTC())
	if err != nil {
		httperr.FromDomain(c, err, h.logger)
		return
	}

	httpresp.List(c, apps)
}

// ======================================================
// HELPERS
// ======================================================

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "validation_error", "id must be numeric.")
		return 0, false
	}
	return uint(id), true
}
