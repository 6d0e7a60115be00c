package handlers

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aurelia-labs/salon-scheduler/internal/cache"
	"github.com/aurelia-labs/salon-scheduler/internal/httperr"
	ucAnalytics "github.com/aurelia-labs/salon-scheduler/internal/usecase/analytics"
)

type DashboardHandler struct {
	dashboard *ucAnalytics.Dashboard
	cache     *cache.AnalyticsCache
	loc       *time.Location
	logger    *slog.Logger
}

func NewDashboardHandler(
	dashboard *ucAnalytics.Dashboard,
	analyticsCache *cache.AnalyticsCache,
	loc *time.Location,
	logger *slog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		cache:     analyticsCache,
		loc:       loc,
		logger:    logger,
	}
}

// Stats serves the dashboard view. Defaults to the last 30 days when no
// range is given. Responses are cached until the next appointment write.
func (h *DashboardHandler) Stats(c *gin.Context) {
	startStr := c.Query("startDate")
	endStr := c.Query("endDate")

	now := time.Now().In(h.loc)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
	start := end.AddDate(0, 0, -29)

	var err error
	if startStr != "" {
		start, err = parseLocalDate(startStr, h.loc)
		if err != nil {
			httperr.BadRequest(c, "validation_error", "startDate must be YYYY-MM-DD.")
			return
		}
	}
	if endStr != "" {
		end, err = parseLocalDate(endStr, h.loc)
		if err != nil {
			httperr.BadRequest(c, "validation_error", "endDate must be YYYY-MM-DD.")
			return
		}
	}

	key := "dashboard:" + start.Format("2006-01-02") + ":" + end.Format("2006-01-02")
	if payload := h.cache.Get(c.Request.Context(), key); payload != "" {
		c.Data(200, "application/json; charset=utf-8", []byte(payload))
		return
	}

	result, err := h.dashboard.Execute(c.Request.Context(), start, end)
	if err != nil {
		httperr.FromDomain(c, err, h.logger)
		return
	}

	if body, err := json.Marshal(result); err == nil {
		h.cache.Set(c.Request.Context(), key, string(body))
	}

	c.JSON(200, result)
}
