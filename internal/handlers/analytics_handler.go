package handlers

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aurelia-labs/salon-scheduler/internal/cache"
	"github.com/aurelia-labs/salon-scheduler/internal/httperr"
	ucAnalytics "github.com/aurelia-labs/salon-scheduler/internal/usecase/analytics"
)

type AnalyticsHandler struct {
	analytics *ucAnalytics.Analytics
	cache     *cache.AnalyticsCache
	loc       *time.Location
	logger    *slog.Logger
}

func NewAnalyticsHandler(
	analytics *ucAnalytics.Analytics,
	analyticsCache *cache.AnalyticsCache,
	loc *time.Location,
	logger *slog.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		cache:     analyticsCache,
		loc:       loc,
		logger:    logger,
	}
}

func (h *AnalyticsHandler) Report(c *gin.Context) {
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

	filter := ucAnalytics.Filter{Type: c.Query("filter[type]")}
	if s := c.Query("filter[value]"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "validation_error", "filter[value] must be numeric.")
			return
		}
		filter.Value = uint(v)
	}

	key := "analytics:" + startStr + ":" + endStr + ":" + filter.Type + ":" + strconv.FormatUint(uint64(filter.Value), 10)
	if payload := h.cache.Get(c.Request.Context(), key); payload != "" {
		c.Data(200, "application/json; charset=utf-8", []byte(payload))
		return
	}

	report, err := h.analytics.Execute(c.Request.Context(), start, end, filter)
	if err != nil {
		httperr.FromDomain(c, err, h.logger)
		return
	}

	if body, err := json.Marshal(report); err == nil {
		h.cache.Set(c.Request.Context(), key, string(body))
	}

	c.JSON(200, report)
}
