package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/service"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
	"github.com/noah-isme/ur-campus-api/pkg/response"
)

// AnalyticsHandler exposes dashboard-ready analytics endpoints.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs the analytics handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Overview godoc
// @Summary Campus analytics overview
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/overview [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	overview, cacheHit, err := h.analytics.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respondTimed(c, overview, cacheHit, start)
}

// Utilization godoc
// @Summary Daily utilization of one facility
// @Tags Analytics
// @Produce json
// @Param facility_id query string true "Facility ID"
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Day after the last (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /analytics/utilization [get]
func (h *AnalyticsHandler) Utilization(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var query models.UtilizationQuery
	if !bindQuery(c, &query) {
		return
	}
	start := time.Now()
	points, cacheHit, err := h.analytics.FacilityUtilizationByDate(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondTimed(c, points, cacheHit, start)
}

// Feedback godoc
// @Summary Feedback volume over a timeframe
// @Tags Analytics
// @Produce json
// @Param timeframe query string false "week, month, quarter or year (default)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /analytics/feedback [get]
func (h *AnalyticsHandler) Feedback(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var query models.FeedbackTrendQuery
	if !bindQuery(c, &query) {
		return
	}
	start := time.Now()
	points, cacheHit, err := h.analytics.FeedbackByTimeframe(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondTimed(c, points, cacheHit, start)
}

// AIEffectiveness godoc
// @Summary Impact of implemented AI recommendations
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/ai-effectiveness [get]
func (h *AnalyticsHandler) AIEffectiveness(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.analytics.AIEffectiveness(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respondTimed(c, summary, cacheHit, start)
}
