package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ur-campus-api/internal/models"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
	"github.com/noah-isme/ur-campus-api/pkg/response"
)

type dashboardService interface {
	Dashboard(ctx context.Context, identity models.Identity) (*models.Dashboard, bool, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Get godoc
// @Summary Role dashboard
// @Description Admins get campus-wide statistics, staff get their assigned facilities and students get the facility directory with their own feedback.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}

	start := time.Now()
	dashboard, cacheHit, err := h.service.Dashboard(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondTimed(c, dashboard, cacheHit, start)
}
