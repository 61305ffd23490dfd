package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/view"
	"github.com/noah-isme/ur-campus-api/pkg/response"
)

type announcementService interface {
	Browse(ctx context.Context, filters view.AnnouncementFilters) ([]models.Announcement, error)
}

// AnnouncementHandler serves campus announcements.
type AnnouncementHandler struct {
	service announcementService
}

// NewAnnouncementHandler constructs the handler.
func NewAnnouncementHandler(service announcementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// List godoc
// @Summary List announcements
// @Tags Announcements
// @Produce json
// @Param category query string false "Category"
// @Param facility query string false "Facility ID"
// @Success 200 {object} response.Envelope
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	var filters view.AnnouncementFilters
	if !bindQuery(c, &filters) {
		return
	}
	items, err := h.service.Browse(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondList(c, items, filters)
}
