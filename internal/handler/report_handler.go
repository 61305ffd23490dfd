package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/service"
	"github.com/noah-isme/ur-campus-api/internal/view"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
	"github.com/noah-isme/ur-campus-api/pkg/response"
)

type reportService interface {
	Browse(ctx context.Context, v view.Viewer, filters view.ReportFilters) ([]models.Report, error)
	Get(ctx context.Context, id string) (*models.Report, error)
	Generate(ctx context.Context, req models.ReportRequest, author models.Identity) (*models.Report, error)
	Download(ctx context.Context, token string) (*service.ReportDownload, error)
	Delete(ctx context.Context, id string, actor models.Identity) error
}

// ReportHandler exposes reporting endpoints.
type ReportHandler struct {
	service reportService
	viewers viewerResolver
}

// NewReportHandler constructs handler.
func NewReportHandler(service reportService, viewers viewerResolver) *ReportHandler {
	return &ReportHandler{service: service, viewers: viewers}
}

// List godoc
// @Summary List reports
// @Description Admins see every report, staff see their own
// @Tags Reports
// @Produce json
// @Param date_range query string false "last-week, last-month, last-quarter or last-year"
// @Param department query string false "Department"
// @Param type query string false "Report type"
// @Success 200 {object} response.Envelope
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	var filters view.ReportFilters
	if !bindQuery(c, &filters) {
		return
	}
	viewer, ok := viewerFromContext(c, h.viewers)
	if !ok {
		return
	}
	items, err := h.service.Browse(c.Request.Context(), viewer, filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondList(c, items, filters)
}

// Generate godoc
// @Summary Queue report generation
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body models.ReportRequest true "Report request"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /reports [post]
func (h *ReportHandler) Generate(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	var req models.ReportRequest
	if !bindJSON(c, &req, "invalid report payload") {
		return
	}
	report, err := h.service.Generate(c.Request.Context(), req, identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, report)
}

// Get godoc
// @Summary Report status
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/{id} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	report, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if identity.Role != models.RoleAdmin && report.AuthorID != identity.ID {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "You can only view your own reports"))
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Delete godoc
// @Summary Delete report
// @Tags Reports
// @Param id path string true "Report ID"
// @Success 204 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/{id} [delete]
func (h *ReportHandler) Delete(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), identity); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Download godoc
// @Summary Download a generated report
// @Description The token comes from the report's download_url and expires
// @Tags Reports
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /reports/download/{token} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	token := c.Param("token")
	if strings.TrimSpace(token) == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	result, err := h.service.Download(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer result.Body.Close() //nolint:errcheck
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, -1, result.ContentType, result.Body, nil)
}
