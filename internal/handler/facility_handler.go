package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/view"
	"github.com/noah-isme/ur-campus-api/pkg/response"
)

type facilityService interface {
	Get(ctx context.Context, id string) (*models.Facility, error)
	Create(ctx context.Context, req models.CreateFacilityRequest) (*models.Facility, error)
	Update(ctx context.Context, id string, req models.UpdateFacilityRequest) (*models.Facility, error)
	Delete(ctx context.Context, id string) error
	Assign(ctx context.Context, staffID, facilityID string) error
	Unassign(ctx context.Context, staffID, facilityID string) error
	Viewer(ctx context.Context, identity models.Identity) (view.Viewer, error)
	Browse(ctx context.Context, v view.Viewer, filters view.FacilityFilters) ([]models.Facility, error)
}

// AssignFacilityRequest names the staff member a facility is assigned to.
type AssignFacilityRequest struct {
	StaffID string `json:"staff_id" binding:"required"`
}

// FacilityHandler exposes facility endpoints.
type FacilityHandler struct {
	service facilityService
}

// NewFacilityHandler constructs the handler.
func NewFacilityHandler(service facilityService) *FacilityHandler {
	return &FacilityHandler{service: service}
}

// List godoc
// @Summary List facilities
// @Description Staff only see facilities of their department or assigned to them
// @Tags Facilities
// @Produce json
// @Param search query string false "Name, location or type"
// @Param type query string false "Facility type"
// @Param status query string false "Facility status"
// @Success 200 {object} response.Envelope
// @Router /facilities [get]
func (h *FacilityHandler) List(c *gin.Context) {
	var filters view.FacilityFilters
	if !bindQuery(c, &filters) {
		return
	}
	viewer, ok := viewerFromContext(c, h.service)
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

// Get godoc
// @Summary Get facility
// @Tags Facilities
// @Produce json
// @Param id path string true "Facility ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /facilities/{id} [get]
func (h *FacilityHandler) Get(c *gin.Context) {
	facility, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, facility, nil)
}

// Create godoc
// @Summary Create facility
// @Tags Facilities
// @Accept json
// @Produce json
// @Param payload body models.CreateFacilityRequest true "Facility payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /facilities [post]
func (h *FacilityHandler) Create(c *gin.Context) {
	var req models.CreateFacilityRequest
	if !bindJSON(c, &req, "invalid facility payload") {
		return
	}
	facility, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, facility)
}

// Update godoc
// @Summary Update facility
// @Tags Facilities
// @Accept json
// @Produce json
// @Param id path string true "Facility ID"
// @Param payload body models.UpdateFacilityRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /facilities/{id} [put]
func (h *FacilityHandler) Update(c *gin.Context) {
	var req models.UpdateFacilityRequest
	if !bindJSON(c, &req, "invalid facility payload") {
		return
	}
	facility, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, facility, nil)
}

// Delete godoc
// @Summary Delete facility
// @Tags Facilities
// @Param id path string true "Facility ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /facilities/{id} [delete]
func (h *FacilityHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Assign godoc
// @Summary Assign facility to staff
// @Tags Facilities
// @Accept json
// @Param id path string true "Facility ID"
// @Param payload body handler.AssignFacilityRequest true "Staff member"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /facilities/{id}/assignments [post]
func (h *FacilityHandler) Assign(c *gin.Context) {
	var req AssignFacilityRequest
	if !bindJSON(c, &req, "staff_id is required") {
		return
	}
	if err := h.service.Assign(c.Request.Context(), req.StaffID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Unassign godoc
// @Summary Remove a staff assignment
// @Tags Facilities
// @Param id path string true "Facility ID"
// @Param staffId path string true "Staff user ID"
// @Success 204 {object} response.Envelope
// @Router /facilities/{id}/assignments/{staffId} [delete]
func (h *FacilityHandler) Unassign(c *gin.Context) {
	if err := h.service.Unassign(c.Request.Context(), c.Param("staffId"), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
