package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/view"
	"github.com/noah-isme/ur-campus-api/pkg/response"
)

type feedbackService interface {
	Visible(ctx context.Context, v view.Viewer, id string) (*models.FeedbackItem, error)
	Create(ctx context.Context, req models.CreateFeedbackRequest, author models.Identity) (*models.FeedbackItem, error)
	UpdateStatus(ctx context.Context, id string, req models.UpdateFeedbackStatusRequest) (*models.FeedbackItem, error)
	AddComment(ctx context.Context, id string, req models.AddCommentRequest, author models.Identity) (*models.FeedbackItem, error)
	Triage(ctx context.Context, v view.Viewer, filters view.FeedbackFilters) ([]models.FeedbackItem, error)
	Mine(ctx context.Context, v view.Viewer, filters view.FeedbackFilters) ([]models.FeedbackItem, error)
}

// FeedbackHandler exposes the feedback endpoints.
type FeedbackHandler struct {
	service feedbackService
	viewers viewerResolver
}

// NewFeedbackHandler constructs the handler. viewers resolves the caller's
// facility assignments, usually the facility service.
func NewFeedbackHandler(service feedbackService, viewers viewerResolver) *FeedbackHandler {
	return &FeedbackHandler{service: service, viewers: viewers}
}

// List godoc
// @Summary Feedback list
// @Description Staff see feedback about facilities they can see, everyone else sees all feedback
// @Tags Feedback
// @Produce json
// @Param status query string false "Status"
// @Param urgency query string false "Urgency"
// @Param facility query string false "Facility ID"
// @Param category query string false "Category"
// @Success 200 {object} response.Envelope
// @Router /feedback [get]
func (h *FeedbackHandler) List(c *gin.Context) {
	h.browse(c, h.service.Triage)
}

// Mine godoc
// @Summary Feedback submitted by the caller
// @Tags Feedback
// @Produce json
// @Param status query string false "Status"
// @Param urgency query string false "Urgency"
// @Param facility query string false "Facility ID"
// @Param category query string false "Category"
// @Success 200 {object} response.Envelope
// @Router /feedback/mine [get]
func (h *FeedbackHandler) Mine(c *gin.Context) {
	h.browse(c, h.service.Mine)
}

func (h *FeedbackHandler) browse(c *gin.Context, page func(context.Context, view.Viewer, view.FeedbackFilters) ([]models.FeedbackItem, error)) {
	var filters view.FeedbackFilters
	if !bindQuery(c, &filters) {
		return
	}
	viewer, ok := viewerFromContext(c, h.viewers)
	if !ok {
		return
	}
	items, err := page(c.Request.Context(), viewer, filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondList(c, items, filters)
}

// Get godoc
// @Summary Get feedback
// @Tags Feedback
// @Produce json
// @Param id path string true "Feedback ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /feedback/{id} [get]
func (h *FeedbackHandler) Get(c *gin.Context) {
	viewer, ok := viewerFromContext(c, h.viewers)
	if !ok {
		return
	}
	item, err := h.service.Visible(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Submit feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param payload body models.CreateFeedbackRequest true "Feedback"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /feedback [post]
func (h *FeedbackHandler) Create(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	var req models.CreateFeedbackRequest
	if !bindJSON(c, &req, "invalid feedback payload") {
		return
	}
	item, err := h.service.Create(c.Request.Context(), req, identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateStatus godoc
// @Summary Change feedback status
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Feedback ID"
// @Param payload body models.UpdateFeedbackStatusRequest true "New status"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /feedback/{id}/status [patch]
func (h *FeedbackHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateFeedbackStatusRequest
	if !bindJSON(c, &req, "invalid status payload") {
		return
	}
	item, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// AddComment godoc
// @Summary Comment on feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Feedback ID"
// @Param payload body models.AddCommentRequest true "Comment"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /feedback/{id}/comments [post]
func (h *FeedbackHandler) AddComment(c *gin.Context) {
	viewer, ok := viewerFromContext(c, h.viewers)
	if !ok {
		return
	}
	var req models.AddCommentRequest
	if !bindJSON(c, &req, "invalid comment payload") {
		return
	}
	if _, err := h.service.Visible(c.Request.Context(), viewer, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.AddComment(c.Request.Context(), c.Param("id"), req, viewer.Identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}
