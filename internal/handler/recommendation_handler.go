package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ur-campus-api/internal/middleware"
	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/view"
	"github.com/noah-isme/ur-campus-api/pkg/response"
)

type recommendationService interface {
	Get(ctx context.Context, id string) (*models.AIRecommendation, error)
	Review(ctx context.Context, id string, req models.UpdateRecommendationStatusRequest, reviewer models.Identity) (*models.AIRecommendation, error)
	AddComment(ctx context.Context, id string, req models.AddCommentRequest, author models.Identity) (*models.AIRecommendation, error)
	Browse(ctx context.Context, v view.Viewer, filters view.RecommendationFilters) ([]models.AIRecommendation, error)
}

// RecommendationHandler exposes AI recommendation endpoints.
type RecommendationHandler struct {
	service recommendationService
	viewers viewerResolver
}

// NewRecommendationHandler constructs the handler.
func NewRecommendationHandler(service recommendationService, viewers viewerResolver) *RecommendationHandler {
	return &RecommendationHandler{service: service, viewers: viewers}
}

// List godoc
// @Summary List recommendations
// @Description Each item carries the review actions available to the caller
// @Tags Recommendations
// @Produce json
// @Param status query string false "Status"
// @Param impact query string false "Impact"
// @Param type query string false "Recommendation type"
// @Success 200 {object} response.Envelope
// @Router /recommendations [get]
func (h *RecommendationHandler) List(c *gin.Context) {
	var filters view.RecommendationFilters
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

	actions := make(map[string][]view.Action, len(items))
	for _, item := range items {
		actions[item.ID] = view.RecommendationActions(viewer.Identity.Role, item.Status)
	}
	middleware.SetMeta(c, "actions", actions)
	respondList(c, items, filters)
}

// Get godoc
// @Summary Get recommendation
// @Tags Recommendations
// @Produce json
// @Param id path string true "Recommendation ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /recommendations/{id} [get]
func (h *RecommendationHandler) Get(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "actions", view.RecommendationActions(identity.Role, item.Status))
	response.JSON(c, http.StatusOK, item, nil, middleware.Meta(c))
}

// Review godoc
// @Summary Approve, reject or flag a recommendation
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param id path string true "Recommendation ID"
// @Param payload body models.UpdateRecommendationStatusRequest true "Review"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /recommendations/{id}/status [patch]
func (h *RecommendationHandler) Review(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	var req models.UpdateRecommendationStatusRequest
	if !bindJSON(c, &req, "invalid review payload") {
		return
	}
	item, err := h.service.Review(c.Request.Context(), c.Param("id"), req, identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// AddComment godoc
// @Summary Comment on a recommendation
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param id path string true "Recommendation ID"
// @Param payload body models.AddCommentRequest true "Comment"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /recommendations/{id}/comments [post]
func (h *RecommendationHandler) AddComment(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	var req models.AddCommentRequest
	if !bindJSON(c, &req, "invalid comment payload") {
		return
	}
	item, err := h.service.AddComment(c.Request.Context(), c.Param("id"), req, identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}
