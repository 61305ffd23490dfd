package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/view"
	"github.com/noah-isme/ur-campus-api/pkg/response"
)

type predictionService interface {
	Browse(ctx context.Context, filters view.PredictionFilters) ([]models.InfrastructurePrediction, error)
	Generate(ctx context.Context, params models.PredictionParams) (*models.InfrastructurePrediction, error)
	GenerateFromPopulation(ctx context.Context, req models.PopulationRequest) (*models.InfrastructurePrediction, error)
	ApplyDataset(ctx context.Context, req models.ApplyDatasetRequest) (*models.InfrastructurePrediction, error)
	Datasets(ctx context.Context) ([]models.CampusDataset, error)
	SaveModel(ctx context.Context, req models.SavePredictionModelRequest, author models.Identity) (*models.PredictionModel, error)
	Models(ctx context.Context) ([]models.PredictionModel, error)
}

// PredictionHandler exposes the predictive planning endpoints.
type PredictionHandler struct {
	service predictionService
}

// NewPredictionHandler constructs the handler.
func NewPredictionHandler(service predictionService) *PredictionHandler {
	return &PredictionHandler{service: service}
}

// List godoc
// @Summary List infrastructure predictions
// @Tags Predictive Planning
// @Produce json
// @Param year query string false "Target year"
// @Param type query string false "Infrastructure type"
// @Param priority query string false "Priority"
// @Success 200 {object} response.Envelope
// @Router /predictions [get]
func (h *PredictionHandler) List(c *gin.Context) {
	var filters view.PredictionFilters
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

// Generate godoc
// @Summary Generate a prediction from growth parameters
// @Tags Predictive Planning
// @Accept json
// @Produce json
// @Param payload body models.PredictionParams true "Parameters"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /predictions/generate [post]
func (h *PredictionHandler) Generate(c *gin.Context) {
	var req models.PredictionParams
	if !bindJSON(c, &req, "invalid prediction parameters") {
		return
	}
	prediction, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, prediction)
}

// Population godoc
// @Summary Generate a prediction from an expected student population
// @Tags Predictive Planning
// @Accept json
// @Produce json
// @Param payload body models.PopulationRequest true "Population"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /predictions/population [post]
func (h *PredictionHandler) Population(c *gin.Context) {
	var req models.PopulationRequest
	if !bindJSON(c, &req, "invalid population payload") {
		return
	}
	prediction, err := h.service.GenerateFromPopulation(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, prediction)
}

// ApplyDataset godoc
// @Summary Merge dataset metrics into a prediction
// @Tags Predictive Planning
// @Accept json
// @Produce json
// @Param payload body models.ApplyDatasetRequest true "Dataset and optional target prediction"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /predictions/apply-dataset [post]
func (h *PredictionHandler) ApplyDataset(c *gin.Context) {
	var req models.ApplyDatasetRequest
	if !bindJSON(c, &req, "invalid dataset payload") {
		return
	}
	prediction, err := h.service.ApplyDataset(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, prediction, nil)
}

// Datasets godoc
// @Summary List campus datasets
// @Tags Predictive Planning
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /predictions/datasets [get]
func (h *PredictionHandler) Datasets(c *gin.Context) {
	items, err := h.service.Datasets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respondList(c, items, nil)
}

// Models godoc
// @Summary List saved prediction models
// @Tags Predictive Planning
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /predictions/models [get]
func (h *PredictionHandler) Models(c *gin.Context) {
	items, err := h.service.Models(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respondList(c, items, nil)
}

// SaveModel godoc
// @Summary Save a prediction model
// @Tags Predictive Planning
// @Accept json
// @Produce json
// @Param payload body models.SavePredictionModelRequest true "Model"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /predictions/models [post]
func (h *PredictionHandler) SaveModel(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	var req models.SavePredictionModelRequest
	if !bindJSON(c, &req, "invalid model payload") {
		return
	}
	model, err := h.service.SaveModel(c.Request.Context(), req, identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, model)
}
