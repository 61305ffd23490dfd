package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/view"
	"github.com/noah-isme/ur-campus-api/pkg/validation"
)

// Figures used when projecting infrastructure need.
const (
	baselineStudentCount   = 3200
	populationBaseline     = 3000
	populationYearRange    = 2
	datasetYearRange       = 2
	datasetCurrentCapacity = 5000
	datasetStudentBase     = 10000
	datasetHighUtilization = 75
	datasetConfidence      = 87
	datasetEstimatedCost   = 2800000
	datasetSpaceNeeded     = 15000
	datasetFeedbackScore   = 82
	datasetGrowthFactor    = 1.15
	datasetTimeframe       = "18 months"
)

type predictionRepository interface {
	List(ctx context.Context, filter models.PredictionFilter) ([]models.InfrastructurePrediction, error)
	FindByID(ctx context.Context, id string) (*models.InfrastructurePrediction, error)
	Template(ctx context.Context, typ models.InfrastructureType) (*models.InfrastructurePrediction, error)
	Create(ctx context.Context, prediction *models.InfrastructurePrediction) error
	Save(ctx context.Context, prediction *models.InfrastructurePrediction) error
	Datasets(ctx context.Context) ([]models.CampusDataset, error)
	FindDataset(ctx context.Context, id string) (*models.CampusDataset, error)
	SaveModel(ctx context.Context, model *models.PredictionModel) error
	Models(ctx context.Context) ([]models.PredictionModel, error)
}

// PredictionService projects infrastructure need from growth parameters and
// planning datasets. Every generated prediction is stored.
type PredictionService struct {
	provider
	repo      predictionRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewPredictionService creates a PredictionService.
func NewPredictionService(repo predictionRepository, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, latency ProviderLatency) *PredictionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &PredictionService{
		provider:  provider{name: "predictions", latency: latency, metrics: metrics},
		repo:      repo,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns predictions matching filter; "" and "all" match anything.
func (s *PredictionService) List(ctx context.Context, filter models.PredictionFilter) ([]models.InfrastructurePrediction, error) {
	var out []models.InfrastructurePrediction
	err := s.call(ctx, "list", s.latency.List, func() (err error) {
		out, err = s.repo.List(ctx, filter)
		return err
	})
	return out, storeError(err, "", "failed to list predictions")
}

// ListByType returns predictions for typ.
func (s *PredictionService) ListByType(ctx context.Context, typ models.InfrastructureType) ([]models.InfrastructurePrediction, error) {
	return s.List(ctx, models.PredictionFilter{Type: string(typ)})
}

// ListByYear returns predictions for year.
func (s *PredictionService) ListByYear(ctx context.Context, year int) ([]models.InfrastructurePrediction, error) {
	return s.List(ctx, models.PredictionFilter{Year: fmt.Sprint(year)})
}

// ListByPriority returns predictions with priority.
func (s *PredictionService) ListByPriority(ctx context.Context, priority models.Priority) ([]models.InfrastructurePrediction, error) {
	return s.List(ctx, models.PredictionFilter{Priority: string(priority)})
}

// Browse runs the predictions page. Filters are evaluated by the provider.
func (s *PredictionService) Browse(ctx context.Context, filters view.PredictionFilters) ([]models.InfrastructurePrediction, error) {
	ctrl := view.NewController[models.InfrastructurePrediction](nil)
	query := filters.ProviderFilter()
	err := ctrl.Refetch(ctx, func(ctx context.Context) ([]models.InfrastructurePrediction, error) {
		return s.List(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	return ctrl.Items(), nil
}

// Generate projects a prediction from params, starting from the seeded
// template of the same type.
func (s *PredictionService) Generate(ctx context.Context, params models.PredictionParams) (*models.InfrastructurePrediction, error) {
	if err := s.validator.Struct(params); err != nil {
		return nil, validation.Error(err)
	}

	var out *models.InfrastructurePrediction
	err := s.call(ctx, "generate", s.latency.Prediction, func() error {
		template, err := s.repo.Template(ctx, params.InfrastructureType)
		if err != nil {
			return err
		}
		now := s.now().UTC()
		prediction := *template
		prediction.ID = predictionID(now)
		prediction.Year = now.Year() + params.YearRange
		prediction.ProjectedStudentCount = int(math.Round(baselineStudentCount * (1 + params.StudentGrowth/100)))
		prediction.ImpactFactors.StudentGrowth = params.StudentGrowth
		prediction.DatasetApplied = nil
		prediction.CreatedAt = now
		if err := s.repo.Create(ctx, &prediction); err != nil {
			return err
		}
		out = &prediction
		return nil
	})
	if err != nil {
		return nil, storeError(err, "no prediction template available", "failed to generate prediction")
	}
	s.logger.Info("prediction generated",
		zap.String("prediction_id", out.ID),
		zap.String("infrastructure_type", string(params.InfrastructureType)),
		zap.Float64("student_growth", params.StudentGrowth),
	)
	return out, nil
}

// GenerateFromPopulation projects classroom need for an expected student
// population two years out.
func (s *PredictionService) GenerateFromPopulation(ctx context.Context, req models.PopulationRequest) (*models.InfrastructurePrediction, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err)
	}
	return s.Generate(ctx, models.PredictionParams{
		StudentGrowth:      PopulationGrowth(req.Population),
		InfrastructureType: models.InfraClassroom,
		YearRange:          populationYearRange,
	})
}

// PopulationGrowth is the percentage growth of population over the 3000
// student baseline, rounded to a whole percent.
func PopulationGrowth(population int) float64 {
	return math.Round(float64(population-populationBaseline) / populationBaseline * 100)
}

// ApplyDataset builds a classroom prediction from a planning dataset's
// metrics. The prediction takes req.PredictionID when given.
func (s *PredictionService) ApplyDataset(ctx context.Context, req models.ApplyDatasetRequest) (*models.InfrastructurePrediction, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err)
	}

	var out *models.InfrastructurePrediction
	err := s.call(ctx, "apply_dataset", s.latency.Prediction, func() error {
		dataset, err := s.repo.FindDataset(ctx, strings.TrimSpace(req.DatasetID))
		if err != nil {
			return err
		}
		now := s.now().UTC()
		prediction := datasetPrediction(*dataset, now)
		prediction.ID = strings.TrimSpace(req.PredictionID)
		if prediction.ID == "" {
			prediction.ID = predictionID(now)
			if err := s.repo.Create(ctx, &prediction); err != nil {
				return err
			}
		} else if err := s.repo.Save(ctx, &prediction); err != nil {
			return err
		}
		out = &prediction
		return nil
	})
	if err != nil {
		return nil, storeError(err, "Dataset not found", "failed to apply dataset")
	}
	s.logger.Info("dataset applied", zap.String("dataset_id", req.DatasetID), zap.String("prediction_id", out.ID))
	return out, nil
}

func datasetPrediction(dataset models.CampusDataset, now time.Time) models.InfrastructurePrediction {
	m := dataset.Metrics
	priority := models.PriorityMedium
	if m.AverageUtilization > datasetHighUtilization {
		priority = models.PriorityHigh
	}
	return models.InfrastructurePrediction{
		Title:                 fmt.Sprintf("Enhanced Prediction (using %s)", dataset.Name),
		InfrastructureType:    models.InfraClassroom,
		Year:                  now.Year() + datasetYearRange,
		CurrentCapacity:       datasetCurrentCapacity,
		RecommendedCapacity:   int(math.Round(datasetCurrentCapacity * (1 + m.InfrastructureExpansionRate/100))),
		ProjectedStudentCount: int(math.Round(datasetStudentBase * (1 + m.StudentGrowthRate/100))),
		Priority:              priority,
		AIConfidence:          datasetConfidence,
		Details: models.PredictionDetails{
			CurrentUtilization:      m.AverageUtilization,
			ProjectedUtilization:    m.AverageUtilization * datasetGrowthFactor,
			RecommendedAction:       "expand",
			EstimatedCost:           datasetEstimatedCost,
			SpaceNeeded:             datasetSpaceNeeded,
			ImplementationTimeframe: datasetTimeframe,
		},
		ImpactFactors: models.ImpactFactors{
			StudentGrowth:     m.StudentGrowthRate,
			UtilizationTrend:  m.AverageUtilization,
			FeedbackScore:     datasetFeedbackScore,
			MaintenanceStatus: "good",
		},
		DatasetApplied: &models.DatasetRef{ID: dataset.ID, Name: dataset.Name, Source: dataset.Source},
		CreatedAt:      now,
	}
}

// Datasets returns the available planning datasets.
func (s *PredictionService) Datasets(ctx context.Context) ([]models.CampusDataset, error) {
	var out []models.CampusDataset
	err := s.call(ctx, "datasets", s.latency.List, func() (err error) {
		out, err = s.repo.Datasets(ctx)
		return err
	})
	return out, storeError(err, "", "failed to list datasets")
}

// SaveModel stores a named parameter set created by author.
func (s *PredictionService) SaveModel(ctx context.Context, req models.SavePredictionModelRequest, author models.Identity) (*models.PredictionModel, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err)
	}
	model := &models.PredictionModel{
		ID:          "model-" + uuid.NewString()[:8],
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		DatasetIDs:  append([]string{}, req.DatasetIDs...),
		Parameters:  req.Parameters,
		CreatedBy:   author.ID,
		CreatedAt:   s.now().UTC(),
	}
	err := s.call(ctx, "save_model", s.latency.Mutate, func() error {
		for _, id := range model.DatasetIDs {
			if _, err := s.repo.FindDataset(ctx, id); err != nil {
				return err
			}
		}
		return s.repo.SaveModel(ctx, model)
	})
	if err != nil {
		return nil, storeError(err, "Dataset not found", "failed to save prediction model")
	}
	return model, nil
}

// Models returns saved prediction models.
func (s *PredictionService) Models(ctx context.Context) ([]models.PredictionModel, error) {
	var out []models.PredictionModel
	err := s.call(ctx, "models", s.latency.List, func() (err error) {
		out, err = s.repo.Models(ctx)
		return err
	})
	return out, storeError(err, "", "failed to list prediction models")
}

func predictionID(now time.Time) string {
	return fmt.Sprintf("pred-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
