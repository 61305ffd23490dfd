package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/repository"
	"github.com/noah-isme/ur-campus-api/internal/view"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
)

var predictionClock = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func newPredictionFixture(datasets ...models.CampusDataset) *PredictionService {
	if len(datasets) == 0 {
		datasets = repository.SeedDatasets()
	}
	svc := NewPredictionService(repository.NewPredictionRepository(repository.SeedPredictions(), datasets), nil, nil, nil, ProviderLatency{})
	svc.now = func() time.Time { return predictionClock }
	return svc
}

func TestPredictionServiceGenerate(t *testing.T) {
	svc := newPredictionFixture()
	ctx := context.Background()

	pred, err := svc.Generate(ctx, models.PredictionParams{StudentGrowth: 25, InfrastructureType: models.InfraParking, YearRange: 3})
	require.NoError(t, err)
	assert.Regexp(t, `^pred-1746100800000-[0-9a-f]{8}$`, pred.ID)
	assert.Equal(t, 2028, pred.Year)
	assert.Equal(t, 4000, pred.ProjectedStudentCount)
	assert.Equal(t, 25.0, pred.ImpactFactors.StudentGrowth)
	assert.Equal(t, "fair", pred.ImpactFactors.MaintenanceStatus)
	assert.Equal(t, 420, pred.CurrentCapacity, "figures come from the parking template")
	assert.Equal(t, predictionClock, pred.CreatedAt)

	stored, err := svc.ListByYear(ctx, 2028)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, pred.ID, stored[0].ID)
}

func TestPredictionServiceGenerateFallsBackToFirstTemplate(t *testing.T) {
	svc := newPredictionFixture()
	pred, err := svc.Generate(context.Background(), models.PredictionParams{InfrastructureType: models.InfraPrinting})
	require.NoError(t, err)
	assert.Equal(t, 2800, pred.CurrentCapacity)
	assert.Equal(t, 3200, pred.ProjectedStudentCount)
	assert.Equal(t, 2025, pred.Year)
}

func TestPredictionServiceGenerateFromPopulation(t *testing.T) {
	assert.Equal(t, 17.0, PopulationGrowth(3500))
	assert.Equal(t, 0.0, PopulationGrowth(3000))
	assert.Equal(t, -50.0, PopulationGrowth(1500))

	svc := newPredictionFixture()
	pred, err := svc.GenerateFromPopulation(context.Background(), models.PopulationRequest{Population: 3500})
	require.NoError(t, err)
	assert.Equal(t, models.InfraClassroom, pred.InfrastructureType)
	assert.Equal(t, 2027, pred.Year)
	assert.Equal(t, 3744, pred.ProjectedStudentCount)

	_, err = svc.GenerateFromPopulation(context.Background(), models.PopulationRequest{})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPredictionServiceApplyDataset(t *testing.T) {
	svc := newPredictionFixture()
	ctx := context.Background()

	pred, err := svc.ApplyDataset(ctx, models.ApplyDatasetRequest{DatasetID: "ds-003", PredictionID: "pred-custom"})
	require.NoError(t, err)
	assert.Equal(t, "pred-custom", pred.ID)
	assert.Equal(t, "Enhanced Prediction (using African Universities Infrastructure Development 2022)", pred.Title)
	assert.Equal(t, models.InfraClassroom, pred.InfrastructureType)
	assert.Equal(t, 2027, pred.Year)
	assert.Equal(t, 5000, pred.CurrentCapacity)
	assert.Equal(t, 5175, pred.RecommendedCapacity)
	assert.Equal(t, 10430, pred.ProjectedStudentCount)
	assert.Equal(t, models.PriorityHigh, pred.Priority)
	assert.Equal(t, 87, pred.AIConfidence)
	assert.InDelta(t, 82.7*1.15, pred.Details.ProjectedUtilization, 1e-9)
	assert.Equal(t, "18 months", pred.Details.ImplementationTimeframe)
	require.NotNil(t, pred.DatasetApplied)
	assert.Equal(t, "ds-003", pred.DatasetApplied.ID)

	generated, err := svc.ApplyDataset(ctx, models.ApplyDatasetRequest{DatasetID: "ds-001"})
	require.NoError(t, err)
	assert.Regexp(t, `^pred-1746100800000-[0-9a-f]{8}$`, generated.ID)
	assert.Equal(t, models.PriorityMedium, generated.Priority)

	_, err = svc.ApplyDataset(ctx, models.ApplyDatasetRequest{DatasetID: "ds-404"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.Equal(t, "Dataset not found", appErrors.FromError(err).Message)
}

func TestPredictionServiceTemplatesSurviveApplyDataset(t *testing.T) {
	svc := newPredictionFixture()
	ctx := context.Background()
	params := models.PredictionParams{StudentGrowth: 10, InfrastructureType: models.InfraClassroom, YearRange: 1}

	before, err := svc.Generate(ctx, params)
	require.NoError(t, err)

	_, err = svc.ApplyDataset(ctx, models.ApplyDatasetRequest{DatasetID: "ds-001", PredictionID: "pred-001"})
	require.NoError(t, err)
	replaced, err := svc.repo.FindByID(ctx, "pred-001")
	require.NoError(t, err)
	assert.Equal(t, 5000, replaced.CurrentCapacity)

	after, err := svc.Generate(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, "Classroom Expansion Needed by 2026", after.Title)
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, 2800, after.CurrentCapacity)
	assert.Equal(t, before.Priority, after.Priority)
	assert.Nil(t, after.DatasetApplied)
}

func TestPredictionServiceGenerateKeepsEveryPrediction(t *testing.T) {
	svc := newPredictionFixture()
	ctx := context.Background()

	seeded, err := svc.List(ctx, models.PredictionFilter{})
	require.NoError(t, err)

	first, err := svc.Generate(ctx, models.PredictionParams{InfrastructureType: models.InfraParking, YearRange: 1})
	require.NoError(t, err)
	second, err := svc.Generate(ctx, models.PredictionParams{InfrastructureType: models.InfraLibrary, YearRange: 1})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	stored, err := svc.List(ctx, models.PredictionFilter{})
	require.NoError(t, err)
	assert.Len(t, stored, len(seeded)+2)

	got, err := svc.repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InfraParking, got.InfrastructureType)
}

func TestPredictionServiceApplyDatasetPriorityBoundary(t *testing.T) {
	cases := map[float64]models.Priority{75: models.PriorityMedium, 75.1: models.PriorityHigh}
	for utilization, want := range cases {
		svc := newPredictionFixture(models.CampusDataset{ID: "ds-x", Name: "X", Metrics: models.DatasetMetrics{AverageUtilization: utilization}})
		pred, err := svc.ApplyDataset(context.Background(), models.ApplyDatasetRequest{DatasetID: "ds-x"})
		require.NoError(t, err)
		assert.Equal(t, want, pred.Priority, "utilization %v", utilization)
	}
}

func TestPredictionServiceBrowsePassesFiltersThrough(t *testing.T) {
	svc := newPredictionFixture()
	items, err := svc.Browse(context.Background(), view.PredictionFilters{Year: "2026", Priority: "high", Type: "all"})
	require.NoError(t, err)
	ids := make([]string, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"pred-001", "pred-005"}, ids)

	items, err = svc.ListByPriority(context.Background(), models.PriorityCritical)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "pred-003", items[0].ID)
}

func TestPredictionServiceModels(t *testing.T) {
	svc := newPredictionFixture()
	ctx := context.Background()
	params := models.PredictionParams{StudentGrowth: 5, InfrastructureType: models.InfraLibrary, YearRange: 1}

	model, err := svc.SaveModel(ctx, models.SavePredictionModelRequest{Name: "Library plan", DatasetIDs: []string{"ds-002"}, Parameters: params}, planner)
	require.NoError(t, err)
	assert.Equal(t, "1", model.CreatedBy)

	_, err = svc.SaveModel(ctx, models.SavePredictionModelRequest{Name: "Bad", DatasetIDs: []string{"ds-404"}, Parameters: params}, planner)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	saved, err := svc.Models(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Library plan", saved[0].Name)

	datasets, err := svc.Datasets(ctx)
	require.NoError(t, err)
	assert.Len(t, datasets, 4)
}
