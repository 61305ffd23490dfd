package repository

import (
	"context"
	"strconv"

	"github.com/noah-isme/ur-campus-api/internal/models"
)

// PredictionRepository keeps predictions, planning datasets and saved models in memory.
type PredictionRepository struct {
	templates   []models.InfrastructurePrediction
	predictions *memoryTable[models.InfrastructurePrediction]
	datasets    *memoryTable[models.CampusDataset]
	models      *memoryTable[models.PredictionModel]
}

// NewPredictionRepository seeds predictions and datasets. The seeded
// predictions also become the fixed template table used by Template.
func NewPredictionRepository(predictions []models.InfrastructurePrediction, datasets []models.CampusDataset) *PredictionRepository {
	templates := make([]models.InfrastructurePrediction, len(predictions))
	for i := range predictions {
		templates[i] = clonePrediction(predictions[i])
	}
	return &PredictionRepository{
		templates:   templates,
		predictions: newMemoryTable(predictions, func(p models.InfrastructurePrediction) string { return p.ID }, clonePrediction),
		datasets: newMemoryTable(datasets, func(d models.CampusDataset) string { return d.ID }, func(d models.CampusDataset) models.CampusDataset {
			d.Tags = cloneStrings(d.Tags)
			return d
		}),
		models: newMemoryTable(nil, func(m models.PredictionModel) string { return m.ID }, func(m models.PredictionModel) models.PredictionModel {
			m.DatasetIDs = cloneStrings(m.DatasetIDs)
			return m
		}),
	}
}

// List returns predictions matching every non-wildcard criterion in filter.
func (r *PredictionRepository) List(ctx context.Context, filter models.PredictionFilter) ([]models.InfrastructurePrediction, error) {
	return r.predictions.filter(func(p models.InfrastructurePrediction) bool {
		if !wildcard(filter.Year) && strconv.Itoa(p.Year) != filter.Year {
			return false
		}
		if !wildcard(filter.Type) && string(p.InfrastructureType) != filter.Type {
			return false
		}
		if !wildcard(filter.Priority) && string(p.Priority) != filter.Priority {
			return false
		}
		return true
	}), nil
}

// FindByID returns a prediction by identifier.
func (r *PredictionRepository) FindByID(ctx context.Context, id string) (*models.InfrastructurePrediction, error) {
	p, err := r.predictions.find(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Template returns a copy of the first seeded prediction of type typ, falling
// back to the first seeded prediction. Stored predictions never change it.
func (r *PredictionRepository) Template(ctx context.Context, typ models.InfrastructureType) (*models.InfrastructurePrediction, error) {
	if len(r.templates) == 0 {
		return nil, ErrNotFound
	}
	match := r.templates[0]
	for _, t := range r.templates {
		if t.InfrastructureType == typ {
			match = t
			break
		}
	}
	out := clonePrediction(match)
	return &out, nil
}

// Create stores a new prediction. A taken id returns ErrDuplicate.
func (r *PredictionRepository) Create(ctx context.Context, prediction *models.InfrastructurePrediction) error {
	return r.predictions.insert(*prediction)
}

// Save stores prediction, replacing any prediction with the same id.
func (r *PredictionRepository) Save(ctx context.Context, prediction *models.InfrastructurePrediction) error {
	r.predictions.upsert(*prediction)
	return nil
}

// Datasets returns every campus planning dataset.
func (r *PredictionRepository) Datasets(ctx context.Context) ([]models.CampusDataset, error) {
	return r.datasets.all(), nil
}

// FindDataset returns a dataset by identifier.
func (r *PredictionRepository) FindDataset(ctx context.Context, id string) (*models.CampusDataset, error) {
	d, err := r.datasets.find(id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SaveModel stores a named prediction model.
func (r *PredictionRepository) SaveModel(ctx context.Context, model *models.PredictionModel) error {
	return r.models.insert(*model)
}

// Models returns saved prediction models.
func (r *PredictionRepository) Models(ctx context.Context) ([]models.PredictionModel, error) {
	return r.models.all(), nil
}

func clonePrediction(p models.InfrastructurePrediction) models.InfrastructurePrediction {
	if p.DatasetApplied != nil {
		ref := *p.DatasetApplied
		p.DatasetApplied = &ref
	}
	return p
}
