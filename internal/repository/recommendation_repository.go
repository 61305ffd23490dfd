package repository

import (
	"context"
	"strings"

	"github.com/noah-isme/ur-campus-api/internal/models"
)

// RecommendationRepository keeps AI recommendations in memory.
type RecommendationRepository struct {
	table *memoryTable[models.AIRecommendation]
}

// NewRecommendationRepository seeds a repository with the provided rows.
func NewRecommendationRepository(seed []models.AIRecommendation) *RecommendationRepository {
	return &RecommendationRepository{table: newMemoryTable(seed, func(r models.AIRecommendation) string { return r.ID }, cloneRecommendation)}
}

// List returns every recommendation.
func (r *RecommendationRepository) List(ctx context.Context) ([]models.AIRecommendation, error) {
	return r.table.all(), nil
}

// FindByID returns a recommendation by identifier.
func (r *RecommendationRepository) FindByID(ctx context.Context, id string) (*models.AIRecommendation, error) {
	rec, err := r.table.find(id)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByFacility returns recommendations about facilityID.
func (r *RecommendationRepository) ListByFacility(ctx context.Context, facilityID string) ([]models.AIRecommendation, error) {
	return r.table.filter(func(rec models.AIRecommendation) bool { return rec.FacilityID == facilityID }), nil
}

// ListByDepartment matches department case-insensitively.
func (r *RecommendationRepository) ListByDepartment(ctx context.Context, department string) ([]models.AIRecommendation, error) {
	return r.table.filter(func(rec models.AIRecommendation) bool {
		return rec.Department != "" && strings.EqualFold(rec.Department, department)
	}), nil
}

// ListByStatus returns recommendations in status.
func (r *RecommendationRepository) ListByStatus(ctx context.Context, status models.RecommendationStatus) ([]models.AIRecommendation, error) {
	return r.table.filter(func(rec models.AIRecommendation) bool { return rec.Status == status }), nil
}

// Update applies mutate atomically and returns the stored result.
func (r *RecommendationRepository) Update(ctx context.Context, id string, mutate func(*models.AIRecommendation) error) (*models.AIRecommendation, error) {
	rec, err := r.table.update(id, mutate)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func cloneRecommendation(rec models.AIRecommendation) models.AIRecommendation {
	if rec.Savings != nil {
		s := *rec.Savings
		rec.Savings = &s
	}
	if rec.Implementation != nil {
		impl := *rec.Implementation
		if impl.EstimatedCost != nil {
			c := *impl.EstimatedCost
			impl.EstimatedCost = &c
		}
		rec.Implementation = &impl
	}
	rec.ReviewComments = cloneComments(rec.ReviewComments)
	return rec
}
