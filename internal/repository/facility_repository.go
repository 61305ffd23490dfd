package repository

import (
	"context"
	"strings"

	"github.com/noah-isme/ur-campus-api/internal/models"
)

// FacilityRepository keeps facilities in memory.
type FacilityRepository struct {
	table *memoryTable[models.Facility]
}

// NewFacilityRepository seeds a repository with the provided facilities.
func NewFacilityRepository(seed []models.Facility) *FacilityRepository {
	return &FacilityRepository{table: newMemoryTable(seed, func(f models.Facility) string { return f.ID }, cloneFacility)}
}

// List returns every facility in insertion order.
func (r *FacilityRepository) List(ctx context.Context) ([]models.Facility, error) {
	return r.table.all(), nil
}

// FindByID returns a facility by identifier.
func (r *FacilityRepository) FindByID(ctx context.Context, id string) (*models.Facility, error) {
	f, err := r.table.find(id)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListByIDs returns the facilities whose ids are in ids.
func (r *FacilityRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Facility, error) {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return r.table.filter(func(f models.Facility) bool {
		_, ok := set[f.ID]
		return ok
	}), nil
}

// ListByDepartment matches department case-insensitively.
func (r *FacilityRepository) ListByDepartment(ctx context.Context, department string) ([]models.Facility, error) {
	return r.table.filter(func(f models.Facility) bool {
		return f.Department != "" && strings.EqualFold(f.Department, department)
	}), nil
}

// ListByType returns facilities of the given type.
func (r *FacilityRepository) ListByType(ctx context.Context, typ models.FacilityType) ([]models.Facility, error) {
	return r.table.filter(func(f models.Facility) bool { return f.Type == typ }), nil
}

// ListByStatus returns facilities in the given status.
func (r *FacilityRepository) ListByStatus(ctx context.Context, status models.FacilityStatus) ([]models.Facility, error) {
	return r.table.filter(func(f models.Facility) bool { return f.Status == status }), nil
}

// Create inserts a new facility.
func (r *FacilityRepository) Create(ctx context.Context, facility *models.Facility) error {
	return r.table.insert(*facility)
}

// Update applies mutate atomically and returns the stored result.
func (r *FacilityRepository) Update(ctx context.Context, id string, mutate func(*models.Facility) error) (*models.Facility, error) {
	f, err := r.table.update(id, mutate)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Delete removes a facility.
func (r *FacilityRepository) Delete(ctx context.Context, id string) error {
	return r.table.remove(id)
}

func cloneFacility(f models.Facility) models.Facility {
	f.Features = cloneStrings(f.Features)
	f.Images = cloneStrings(f.Images)
	return f
}
