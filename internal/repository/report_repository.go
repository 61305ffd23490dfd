package repository

import (
	"context"

	"github.com/noah-isme/ur-campus-api/internal/models"
)

// ReportRepository keeps report metadata in memory. File bytes live in blob storage.
type ReportRepository struct {
	table *memoryTable[models.Report]
}

// NewReportRepository seeds a repository with the provided reports.
func NewReportRepository(seed []models.Report) *ReportRepository {
	return &ReportRepository{table: newMemoryTable(seed, func(r models.Report) string { return r.ID }, cloneReport)}
}

// List returns every report.
func (r *ReportRepository) List(ctx context.Context) ([]models.Report, error) {
	return r.table.all(), nil
}

// ListByAuthor returns reports generated by authorID.
func (r *ReportRepository) ListByAuthor(ctx context.Context, authorID string) ([]models.Report, error) {
	return r.table.filter(func(rep models.Report) bool { return rep.AuthorID == authorID }), nil
}

// FindByID returns a report by identifier.
func (r *ReportRepository) FindByID(ctx context.Context, id string) (*models.Report, error) {
	rep, err := r.table.find(id)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// Create inserts a new report.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.table.insert(*report)
}

// Update applies mutate atomically and returns the stored result.
func (r *ReportRepository) Update(ctx context.Context, id string, mutate func(*models.Report) error) (*models.Report, error) {
	rep, err := r.table.update(id, mutate)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// Delete removes a report record.
func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	return r.table.remove(id)
}

func cloneReport(rep models.Report) models.Report {
	if rep.CompletedAt != nil {
		t := *rep.CompletedAt
		rep.CompletedAt = &t
	}
	return rep
}
