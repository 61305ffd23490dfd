package repository

import (
	"context"

	"github.com/noah-isme/ur-campus-api/internal/models"
)

// FeedbackRepository keeps feedback items in memory.
type FeedbackRepository struct {
	table *memoryTable[models.FeedbackItem]
}

// NewFeedbackRepository seeds a repository with the provided items.
func NewFeedbackRepository(seed []models.FeedbackItem) *FeedbackRepository {
	return &FeedbackRepository{table: newMemoryTable(seed, func(f models.FeedbackItem) string { return f.ID }, cloneFeedback)}
}

// List returns every feedback item.
func (r *FeedbackRepository) List(ctx context.Context) ([]models.FeedbackItem, error) {
	return r.table.all(), nil
}

// FindByID returns a feedback item by identifier.
func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*models.FeedbackItem, error) {
	item, err := r.table.find(id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByUser returns items submitted by userID.
func (r *FeedbackRepository) ListByUser(ctx context.Context, userID string) ([]models.FeedbackItem, error) {
	return r.table.filter(func(f models.FeedbackItem) bool { return f.UserID == userID }), nil
}

// ListByFacility returns items filed against facilityID.
func (r *FeedbackRepository) ListByFacility(ctx context.Context, facilityID string) ([]models.FeedbackItem, error) {
	return r.table.filter(func(f models.FeedbackItem) bool { return f.FacilityID == facilityID }), nil
}

// ListByStatus returns items in status.
func (r *FeedbackRepository) ListByStatus(ctx context.Context, status models.FeedbackStatus) ([]models.FeedbackItem, error) {
	return r.table.filter(func(f models.FeedbackItem) bool { return f.Status == status }), nil
}

// Create inserts a new item.
func (r *FeedbackRepository) Create(ctx context.Context, item *models.FeedbackItem) error {
	return r.table.insert(*item)
}

// Update applies mutate atomically and returns the stored result.
func (r *FeedbackRepository) Update(ctx context.Context, id string, mutate func(*models.FeedbackItem) error) (*models.FeedbackItem, error) {
	item, err := r.table.update(id, mutate)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func cloneFeedback(f models.FeedbackItem) models.FeedbackItem {
	if f.ResolvedAt != nil {
		t := *f.ResolvedAt
		f.ResolvedAt = &t
	}
	f.Attachments = cloneStrings(f.Attachments)
	f.Comments = cloneComments(f.Comments)
	return f
}

func cloneComments(in []models.Comment) []models.Comment {
	if in == nil {
		return nil
	}
	return append([]models.Comment(nil), in...)
}
