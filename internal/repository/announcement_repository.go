package repository

import (
	"context"

	"github.com/noah-isme/ur-campus-api/internal/models"
)

// AnnouncementRepository keeps campus updates in memory.
type AnnouncementRepository struct {
	table *memoryTable[models.Announcement]
}

// NewAnnouncementRepository seeds a repository with the provided announcements.
func NewAnnouncementRepository(seed []models.Announcement) *AnnouncementRepository {
	return &AnnouncementRepository{table: newMemoryTable(seed, func(a models.Announcement) string { return a.ID }, func(a models.Announcement) models.Announcement { return a })}
}

// List returns announcements newest first as seeded.
func (r *AnnouncementRepository) List(ctx context.Context) ([]models.Announcement, error) {
	return r.table.all(), nil
}
