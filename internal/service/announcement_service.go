package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/view"
)

type announcementRepository interface {
	List(ctx context.Context) ([]models.Announcement, error)
}

// AnnouncementService serves the campus updates feed.
type AnnouncementService struct {
	provider
	repo   announcementRepository
	logger *zap.Logger
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(repo announcementRepository, logger *zap.Logger, metrics *MetricsService, latency ProviderLatency) *AnnouncementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{
		provider: provider{name: "announcements", latency: latency, metrics: metrics},
		repo:     repo,
		logger:   logger,
	}
}

// List returns every announcement, newest first.
func (s *AnnouncementService) List(ctx context.Context) ([]models.Announcement, error) {
	var out []models.Announcement
	err := s.call(ctx, "list", s.latency.List, func() (err error) {
		out, err = s.repo.List(ctx)
		return err
	})
	return out, storeError(err, "announcement not found", "failed to list announcements")
}

// Browse applies the category and facility filters of the updates page.
func (s *AnnouncementService) Browse(ctx context.Context, filters view.AnnouncementFilters) ([]models.Announcement, error) {
	ctrl := view.NewController[models.Announcement](nil)
	if err := ctrl.Load(ctx, s.List); err != nil {
		return nil, err
	}
	ctrl.SetFilters(filters.Predicates()...)
	return ctrl.Items(), nil
}
