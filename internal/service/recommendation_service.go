package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/view"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
	"github.com/noah-isme/ur-campus-api/pkg/validation"
)

type recommendationRepository interface {
	List(ctx context.Context) ([]models.AIRecommendation, error)
	FindByID(ctx context.Context, id string) (*models.AIRecommendation, error)
	ListByFacility(ctx context.Context, facilityID string) ([]models.AIRecommendation, error)
	ListByDepartment(ctx context.Context, department string) ([]models.AIRecommendation, error)
	ListByStatus(ctx context.Context, status models.RecommendationStatus) ([]models.AIRecommendation, error)
	Update(ctx context.Context, id string, mutate func(*models.AIRecommendation) error) (*models.AIRecommendation, error)
}

// RecommendationService is the AI recommendations provider. UpdateStatus
// applies any status; Review enforces the per-role action policy first.
type RecommendationService struct {
	provider
	repo      recommendationRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewRecommendationService creates a RecommendationService.
func NewRecommendationService(repo recommendationRepository, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, latency ProviderLatency) *RecommendationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &RecommendationService{
		provider:  provider{name: "recommendations", latency: latency, metrics: metrics},
		repo:      repo,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns every recommendation.
func (s *RecommendationService) List(ctx context.Context) ([]models.AIRecommendation, error) {
	var out []models.AIRecommendation
	err := s.call(ctx, "list", s.latency.List, func() (err error) {
		out, err = s.repo.List(ctx)
		return err
	})
	return out, storeError(err, "", "failed to list recommendations")
}

// Get returns a recommendation.
func (s *RecommendationService) Get(ctx context.Context, id string) (*models.AIRecommendation, error) {
	var out *models.AIRecommendation
	err := s.call(ctx, "get", s.latency.Detail, func() (err error) {
		out, err = s.repo.FindByID(ctx, id)
		return err
	})
	return out, storeError(err, "recommendation not found", "failed to load recommendation")
}

// ListByFacility returns recommendations about facilityID.
func (s *RecommendationService) ListByFacility(ctx context.Context, facilityID string) ([]models.AIRecommendation, error) {
	var out []models.AIRecommendation
	err := s.call(ctx, "list_by_facility", s.latency.List, func() (err error) {
		out, err = s.repo.ListByFacility(ctx, facilityID)
		return err
	})
	return out, storeError(err, "", "failed to list recommendations")
}

// ListByDepartment returns recommendations for department.
func (s *RecommendationService) ListByDepartment(ctx context.Context, department string) ([]models.AIRecommendation, error) {
	var out []models.AIRecommendation
	err := s.call(ctx, "list_by_department", s.latency.List, func() (err error) {
		out, err = s.repo.ListByDepartment(ctx, department)
		return err
	})
	return out, storeError(err, "", "failed to list recommendations")
}

// ListByStatus returns recommendations in status.
func (s *RecommendationService) ListByStatus(ctx context.Context, status models.RecommendationStatus) ([]models.AIRecommendation, error) {
	var out []models.AIRecommendation
	err := s.call(ctx, "list_by_status", s.latency.List, func() (err error) {
		out, err = s.repo.ListByStatus(ctx, status)
		return err
	})
	return out, storeError(err, "", "failed to list recommendations")
}

// UpdateStatus sets the status and, when req.Comment is set, appends it as a
// review comment by reviewer. No transition is refused here.
func (s *RecommendationService) UpdateStatus(ctx context.Context, id string, req models.UpdateRecommendationStatusRequest, reviewer models.Identity) (*models.AIRecommendation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err)
	}
	var out *models.AIRecommendation
	err := s.call(ctx, "update_status", s.latency.Mutate, func() (err error) {
		out, err = s.repo.Update(ctx, id, func(r *models.AIRecommendation) error {
			now := s.now().UTC()
			r.Status = req.Status
			r.UpdatedAt = now
			if text := strings.TrimSpace(req.Comment); text != "" {
				r.ReviewComments = append(r.ReviewComments, s.comment(reviewer, text, now))
			}
			return nil
		})
		return err
	})
	if err != nil {
		return nil, storeError(err, "recommendation not found", "failed to update recommendation")
	}
	s.logger.Info("recommendation reviewed",
		zap.String("recommendation_id", id),
		zap.String("status", string(req.Status)),
		zap.String("reviewer_id", reviewer.ID),
	)
	return out, nil
}

// Review applies req only when reviewer's role may perform the matching
// action on the recommendation's current status.
func (s *RecommendationService) Review(ctx context.Context, id string, req models.UpdateRecommendationStatusRequest, reviewer models.Identity) (*models.AIRecommendation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err)
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	action, ok := view.StatusAction(req.Status)
	if !ok || !view.CanPerform(reviewer.Role, current.Status, action) {
		msg := fmt.Sprintf("You cannot move a %s recommendation to %s", current.Status, req.Status)
		return nil, appErrors.Clone(appErrors.ErrForbidden, msg)
	}
	return s.UpdateStatus(ctx, id, req, reviewer)
}

// AddComment appends a review comment by author.
func (s *RecommendationService) AddComment(ctx context.Context, id string, req models.AddCommentRequest, author models.Identity) (*models.AIRecommendation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err)
	}
	var out *models.AIRecommendation
	err := s.call(ctx, "add_comment", s.latency.Mutate, func() (err error) {
		out, err = s.repo.Update(ctx, id, func(r *models.AIRecommendation) error {
			now := s.now().UTC()
			r.ReviewComments = append(r.ReviewComments, s.comment(author, strings.TrimSpace(req.Text), now))
			r.UpdatedAt = now
			return nil
		})
		return err
	})
	return out, storeError(err, "recommendation not found", "failed to add comment")
}

// Browse runs the recommendations page for v.
func (s *RecommendationService) Browse(ctx context.Context, v view.Viewer, filters view.RecommendationFilters) ([]models.AIRecommendation, error) {
	ctrl := view.NewController(view.RecommendationScope(v))
	if err := ctrl.Load(ctx, s.List); err != nil {
		return nil, err
	}
	ctrl.SetFilters(filters.Predicates()...)
	return ctrl.Items(), nil
}

func (s *RecommendationService) comment(author models.Identity, text string, at time.Time) models.Comment {
	return models.Comment{
		ID:        "rc-" + uuid.NewString()[:8],
		UserID:    author.ID,
		UserName:  author.Name,
		Text:      text,
		CreatedAt: at,
	}
}
