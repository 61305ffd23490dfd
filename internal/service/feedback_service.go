package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ur-campus-api/internal/filter"
	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/view"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
	"github.com/noah-isme/ur-campus-api/pkg/validation"
)

type feedbackRepository interface {
	List(ctx context.Context) ([]models.FeedbackItem, error)
	FindByID(ctx context.Context, id string) (*models.FeedbackItem, error)
	ListByUser(ctx context.Context, userID string) ([]models.FeedbackItem, error)
	ListByFacility(ctx context.Context, facilityID string) ([]models.FeedbackItem, error)
	ListByStatus(ctx context.Context, status models.FeedbackStatus) ([]models.FeedbackItem, error)
	Create(ctx context.Context, item *models.FeedbackItem) error
	Update(ctx context.Context, id string, mutate func(*models.FeedbackItem) error) (*models.FeedbackItem, error)
}

type facilityLookup interface {
	FindByID(ctx context.Context, id string) (*models.Facility, error)
	List(ctx context.Context) ([]models.Facility, error)
}

// FeedbackService is the feedback provider. Status moves freely between
// pending, inProgress and resolved; resolvedAt is set only while resolved.
type FeedbackService struct {
	provider
	repo       feedbackRepository
	facilities facilityLookup
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewFeedbackService creates a FeedbackService.
func NewFeedbackService(repo feedbackRepository, facilities facilityLookup, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, latency ProviderLatency) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &FeedbackService{
		provider:   provider{name: "feedback", latency: latency, metrics: metrics},
		repo:       repo,
		facilities: facilities,
		validator:  validate,
		logger:     logger,
		now:        time.Now,
	}
}

// List returns every feedback item.
func (s *FeedbackService) List(ctx context.Context) ([]models.FeedbackItem, error) {
	var out []models.FeedbackItem
	err := s.call(ctx, "list", s.latency.List, func() (err error) {
		out, err = s.repo.List(ctx)
		return err
	})
	return out, storeError(err, "", "failed to list feedback")
}

// Get returns a feedback item.
func (s *FeedbackService) Get(ctx context.Context, id string) (*models.FeedbackItem, error) {
	var out *models.FeedbackItem
	err := s.call(ctx, "get", s.latency.Detail, func() (err error) {
		out, err = s.repo.FindByID(ctx, id)
		return err
	})
	return out, storeError(err, "feedback not found", "failed to load feedback")
}

// ListByUser returns feedback submitted by userID.
func (s *FeedbackService) ListByUser(ctx context.Context, userID string) ([]models.FeedbackItem, error) {
	var out []models.FeedbackItem
	err := s.call(ctx, "list_by_user", s.latency.List, func() (err error) {
		out, err = s.repo.ListByUser(ctx, userID)
		return err
	})
	return out, storeError(err, "", "failed to list feedback")
}

// ListByFacility returns feedback about facilityID.
func (s *FeedbackService) ListByFacility(ctx context.Context, facilityID string) ([]models.FeedbackItem, error) {
	var out []models.FeedbackItem
	err := s.call(ctx, "list_by_facility", s.latency.List, func() (err error) {
		out, err = s.repo.ListByFacility(ctx, facilityID)
		return err
	})
	return out, storeError(err, "", "failed to list feedback")
}

// ListByStatus returns feedback in status.
func (s *FeedbackService) ListByStatus(ctx context.Context, status models.FeedbackStatus) ([]models.FeedbackItem, error) {
	var out []models.FeedbackItem
	err := s.call(ctx, "list_by_status", s.latency.List, func() (err error) {
		out, err = s.repo.ListByStatus(ctx, status)
		return err
	})
	return out, storeError(err, "", "failed to list feedback")
}

// Create records a new pending feedback item from author.
func (s *FeedbackService) Create(ctx context.Context, req models.CreateFeedbackRequest, author models.Identity) (*models.FeedbackItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err)
	}

	facility, err := s.facilities.FindByID(ctx, req.FacilityID)
	if err != nil {
		return nil, storeError(err, "facility not found", "failed to load facility")
	}

	item := &models.FeedbackItem{
		ID:           "fb-" + uuid.NewString()[:8],
		UserID:       author.ID,
		UserName:     author.Name,
		UserRole:     author.Role,
		FacilityID:   facility.ID,
		FacilityName: facility.Name,
		Description:  strings.TrimSpace(req.Description),
		Urgency:      req.Urgency,
		Status:       models.FeedbackPending,
		Category:     req.Category,
		CreatedAt:    s.now().UTC(),
		Attachments:  append([]string(nil), req.Attachments...),
		Comments:     []models.Comment{},
	}

	err = s.call(ctx, "create", s.latency.Mutate, func() error {
		return s.repo.Create(ctx, item)
	})
	if err != nil {
		return nil, storeError(err, "", "failed to submit feedback")
	}
	s.logger.Info("feedback submitted", zap.String("feedback_id", item.ID), zap.String("facility_id", item.FacilityID))
	return item, nil
}

// UpdateStatus moves an item to req.Status. A non-empty AssignedTo replaces
// the assignee.
func (s *FeedbackService) UpdateStatus(ctx context.Context, id string, req models.UpdateFeedbackStatusRequest) (*models.FeedbackItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err)
	}
	var out *models.FeedbackItem
	err := s.call(ctx, "update_status", s.latency.Mutate, func() (err error) {
		out, err = s.repo.Update(ctx, id, func(f *models.FeedbackItem) error {
			transitionFeedback(f, req.Status, s.now().UTC())
			if req.AssignedTo != "" {
				f.AssignedTo = req.AssignedTo
			}
			return nil
		})
		return err
	})
	return out, storeError(err, "feedback not found", "failed to update feedback")
}

// AddComment appends a comment by author.
func (s *FeedbackService) AddComment(ctx context.Context, id string, req models.AddCommentRequest, author models.Identity) (*models.FeedbackItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err)
	}
	comment := models.Comment{
		ID:        "c-" + uuid.NewString()[:8],
		UserID:    author.ID,
		UserName:  author.Name,
		Text:      strings.TrimSpace(req.Text),
		CreatedAt: s.now().UTC(),
	}
	var out *models.FeedbackItem
	err := s.call(ctx, "add_comment", s.latency.Mutate, func() (err error) {
		out, err = s.repo.Update(ctx, id, func(f *models.FeedbackItem) error {
			f.Comments = append(f.Comments, comment)
			return nil
		})
		return err
	})
	return out, storeError(err, "feedback not found", "failed to add comment")
}

// Triage runs the feedback page for v. Staff are limited to feedback about
// facilities they can see; admins and students get the whole list.
func (s *FeedbackService) Triage(ctx context.Context, v view.Viewer, filters view.FeedbackFilters) ([]models.FeedbackItem, error) {
	scope, err := s.triageScope(ctx, v)
	if err != nil {
		return nil, err
	}
	return s.browse(ctx, scope, filters)
}

// Visible returns feedback id when it falls inside v's feedback page.
func (s *FeedbackService) Visible(ctx context.Context, v view.Viewer, id string) (*models.FeedbackItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	scope, err := s.triageScope(ctx, v)
	if err != nil {
		return nil, err
	}
	if scope != nil && !scope(*item) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "You do not have access to this feedback")
	}
	return item, nil
}

func (s *FeedbackService) triageScope(ctx context.Context, v view.Viewer) (filter.Predicate[models.FeedbackItem], error) {
	var visible []string
	if v.Identity.Role == models.RoleStaff {
		facilities, err := s.facilities.List(ctx)
		if err != nil {
			return nil, storeError(err, "", "failed to list facilities")
		}
		visible = view.VisibleFacilityIDs(v, facilities)
	}
	return view.FeedbackScope(v, visible), nil
}

// Mine runs the "my feedback" page for v.
func (s *FeedbackService) Mine(ctx context.Context, v view.Viewer, filters view.FeedbackFilters) ([]models.FeedbackItem, error) {
	return s.browse(ctx, view.MyFeedbackScope(v), filters)
}

func (s *FeedbackService) browse(ctx context.Context, scope filter.Predicate[models.FeedbackItem], filters view.FeedbackFilters) ([]models.FeedbackItem, error) {
	ctrl := view.NewController(scope)
	if err := ctrl.Load(ctx, s.List); err != nil {
		return nil, err
	}
	ctrl.SetFilters(filters.Predicates()...)
	return ctrl.Items(), nil
}

// transitionFeedback sets status and keeps resolvedAt consistent with it:
// entering resolved stamps max(now, createdAt), leaving it clears the stamp,
// and staying resolved keeps the original stamp.
func transitionFeedback(f *models.FeedbackItem, status models.FeedbackStatus, now time.Time) {
	if status == models.FeedbackResolved {
		if f.Status != models.FeedbackResolved || f.ResolvedAt == nil {
			stamp := now
			if stamp.Before(f.CreatedAt) {
				stamp = f.CreatedAt
			}
			f.ResolvedAt = &stamp
		}
	} else {
		f.ResolvedAt = nil
	}
	f.Status = status
}

