package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/repository"
	"github.com/noah-isme/ur-campus-api/internal/view"
	"github.com/noah-isme/ur-campus-api/pkg/validation"
)

type facilityRepository interface {
	List(ctx context.Context) ([]models.Facility, error)
	FindByID(ctx context.Context, id string) (*models.Facility, error)
	ListByDepartment(ctx context.Context, department string) ([]models.Facility, error)
	ListByType(ctx context.Context, typ models.FacilityType) ([]models.Facility, error)
	ListByStatus(ctx context.Context, status models.FacilityStatus) ([]models.Facility, error)
	Create(ctx context.Context, facility *models.Facility) error
	Update(ctx context.Context, id string, mutate func(*models.Facility) error) (*models.Facility, error)
	Delete(ctx context.Context, id string) error
}

// FacilityService is the facilities provider plus the staff assignment relation.
type FacilityService struct {
	provider
	repo        facilityRepository
	assignments repository.AssignmentStore
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewFacilityService creates a FacilityService.
func NewFacilityService(repo facilityRepository, assignments repository.AssignmentStore, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, latency ProviderLatency) *FacilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &FacilityService{
		provider:    provider{name: "facilities", latency: latency, metrics: metrics},
		repo:        repo,
		assignments: assignments,
		validator:   validate,
		logger:      logger,
		now:         time.Now,
	}
}

// List returns every facility.
func (s *FacilityService) List(ctx context.Context) ([]models.Facility, error) {
	var out []models.Facility
	err := s.call(ctx, "list", s.latency.List, func() (err error) {
		out, err = s.repo.List(ctx)
		return err
	})
	return out, storeError(err, "facility not found", "failed to list facilities")
}

// Get returns a facility by id.
func (s *FacilityService) Get(ctx context.Context, id string) (*models.Facility, error) {
	var out *models.Facility
	err := s.call(ctx, "get", s.latency.Detail, func() (err error) {
		out, err = s.repo.FindByID(ctx, id)
		return err
	})
	return out, storeError(err, "facility not found", "failed to load facility")
}

// ListByDepartment returns facilities owned by department.
func (s *FacilityService) ListByDepartment(ctx context.Context, department string) ([]models.Facility, error) {
	var out []models.Facility
	err := s.call(ctx, "list_by_department", s.latency.List, func() (err error) {
		out, err = s.repo.ListByDepartment(ctx, department)
		return err
	})
	return out, storeError(err, "", "failed to list facilities")
}

// ListByType returns facilities of typ.
func (s *FacilityService) ListByType(ctx context.Context, typ models.FacilityType) ([]models.Facility, error) {
	var out []models.Facility
	err := s.call(ctx, "list_by_type", s.latency.List, func() (err error) {
		out, err = s.repo.ListByType(ctx, typ)
		return err
	})
	return out, storeError(err, "", "failed to list facilities")
}

// ListByStatus returns facilities in status.
func (s *FacilityService) ListByStatus(ctx context.Context, status models.FacilityStatus) ([]models.Facility, error) {
	var out []models.Facility
	err := s.call(ctx, "list_by_status", s.latency.List, func() (err error) {
		out, err = s.repo.ListByStatus(ctx, status)
		return err
	})
	return out, storeError(err, "", "failed to list facilities")
}

// Create adds a facility. Status defaults to operational.
func (s *FacilityService) Create(ctx context.Context, req models.CreateFacilityRequest) (*models.Facility, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err)
	}
	now := s.now().UTC()
	facility := &models.Facility{
		ID:                  "fac-" + uuid.NewString()[:8],
		Name:                strings.TrimSpace(req.Name),
		Type:                req.Type,
		Location:            strings.TrimSpace(req.Location),
		Capacity:            req.Capacity,
		CurrentOccupancy:    req.CurrentOccupancy,
		Department:          strings.TrimSpace(req.Department),
		Status:              req.Status,
		LastMaintenanceDate: req.LastMaintenanceDate,
		Features:            append([]string{}, req.Features...),
		Images:              append([]string(nil), req.Images...),
		Description:         req.Description,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if facility.Status == "" {
		facility.Status = models.FacilityOperational
	}

	err := s.call(ctx, "create", s.latency.Mutate, func() error {
		return s.repo.Create(ctx, facility)
	})
	if err != nil {
		return nil, storeError(err, "", "failed to create facility")
	}
	s.logger.Info("facility created", zap.String("facility_id", facility.ID))
	return facility, nil
}

// Update applies the non-nil fields of req.
func (s *FacilityService) Update(ctx context.Context, id string, req models.UpdateFacilityRequest) (*models.Facility, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err)
	}
	var out *models.Facility
	err := s.call(ctx, "update", s.latency.Mutate, func() (err error) {
		out, err = s.repo.Update(ctx, id, func(f *models.Facility) error {
			applyFacilityUpdate(f, req)
			f.UpdatedAt = s.now().UTC()
			return nil
		})
		return err
	})
	return out, storeError(err, "facility not found", "failed to update facility")
}

// Delete removes a facility.
func (s *FacilityService) Delete(ctx context.Context, id string) error {
	err := s.call(ctx, "delete", s.latency.Mutate, func() error {
		return s.repo.Delete(ctx, id)
	})
	return storeError(err, "facility not found", "failed to delete facility")
}

// Assign makes staffID responsible for facilityID.
func (s *FacilityService) Assign(ctx context.Context, staffID, facilityID string) error {
	if _, err := s.repo.FindByID(ctx, facilityID); err != nil {
		return storeError(err, "facility not found", "failed to load facility")
	}
	err := s.call(ctx, "assign", s.latency.Mutate, func() error {
		return s.assignments.Assign(ctx, models.FacilityAssignment{StaffID: staffID, FacilityID: facilityID, AssignedAt: s.now().UTC()})
	})
	return storeError(err, "", "failed to assign facility")
}

// Unassign removes a staff assignment.
func (s *FacilityService) Unassign(ctx context.Context, staffID, facilityID string) error {
	err := s.call(ctx, "unassign", s.latency.Mutate, func() error {
		return s.assignments.Unassign(ctx, staffID, facilityID)
	})
	return storeError(err, "assignment not found", "failed to remove assignment")
}

// ListAssignedFacilityIDs returns the facilities assigned to staffID.
func (s *FacilityService) ListAssignedFacilityIDs(ctx context.Context, staffID string) ([]string, error) {
	ids, err := s.assignments.FacilityIDsForStaff(ctx, staffID)
	return ids, storeError(err, "", "failed to load assignments")
}

// Viewer resolves the assignment set for identity.
func (s *FacilityService) Viewer(ctx context.Context, identity models.Identity) (view.Viewer, error) {
	v := view.Viewer{Identity: identity}
	if identity.Role != models.RoleStaff {
		return v, nil
	}
	ids, err := s.ListAssignedFacilityIDs(ctx, identity.ID)
	if err != nil {
		return v, err
	}
	v.Assigned = ids
	return v, nil
}

// Browse runs the facilities page for v: role scope first, then filters.
func (s *FacilityService) Browse(ctx context.Context, v view.Viewer, filters view.FacilityFilters) ([]models.Facility, error) {
	ctrl := view.NewController(view.FacilityScope(v))
	if err := ctrl.Load(ctx, s.List); err != nil {
		return nil, err
	}
	ctrl.SetFilters(filters.Predicates()...)
	return ctrl.Items(), nil
}

func applyFacilityUpdate(f *models.Facility, req models.UpdateFacilityRequest) {
	if req.Name != nil {
		f.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		f.Type = *req.Type
	}
	if req.Location != nil {
		f.Location = strings.TrimSpace(*req.Location)
	}
	if req.Capacity != nil {
		f.Capacity = *req.Capacity
	}
	if req.CurrentOccupancy != nil {
		f.CurrentOccupancy = *req.CurrentOccupancy
	}
	if req.Department != nil {
		f.Department = strings.TrimSpace(*req.Department)
	}
	if req.Status != nil {
		f.Status = *req.Status
	}
	if req.LastMaintenanceDate != nil {
		f.LastMaintenanceDate = *req.LastMaintenanceDate
	}
	if req.Features != nil {
		f.Features = append([]string{}, req.Features...)
	}
	if req.Images != nil {
		f.Images = append([]string{}, req.Images...)
	}
	if req.Description != nil {
		f.Description = *req.Description
	}
}
