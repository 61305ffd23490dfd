package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/repository"
	"github.com/noah-isme/ur-campus-api/internal/view"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
	"github.com/noah-isme/ur-campus-api/pkg/validation"
)

type userRepository interface {
	List(ctx context.Context) ([]models.User, error)
	ListByStatus(ctx context.Context, status models.UserStatus) ([]models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id string, mutate func(*models.User) error) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	NextID() string
}

// UserService handles user management workflows.
type UserService struct {
	provider
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, latency ProviderLatency) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &UserService{
		provider:  provider{name: "users", latency: latency, metrics: metrics},
		repo:      repo,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns users matching filter.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	ctrl := view.NewController[models.User](nil)
	err := ctrl.Load(ctx, func(ctx context.Context) ([]models.User, error) {
		var out []models.User
		err := s.call(ctx, "list", s.latency.List, func() (err error) {
			out, err = s.repo.List(ctx)
			return err
		})
		return out, storeError(err, "", "failed to list users")
	})
	if err != nil {
		return nil, err
	}
	ctrl.SetFilters(view.UserPredicates(filter)...)
	return ctrl.Items(), nil
}

// ListPending returns accounts awaiting approval.
func (s *UserService) ListPending(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := s.call(ctx, "list_pending", s.latency.List, func() (err error) {
		out, err = s.repo.ListByStatus(ctx, models.UserStatusPending)
		return err
	})
	return out, storeError(err, "", "failed to list pending users")
}

// Get returns a single user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var out *models.User
	err := s.call(ctx, "get", s.latency.Detail, func() (err error) {
		out, err = s.repo.FindByID(ctx, id)
		return err
	})
	return out, storeError(err, "user not found", "failed to load user")
}

// Create adds an account on behalf of an administrator. Status defaults to pending.
func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest, actorID string) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	now := s.now().UTC()
	user := &models.User{
		ID:           s.repo.NextID(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         req.Role,
		Department:   strings.TrimSpace(req.Department),
		Status:       req.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if user.Status == "" {
		user.Status = models.UserStatusPending
	}

	err = s.call(ctx, "create", s.latency.Mutate, func() error {
		return s.repo.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "An account with this email already exists")
		}
		return nil, storeError(err, "", "failed to create user")
	}
	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)), zap.String("actor_id", actorID))
	return user, nil
}

// Update applies the non-nil profile fields of req.
func (s *UserService) Update(ctx context.Context, id string, req models.UpdateUserRequest, actorID string) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
		existing, err := s.repo.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, storeError(err, "", "failed to check email")
		}
		if existing != nil && existing.ID != id {
			return nil, appErrors.Clone(appErrors.ErrConflict, "An account with this email already exists")
		}
	}

	user, err := s.mutate(ctx, "update", id, func(u *models.User) error {
		if req.Name != nil {
			u.Name = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil {
			u.Email = *req.Email
		}
		if req.Role != nil {
			u.Role = *req.Role
		}
		if req.Department != nil {
			u.Department = strings.TrimSpace(*req.Department)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user updated", zap.String("user_id", id), zap.String("actor_id", actorID))
	return user, nil
}

// Approve activates a pending account.
func (s *UserService) Approve(ctx context.Context, id, actorID string) (*models.User, error) {
	return s.setStatus(ctx, "approve", id, actorID, func(models.UserStatus) models.UserStatus { return models.UserStatusActive })
}

// Reject deactivates an account.
func (s *UserService) Reject(ctx context.Context, id, actorID string) (*models.User, error) {
	return s.setStatus(ctx, "reject", id, actorID, func(models.UserStatus) models.UserStatus { return models.UserStatusInactive })
}

// ToggleStatus deactivates an active account and activates any other.
func (s *UserService) ToggleStatus(ctx context.Context, id, actorID string) (*models.User, error) {
	return s.setStatus(ctx, "toggle_status", id, actorID, func(current models.UserStatus) models.UserStatus {
		if current == models.UserStatusActive {
			return models.UserStatusInactive
		}
		return models.UserStatusActive
	})
}

// ChangePassword sets a new password for id without the current one.
func (s *UserService) ChangePassword(ctx context.Context, id string, req models.ResetPasswordRequest, actorID string) error {
	if err := s.validator.Struct(req); err != nil {
		return validation.Error(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	err = s.call(ctx, "change_password", s.latency.Mutate, func() error {
		return s.repo.UpdatePassword(ctx, id, string(hash), s.now().UTC())
	})
	if err != nil {
		return storeError(err, "user not found", "failed to update password")
	}
	s.logger.Info("user password reset", zap.String("user_id", id), zap.String("actor_id", actorID))
	return nil
}

// Delete removes a user. Administrators cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return appErrors.Clone(appErrors.ErrForbidden, "You cannot delete your own account")
	}
	err := s.call(ctx, "delete", s.latency.Mutate, func() error {
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return storeError(err, "user not found", "failed to delete user")
	}
	s.logger.Info("user deleted", zap.String("user_id", id), zap.String("actor_id", actorID))
	return nil
}

func (s *UserService) setStatus(ctx context.Context, op, id, actorID string, next func(models.UserStatus) models.UserStatus) (*models.User, error) {
	user, err := s.mutate(ctx, op, id, func(u *models.User) error {
		u.Status = next(u.EffectiveStatus())
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user status changed", zap.String("user_id", id), zap.String("status", string(user.Status)), zap.String("actor_id", actorID))
	return user, nil
}

func (s *UserService) mutate(ctx context.Context, op, id string, fn func(*models.User) error) (*models.User, error) {
	var out *models.User
	err := s.call(ctx, op, s.latency.Mutate, func() (err error) {
		out, err = s.repo.Update(ctx, id, func(u *models.User) error {
			if err := fn(u); err != nil {
				return err
			}
			u.UpdatedAt = s.now().UTC()
			return nil
		})
		return err
	})
	return out, storeError(err, "user not found", "failed to update user")
}
