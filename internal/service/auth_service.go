package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/repository"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
	"github.com/noah-isme/ur-campus-api/pkg/validation"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailAndRole(ctx context.Context, email string, role models.UserRole) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	NextID() string
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
}

// DefaultSessionKeyPrefix namespaces durable session records.
const DefaultSessionKeyPrefix = "urCampusUser"

// LogoutMessage is shown after a session ends.
const LogoutMessage = "You have been logged out"

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
	SessionKeyPrefix  string
}

// AuthService owns the session lifecycle: login, hydration on every request,
// and logout.
type AuthService struct {
	repo      authUserRepository
	sessions  repository.SessionStorage
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, sessions repository.SessionStorage, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = 24 * time.Hour
	}
	if config.SessionKeyPrefix == "" {
		config.SessionKeyPrefix = DefaultSessionKeyPrefix
	}
	return &AuthService{repo: repo, sessions: sessions, validator: validate, logger: logger, metrics: metrics, config: config, now: time.Now}
}

// Login authenticates a user under the requested role, persists the identity
// under a new session id and returns an access token pointing at it.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err)
	}

	user, err := s.repo.FindByEmailAndRole(ctx, req.Email, req.Role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.RecordSessionEvent("login", "invalid")
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.metrics.RecordSessionEvent("login", "invalid")
		return nil, appErrors.ErrInvalidCredentials
	}

	switch user.EffectiveStatus() {
	case models.UserStatusPending:
		s.metrics.RecordSessionEvent("login", "pending")
		return nil, appErrors.ErrAccountPending
	case models.UserStatusInactive:
		s.metrics.RecordSessionEvent("login", "inactive")
		return nil, appErrors.ErrInactiveAccount
	}

	identity := user.Identity()
	sessionID := uuid.NewString()
	payload, err := json.Marshal(identity)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode session")
	}

	accessToken, issuedAt, err := s.generateAccessToken(user, sessionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	if err := s.sessions.Set(ctx, s.sessionKey(sessionID), payload, s.config.AccessTokenExpiry); err != nil {
		s.metrics.RecordSessionEvent("login", "error")
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to persist session")
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, issuedAt); err != nil {
		s.logger.Warn("failed to update last login", zap.String("user_id", user.ID), zap.Error(err))
	}

	s.metrics.RecordSessionEvent("login", "ok")
	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)), zap.String("ip", req.IP))

	return &models.LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		User:        identity,
		Message:     fmt.Sprintf("Welcome, %s!", identity.Name),
		IssuedAt:    issuedAt,
	}, nil
}

// Hydrate loads the session identity for sessionID. It never fails: a missing,
// unreadable or stale record yields an anonymous state. The identity is
// refreshed from the user directory so role edits apply on the next request.
func (s *AuthService) Hydrate(ctx context.Context, sessionID string) models.SessionState {
	if sessionID == "" {
		return models.Anonymous()
	}
	key := s.sessionKey(sessionID)

	raw, err := s.sessions.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrSessionNotFound) {
			s.logger.Warn("session storage unavailable", zap.Error(err))
			s.metrics.RecordSessionEvent("hydrate", "error")
		} else {
			s.metrics.RecordSessionEvent("hydrate", "missing")
		}
		return models.Anonymous()
	}

	var stored models.Identity
	if err := json.Unmarshal(raw, &stored); err != nil || stored.ID == "" {
		s.logger.Warn("discarding corrupt session record", zap.String("session_id", sessionID), zap.Error(err))
		if delErr := s.sessions.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to delete corrupt session", zap.Error(delErr))
		}
		s.metrics.RecordSessionEvent("hydrate", "corrupt")
		return models.Anonymous()
	}

	user, err := s.repo.FindByID(ctx, stored.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = s.sessions.Delete(ctx, key)
		} else {
			s.logger.Warn("failed to refresh session identity", zap.String("user_id", stored.ID), zap.Error(err))
		}
		s.metrics.RecordSessionEvent("hydrate", "stale")
		return models.Anonymous()
	}
	if user.EffectiveStatus() != models.UserStatusActive {
		s.metrics.RecordSessionEvent("hydrate", "inactive")
		return models.Anonymous()
	}

	s.metrics.RecordSessionEvent("hydrate", "ok")
	return models.Authenticated(user.Identity())
}

// Logout removes the durable session record. Unknown sessions are ignored.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, s.sessionKey(sessionID)); err != nil {
		s.metrics.RecordSessionEvent("logout", "error")
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to clear session")
	}
	s.metrics.RecordSessionEvent("logout", "ok")
	return nil
}

// Register creates a pending account that an administrator must approve.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err)
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "An account with this email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email uniqueness")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	now := s.now().UTC()
	user := &models.User{
		ID:           s.repo.NextID(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(passwordHash),
		Role:         req.Role,
		Status:       models.UserStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Role == models.RoleStaff {
		user.Department = strings.TrimSpace(req.Department)
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "An account with this email already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("registration received", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// ChangePassword changes the password for the given user ID.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validation.Error(err)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return appErrors.Clone(appErrors.ErrForbidden, "current password does not match")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(newHash), s.now().UTC()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
	}

	return nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) sessionKey(sessionID string) string {
	return s.config.SessionKeyPrefix + ":" + sessionID
}

func (s *AuthService) generateAccessToken(user *models.User, sessionID string) (string, time.Time, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.AccessTokenExpiry)
	claims := &models.JWTClaims{
		UserID:    user.ID,
		SessionID: sessionID,
		Role:      user.Role,
		Email:     user.Email,
		Name:      user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.AccessTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, issuedAt, nil
}
