package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/ur-campus-api/internal/models"
)

// UserRepository keeps the user directory in memory.
type UserRepository struct {
	table *memoryTable[models.User]
}

// NewUserRepository seeds a repository with the provided users.
func NewUserRepository(seed []models.User) *UserRepository {
	return &UserRepository{table: newMemoryTable(seed, func(u models.User) string { return u.ID }, func(u models.User) models.User {
		if u.LastLogin != nil {
			t := *u.LastLogin
			u.LastLogin = &t
		}
		return u
	})}
}

// FindByEmail returns a user by case-insensitive email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	matches := r.table.filter(func(u models.User) bool { return strings.EqualFold(u.Email, strings.TrimSpace(email)) })
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	return &matches[0], nil
}

// FindByEmailAndRole returns the record matching both email and role.
func (r *UserRepository) FindByEmailAndRole(ctx context.Context, email string, role models.UserRole) (*models.User, error) {
	matches := r.table.filter(func(u models.User) bool {
		return u.Role == role && strings.EqualFold(u.Email, strings.TrimSpace(email))
	})
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	return &matches[0], nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, err := r.table.find(id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns every user.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.table.all(), nil
}

// ListByStatus returns users whose effective status is status.
func (r *UserRepository) ListByStatus(ctx context.Context, status models.UserStatus) ([]models.User, error) {
	return r.table.filter(func(u models.User) bool { return u.EffectiveStatus() == status }), nil
}

// Create inserts a user. Email addresses are unique.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if existing, _ := r.FindByEmail(ctx, user.Email); existing != nil {
		return ErrDuplicate
	}
	return r.table.insert(*user)
}

// Update applies mutate atomically and returns the stored result.
func (r *UserRepository) Update(ctx context.Context, id string, mutate func(*models.User) error) (*models.User, error) {
	u, err := r.table.update(id, mutate)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateLastLogin stamps the last_login timestamp for a user.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	_, err := r.table.update(id, func(u *models.User) error {
		u.LastLogin = &ts
		u.UpdatedAt = ts
		return nil
	})
	return err
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	_, err := r.table.update(id, func(u *models.User) error {
		u.PasswordHash = passwordHash
		u.UpdatedAt = updatedAt
		return nil
	})
	return err
}

// Delete removes a user.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.table.remove(id)
}

// NextID returns the next sequential numeric id.
func (r *UserRepository) NextID() string {
	max := 0
	for _, u := range r.table.all() {
		if n, err := strconv.Atoi(u.ID); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}
