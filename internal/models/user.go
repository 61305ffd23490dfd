package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleStaff   UserRole = "staff"
	RoleAdmin   UserRole = "admin"
)

// Roles lists every known role in display order.
var Roles = []UserRole{RoleAdmin, RoleStaff, RoleStudent}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// UserStatus tracks account approval.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusPending  UserStatus = "pending"
)

// Identity is the authenticated principal persisted in a session.
type Identity struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       UserRole   `json:"role"`
	Department string     `json:"department,omitempty"`
	Status     UserStatus `json:"status,omitempty"`
}

// User represents an account in the user directory.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	Department   string     `json:"department,omitempty"`
	Status       UserStatus `json:"status"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// EffectiveStatus treats a record without status as active.
func (u User) EffectiveStatus() UserStatus {
	if u.Status == "" {
		return UserStatusActive
	}
	return u.Status
}

// Identity projects the session principal out of the user record.
func (u User) Identity() Identity {
	return Identity{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
		Status:     u.EffectiveStatus(),
	}
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role   string `form:"role" json:"role,omitempty"`
	Status string `form:"status" json:"status,omitempty"`
	Search string `form:"search" json:"search,omitempty"`
}

// CreateUserRequest is the admin payload for adding an account.
type CreateUserRequest struct {
	Name       string     `json:"name" validate:"required,notblank,min=2"`
	Email      string     `json:"email" validate:"required,email"`
	Password   string     `json:"password" validate:"required,min=8"`
	Role       UserRole   `json:"role" validate:"required,oneof=student staff admin"`
	Department string     `json:"department" validate:"required_if=Role staff"`
	Status     UserStatus `json:"status" validate:"omitempty,oneof=active inactive pending"`
}

// UpdateUserRequest carries partial profile changes.
type UpdateUserRequest struct {
	Name       *string   `json:"name" validate:"omitempty,notblank,min=2"`
	Email      *string   `json:"email" validate:"omitempty,email"`
	Role       *UserRole `json:"role" validate:"omitempty,oneof=student staff admin"`
	Department *string   `json:"department"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// ResetPasswordRequest lets an administrator set a new password for an account.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
