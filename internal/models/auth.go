package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a user under a chosen role.
type LoginRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required"`
	Role      UserRole `json:"role" validate:"required,oneof=student staff admin"`
	IP        string   `json:"-"`
	UserAgent string   `json:"-"`
}

// LoginResponse returns the issued token and the session identity.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	User        Identity  `json:"user"`
	Message     string    `json:"message"`
	IssuedAt    time.Time `json:"issued_at"`
}

// RegisterRequest is the self registration payload. Accounts start pending.
type RegisterRequest struct {
	Name            string   `json:"name" validate:"required,notblank,min=2"`
	Email           string   `json:"email" validate:"required,email,urmail"`
	Password        string   `json:"password" validate:"required,min=8"`
	ConfirmPassword string   `json:"confirm_password" validate:"required,eqfield=Password"`
	Role            UserRole `json:"role" validate:"required,oneof=student staff"`
	Department      string   `json:"department" validate:"required_if=Role staff"`
}

// ChangePasswordRequest payload for updating password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// JWTClaims represents the JWT payload for access tokens. SessionID points at
// the durable session record; Role mirrors the identity at issue time and is
// replaced by the hydrated role on every request.
type JWTClaims struct {
	UserID    string   `json:"user_id"`
	SessionID string   `json:"sid"`
	Role      UserRole `json:"role"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	jwt.RegisteredClaims
}
