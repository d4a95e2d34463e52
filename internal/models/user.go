package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization role of an account
type Role string

const (
	RoleMentee Role = "mentee"
	RoleMentor Role = "mentor"
	RoleAdmin  Role = "admin"
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleMentee, RoleMentor, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is a stored account. PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the externally visible part of a user
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}

// Public strips credentials from the user
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Role: u.Role}
}

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
	Role     Role   `json:"role" binding:"required,oneof=mentee mentor admin"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Message string     `json:"message"`
	User    PublicUser `json:"user"`
	Token   string     `json:"token"`
}

// CreateUserRequest is the body of POST /api/admin/users
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
	Role     Role   `json:"role" binding:"required,oneof=mentee mentor admin"`
}

// UpdateRoleRequest is the body of PUT /api/admin/users/:id/role
type UpdateRoleRequest struct {
	Role Role `json:"role" binding:"required,oneof=mentee mentor admin"`
}
