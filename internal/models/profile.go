package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the descriptive data of one user
type Profile struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	Goals     string    `json:"goals"`
	Skills    []string  `json:"skills"`
	Image     *string   `json:"image"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProfileRequest is the body of POST /api/profile
type CreateProfileRequest struct {
	Name   string   `json:"name" binding:"required,max=100"`
	Bio    string   `json:"bio" binding:"required,max=5000"`
	Goals  string   `json:"goals" binding:"max=5000"`
	Skills []string `json:"skills" binding:"max=50,dive,max=100"`
}

// UpdateProfileRequest is the body of PUT /api/profile. Missing fields are cleared.
type UpdateProfileRequest struct {
	Name   string   `json:"name" binding:"max=100"`
	Bio    string   `json:"bio" binding:"max=5000"`
	Goals  string   `json:"goals" binding:"max=5000"`
	Skills []string `json:"skills" binding:"max=50,dive,max=100"`
}

// ProfileOwner is the user part of GET /api/profile
type ProfileOwner struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// ProfileView is returned by GET /api/profile
type ProfileView struct {
	Profile *Profile     `json:"profile"`
	User    ProfileOwner `json:"user"`
}
