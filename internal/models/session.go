package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is a scheduled meeting between a mentee and a mentor
type Session struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MenteeID    uuid.UUID `json:"mentee_id"`
	MentorID    uuid.UUID `json:"mentor_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// SessionWithEmails is the admin listing row
type SessionWithEmails struct {
	Session
	MenteeEmail string `json:"mentee_email"`
	MentorEmail string `json:"mentor_email"`
}

// BookSessionRequest is the body of POST /api/mentee/sessions/book
type BookSessionRequest struct {
	MentorID    string    `json:"mentor_id" binding:"required,uuid"`
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"max=5000"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// SessionInput is the body of the admin create and update session routes
type SessionInput struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"max=5000"`
	MenteeID    string    `json:"mentee_id" binding:"required,uuid"`
	MentorID    string    `json:"mentor_id" binding:"required,uuid"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}
