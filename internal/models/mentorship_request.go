package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the status of a mentorship request
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

// IsTerminal returns true if no further transitions are allowed
func (s RequestStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// IsResponse reports whether s is a status a mentor may respond with
func (s RequestStatus) IsResponse() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransitionTo checks if a status transition is valid.
// pending moves to accepted or rejected; both are terminal.
func (s RequestStatus) CanTransitionTo(newStatus RequestStatus) bool {
	return s == StatusPending && newStatus.IsResponse()
}

// MentorshipRequest is a mentee's request addressed to one mentor
type MentorshipRequest struct {
	ID        uuid.UUID     `json:"id"`
	MenteeID  uuid.UUID     `json:"mentee_id"`
	MentorID  uuid.UUID     `json:"mentor_id"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// IncomingRequest is a mentor's view of a request addressed to them
type IncomingRequest struct {
	ID          uuid.UUID     `json:"id"`
	MenteeID    uuid.UUID     `json:"mentee_id"`
	MenteeEmail string        `json:"mentee_email"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// OutgoingRequest is a mentee's view of a request they submitted
type OutgoingRequest struct {
	ID          uuid.UUID     `json:"id"`
	MentorID    uuid.UUID     `json:"mentor_id"`
	MentorEmail string        `json:"mentor_email"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// SubmitRequestBody is the body of POST /api/mentorship/request
type SubmitRequestBody struct {
	MentorID string `json:"mentor_id" binding:"required,uuid"`
}

// RespondRequestBody is the body of PUT /api/mentorship/respond/:id
type RespondRequestBody struct {
	Status RequestStatus `json:"status" binding:"required"`
}
