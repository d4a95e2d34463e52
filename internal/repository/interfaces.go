package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mentoapp/mentoapp-api/internal/models"
)

// Storage contract shared by the PostgreSQL and the in-memory implementations.
// Missing rows are reported as apperrors.ErrNotFound, unique violations as apperrors.ErrConflict,
// references to unknown users as apperrors.ErrInvalidInput and everything else as apperrors.ErrStorage.

// UserStore persists accounts
type UserStore interface {
	InsertUser(ctx context.Context, email, passwordHash string, role models.Role) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)

	// ListUsersByRole returns users with the role ordered by email
	ListUsersByRole(ctx context.Context, role models.Role) ([]*models.User, error)

	UpdateUserRole(ctx context.Context, id uuid.UUID, role models.Role) error

	// DeleteUser removes the user together with their profile, requests and sessions
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// ProfileStore persists one profile per user
type ProfileStore interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	InsertProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error)

	// UpdateProfile overwrites name, bio, goals and skills and keeps the image
	UpdateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error)

	DeleteProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

// MentorshipRequestStore persists the request workflow
type MentorshipRequestStore interface {
	InsertMentorshipRequest(ctx context.Context, menteeID, mentorID uuid.UUID) (*models.MentorshipRequest, error)
	GetMentorshipRequest(ctx context.Context, id uuid.UUID) (*models.MentorshipRequest, error)

	// ListMentorshipRequestsForMentor returns every request addressed to the mentor, newest first
	ListMentorshipRequestsForMentor(ctx context.Context, mentorID uuid.UUID) ([]*models.IncomingRequest, error)

	// ListMentorshipRequestsForMentee returns every request the mentee submitted, newest first
	ListMentorshipRequestsForMentee(ctx context.Context, menteeID uuid.UUID) ([]*models.OutgoingRequest, error)

	// UpdateMentorshipRequestStatus moves the request from one status to another.
	// It returns apperrors.ErrNotFound when no request with that id currently has the from status.
	UpdateMentorshipRequestStatus(ctx context.Context, id uuid.UUID, from, to models.RequestStatus) (*models.MentorshipRequest, error)

	HasAcceptedRequest(ctx context.Context, menteeID, mentorID uuid.UUID) (bool, error)
}

// SessionStore persists the session ledger
type SessionStore interface {
	InsertSession(ctx context.Context, session *models.Session) (*models.Session, error)

	// ListSessions returns all sessions with participant emails, earliest first
	ListSessions(ctx context.Context) ([]*models.SessionWithEmails, error)

	// UpdateSession overwrites every mutable field of the session
	UpdateSession(ctx context.Context, session *models.Session) (*models.Session, error)
}

// Store is the complete persistence layer
type Store interface {
	UserStore
	ProfileStore
	MentorshipRequestStore
	SessionStore

	Ping(ctx context.Context) error
	Close()
}
