package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/mentoapp/mentoapp-api/internal/models"
)

// AuthServiceInterface defines account registration and login
type AuthServiceInterface interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
}

// AdminUsersServiceInterface defines user management operations for admins
type AdminUsersServiceInterface interface {
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.PublicUser, error)
	ListUsers(ctx context.Context) ([]models.PublicUser, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, role models.Role) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// MentorshipServiceInterface defines the mentorship request workflow
type MentorshipServiceInterface interface {
	SubmitRequest(ctx context.Context, menteeID, mentorID uuid.UUID) (*models.MentorshipRequest, error)
	ListIncoming(ctx context.Context, mentorID uuid.UUID) ([]*models.IncomingRequest, error)
	ListOutgoing(ctx context.Context, menteeID uuid.UUID) ([]*models.OutgoingRequest, error)
	Respond(ctx context.Context, requestID, responderID uuid.UUID, newStatus models.RequestStatus) (*models.MentorshipRequest, error)
}

// SessionServiceInterface defines the session ledger operations
type SessionServiceInterface interface {
	Book(ctx context.Context, menteeID uuid.UUID, req *models.BookSessionRequest) (*models.Session, error)
	Create(ctx context.Context, input *models.SessionInput) (*models.Session, error)
	ListAll(ctx context.Context) ([]*models.SessionWithEmails, error)
	Update(ctx context.Context, sessionID uuid.UUID, input *models.SessionInput) (*models.Session, error)
}

// ProfileServiceInterface defines profile operations for the calling user
type ProfileServiceInterface interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.ProfileView, error)
	Create(ctx context.Context, userID uuid.UUID, req *models.CreateProfileRequest) (*models.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error)
	Delete(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

// MentorServiceInterface defines the mentor directory
type MentorServiceInterface interface {
	ListMentors(ctx context.Context) ([]models.PublicUser, error)
}

var (
	_ AuthServiceInterface       = (*AuthService)(nil)
	_ AdminUsersServiceInterface = (*AdminUsersService)(nil)
	_ MentorshipServiceInterface = (*MentorshipService)(nil)
	_ SessionServiceInterface    = (*SessionService)(nil)
	_ ProfileServiceInterface    = (*ProfileService)(nil)
	_ MentorServiceInterface     = (*MentorService)(nil)
)
