package services_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockMentorshipRequestStore is a mock implementation of repository.MentorshipRequestStore
type MockMentorshipRequestStore struct {
	mock.Mock
}

func (m *MockMentorshipRequestStore) InsertMentorshipRequest(ctx context.Context, menteeID, mentorID uuid.UUID) (*models.MentorshipRequest, error) {
	args := m.Called(ctx, menteeID, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipRequest), args.Error(1)
}

func (m *MockMentorshipRequestStore) GetMentorshipRequest(ctx context.Context, id uuid.UUID) (*models.MentorshipRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipRequest), args.Error(1)
}

func (m *MockMentorshipRequestStore) ListMentorshipRequestsForMentor(ctx context.Context, mentorID uuid.UUID) ([]*models.IncomingRequest, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.IncomingRequest), args.Error(1)
}

func (m *MockMentorshipRequestStore) ListMentorshipRequestsForMentee(ctx context.Context, menteeID uuid.UUID) ([]*models.OutgoingRequest, error) {
	args := m.Called(ctx, menteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OutgoingRequest), args.Error(1)
}

func (m *MockMentorshipRequestStore) UpdateMentorshipRequestStatus(ctx context.Context, id uuid.UUID, from, to models.RequestStatus) (*models.MentorshipRequest, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipRequest), args.Error(1)
}

func (m *MockMentorshipRequestStore) HasAcceptedRequest(ctx context.Context, menteeID, mentorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, menteeID, mentorID)
	return args.Bool(0), args.Error(1)
}

// MockSessionStore is a mock implementation of repository.SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) InsertSession(ctx context.Context, session *models.Session) (*models.Session, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionStore) ListSessions(ctx context.Context) ([]*models.SessionWithEmails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SessionWithEmails), args.Error(1)
}

func (m *MockSessionStore) UpdateSession(ctx context.Context, session *models.Session) (*models.Session, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

// MockUserRepository is a mock implementation of repository.UserRepositoryInterface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, email, passwordHash string, role models.Role) (*models.User, error) {
	args := m.Called(ctx, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) GetMentors(ctx context.Context) ([]models.PublicUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PublicUser), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
