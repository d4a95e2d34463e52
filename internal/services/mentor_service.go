package services

import (
	"context"

	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/mentoapp/mentoapp-api/internal/repository"
	"github.com/mentoapp/mentoapp-api/pkg/logger"
	"go.uber.org/zap"
)

// MentorService serves the mentor directory
type MentorService struct {
	users repository.UserRepositoryInterface
}

// NewMentorService creates a new MentorService
func NewMentorService(users repository.UserRepositoryInterface) *MentorService {
	return &MentorService{
		users: users,
	}
}

// ListMentors returns all users with the mentor role ordered by email
func (s *MentorService) ListMentors(ctx context.Context) ([]models.PublicUser, error) {
	mentors, err := s.users.GetMentors(ctx)
	if err != nil {
		logger.Error("Failed to list mentors", zap.Error(err))
		return nil, err
	}
	return mentors, nil
}
