package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/mentoapp/mentoapp-api/internal/repository"
	apperrors "github.com/mentoapp/mentoapp-api/pkg/errors"
	"github.com/mentoapp/mentoapp-api/pkg/logger"
	"github.com/mentoapp/mentoapp-api/pkg/tracing"
	"go.uber.org/zap"
)

// ProfileService handles the profile of the calling user
type ProfileService struct {
	profiles repository.ProfileStore
	users    repository.UserRepositoryInterface
}

// NewProfileService creates a new ProfileService
func NewProfileService(profiles repository.ProfileStore, users repository.UserRepositoryInterface) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		users:    users,
	}
}

// Get returns the profile with the owner's email and role, creating an empty profile on first read
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (view *models.ProfileView, err error) {
	ctx, span := tracing.StartSpan(ctx, "profile.get")
	defer func() { tracing.EndSpan(span, err) }()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		profile, err = s.createEmpty(ctx, userID)
	}
	if err != nil {
		logger.Error("Failed to load profile", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	return &models.ProfileView{
		Profile: profile,
		User:    models.ProfileOwner{Email: user.Email, Role: user.Role},
	}, nil
}

func (s *ProfileService) createEmpty(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.InsertProfile(ctx, &models.Profile{UserID: userID, Skills: []string{}})
	if errors.Is(err, apperrors.ErrConflict) {
		// A concurrent first read created it
		return s.profiles.GetProfile(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Created empty profile", zap.String("user_id", userID.String()))
	return profile, nil
}

// Create stores a new profile; name and bio are required by the request binding
func (s *ProfileService) Create(ctx context.Context, userID uuid.UUID, req *models.CreateProfileRequest) (profile *models.Profile, err error) {
	ctx, span := tracing.StartSpan(ctx, "profile.create")
	defer func() { tracing.EndSpan(span, err) }()

	profile, err = s.profiles.InsertProfile(ctx, &models.Profile{
		UserID: userID,
		Name:   req.Name,
		Bio:    req.Bio,
		Goals:  req.Goals,
		Skills: trimSkills(req.Skills),
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			return nil, ErrProfileExists
		case errors.Is(err, apperrors.ErrInvalidInput):
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to create profile", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	logger.Info("Profile created", zap.String("user_id", userID.String()))
	return profile, nil
}

// Update overwrites name, bio, goals and skills; the image is kept
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (profile *models.Profile, err error) {
	ctx, span := tracing.StartSpan(ctx, "profile.update")
	defer func() { tracing.EndSpan(span, err) }()

	profile, err = s.profiles.UpdateProfile(ctx, &models.Profile{
		UserID: userID,
		Name:   req.Name,
		Bio:    req.Bio,
		Goals:  req.Goals,
		Skills: trimSkills(req.Skills),
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		logger.Error("Failed to update profile", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	logger.Info("Profile updated", zap.String("user_id", userID.String()))
	return profile, nil
}

// Delete removes the profile and returns the removed data
func (s *ProfileService) Delete(ctx context.Context, userID uuid.UUID) (profile *models.Profile, err error) {
	ctx, span := tracing.StartSpan(ctx, "profile.delete")
	defer func() { tracing.EndSpan(span, err) }()

	profile, err = s.profiles.DeleteProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		logger.Error("Failed to delete profile", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	logger.Info("Profile deleted", zap.String("user_id", userID.String()))
	return profile, nil
}

// trimSkills drops surrounding whitespace and empty entries
func trimSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}
