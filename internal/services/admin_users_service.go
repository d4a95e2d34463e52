package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mentoapp/mentoapp-api/config"
	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/mentoapp/mentoapp-api/internal/repository"
	apperrors "github.com/mentoapp/mentoapp-api/pkg/errors"
	"github.com/mentoapp/mentoapp-api/pkg/logger"
	"github.com/mentoapp/mentoapp-api/pkg/metrics"
	"github.com/mentoapp/mentoapp-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// AdminUsersService handles user management by admins.
// Callers are expected to have checked the admin role already.
type AdminUsersService struct {
	users  repository.UserRepositoryInterface
	config *config.Config
}

// NewAdminUsersService creates a new AdminUsersService
func NewAdminUsersService(users repository.UserRepositoryInterface, cfg *config.Config) *AdminUsersService {
	return &AdminUsersService{
		users:  users,
		config: cfg,
	}
}

// CreateUser creates an account with any role
func (s *AdminUsersService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (user *models.PublicUser, err error) {
	ctx, span := tracing.StartSpan(ctx, "admin.create_user",
		attribute.String("role", string(req.Role)))
	defer func() { tracing.EndSpan(span, err) }()

	if !req.Role.IsValid() {
		return nil, ErrInvalidRole
	}

	hash, err := hashPassword(req.Password, s.config.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, req.Email, hash, req.Role)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrEmailTaken
		}
		logger.Error("Failed to create user", zap.Error(err))
		return nil, err
	}

	metrics.AdminUserChanges.WithLabelValues("create").Inc()
	logger.Info("User created by admin",
		zap.String("user_id", created.ID.String()),
		zap.String("role", string(created.Role)))

	public := created.Public()
	return &public, nil
}

// ListUsers returns every account without credentials
func (s *AdminUsersService) ListUsers(ctx context.Context) (users []models.PublicUser, err error) {
	ctx, span := tracing.StartSpan(ctx, "admin.list_users")
	defer func() { tracing.EndSpan(span, err) }()

	all, err := s.users.GetAll(ctx)
	if err != nil {
		logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}

	users = make([]models.PublicUser, 0, len(all))
	for _, u := range all {
		users = append(users, u.Public())
	}
	return users, nil
}

// UpdateRole changes the role of an account. Tokens issued earlier keep their old role until they expire.
func (s *AdminUsersService) UpdateRole(ctx context.Context, userID uuid.UUID, role models.Role) (err error) {
	ctx, span := tracing.StartSpan(ctx, "admin.update_role",
		attribute.String("user_id", userID.String()),
		attribute.String("role", string(role)))
	defer func() { tracing.EndSpan(span, err) }()

	if !role.IsValid() {
		return ErrInvalidRole
	}

	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrUserNotFound
		}
		logger.Error("Failed to update role",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return err
	}

	metrics.AdminUserChanges.WithLabelValues("update_role").Inc()
	logger.Info("User role updated",
		zap.String("user_id", userID.String()),
		zap.String("role", string(role)))

	return nil
}

// DeleteUser removes an account together with its profile, requests and sessions
func (s *AdminUsersService) DeleteUser(ctx context.Context, userID uuid.UUID) (err error) {
	ctx, span := tracing.StartSpan(ctx, "admin.delete_user",
		attribute.String("user_id", userID.String()))
	defer func() { tracing.EndSpan(span, err) }()

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrUserNotFound
		}
		logger.Error("Failed to delete user",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return err
	}

	metrics.AdminUserChanges.WithLabelValues("delete").Inc()
	logger.Info("User deleted", zap.String("user_id", userID.String()))

	return nil
}
