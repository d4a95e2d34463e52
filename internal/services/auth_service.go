package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mentoapp/mentoapp-api/config"
	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/mentoapp/mentoapp-api/internal/repository"
	apperrors "github.com/mentoapp/mentoapp-api/pkg/errors"
	"github.com/mentoapp/mentoapp-api/pkg/jwt"
	"github.com/mentoapp/mentoapp-api/pkg/logger"
	"github.com/mentoapp/mentoapp-api/pkg/metrics"
	"github.com/mentoapp/mentoapp-api/pkg/tracing"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registers accounts and issues access tokens
type AuthService struct {
	users        repository.UserRepositoryInterface
	tokenManager *jwt.TokenManager
	config       *config.Config

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepositoryInterface, tokenManager *jwt.TokenManager, cfg *config.Config) *AuthService {
	return &AuthService{
		users:        users,
		tokenManager: tokenManager,
		config:       cfg,
	}
}

// Register creates an account and returns it together with a fresh token
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (resp *models.AuthResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "auth.register")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.AuthAttempts.WithLabelValues("register", attemptStatus(err)).Inc()
	}()

	if !req.Role.IsValid() {
		return nil, ErrInvalidRole
	}
	if req.Role == models.RoleAdmin && !s.config.Auth.AllowAdminRegistration {
		logger.Warn("Admin self-registration rejected", zap.String("email", req.Email))
		return nil, ErrRoleNotAllowed
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	user, err := s.createUser(ctx, req.Email, req.Password, req.Role)
	if err != nil {
		return nil, err
	}

	token, err := s.tokenManager.Issue(user.ID.String(), string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &models.AuthResponse{
		Message: "User registered successfully",
		User:    user.Public(),
		Token:   token,
	}, nil
}

// Login checks credentials and returns a fresh token
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (resp *models.AuthResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "auth.login")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.AuthAttempts.WithLabelValues("login", attemptStatus(err)).Inc()
	}()

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Unknown emails cost one bcrypt comparison too
			_ = bcrypt.CompareHashAndPassword(s.dummyPasswordHash(), []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Debug("Password mismatch", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenManager.Issue(user.ID.String(), string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &models.AuthResponse{
		Message: "Login successful",
		User:    user.Public(),
		Token:   token,
	}, nil
}

// EnsureAdmin makes sure an admin account with the given email exists.
// An existing account keeps its password and is promoted to admin.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if user.Role == models.RoleAdmin {
			logger.Info("Bootstrap admin already present", zap.String("user_id", user.ID.String()))
			return nil
		}
		if err := s.users.UpdateRole(ctx, user.ID, models.RoleAdmin); err != nil {
			return fmt.Errorf("failed to promote bootstrap admin: %w", err)
		}
		logger.Info("Bootstrap admin promoted", zap.String("user_id", user.ID.String()))
		return nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	user, err = s.createUser(ctx, email, password, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	logger.Info("Bootstrap admin created", zap.String("user_id", user.ID.String()))
	return nil
}

// createUser hashes the password and stores the account
func (s *AuthService) createUser(ctx context.Context, email, password string, role models.Role) (*models.User, error) {
	hash, err := hashPassword(password, s.config.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, email, hash, role)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrEmailTaken
		}
		logger.Error("Failed to create user", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	return user, nil
}

func (s *AuthService) dummyPasswordHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("mentoapp-dummy-password"), s.config.Auth.BcryptCost)
	})
	return s.dummyHash
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperrors.InvalidInputError("password", "must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func attemptStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, apperrors.ErrStorage):
		return "error"
	default:
		return "rejected"
	}
}
