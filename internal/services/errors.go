package services

import (
	"fmt"

	apperrors "github.com/mentoapp/mentoapp-api/pkg/errors"
)

// Domain errors. Each wraps one of the shared error kinds so transport can map it to a status.
var (
	// Accounts
	ErrEmailTaken         = fmt.Errorf("email already registered: %w", apperrors.ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
	ErrRoleNotAllowed     = fmt.Errorf("role is not available for self-registration: %w", apperrors.ErrAccessDenied)
	ErrInvalidRole        = fmt.Errorf("invalid role: %w", apperrors.ErrInvalidInput)
	ErrUserNotFound       = fmt.Errorf("user %w", apperrors.ErrNotFound)

	// Mentorship workflow
	ErrInvalidStatus          = fmt.Errorf("invalid response status: %w", apperrors.ErrInvalidInput)
	ErrRequestNotFound        = fmt.Errorf("mentorship request %w", apperrors.ErrNotFound)
	ErrAccessDenied           = fmt.Errorf("only the addressed mentor may respond: %w", apperrors.ErrAccessDenied)
	ErrAlreadyResolved        = fmt.Errorf("mentorship request already resolved: %w", apperrors.ErrConflict)
	ErrConcurrentModification = fmt.Errorf("mentorship request was modified concurrently: %w", apperrors.ErrConflict)
	ErrUnknownParticipant     = fmt.Errorf("referenced user does not exist: %w", apperrors.ErrInvalidInput)

	// Session ledger
	ErrNoAcceptedRequest = fmt.Errorf("no accepted mentorship request with this mentor: %w", apperrors.ErrAccessDenied)
	ErrSessionNotFound   = fmt.Errorf("session %w", apperrors.ErrNotFound)

	// Profiles
	ErrProfileNotFound = fmt.Errorf("profile %w", apperrors.ErrNotFound)
	ErrProfileExists   = fmt.Errorf("profile already exists: %w", apperrors.ErrConflict)
)
