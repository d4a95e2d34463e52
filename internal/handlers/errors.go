package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentoapp/mentoapp-api/internal/services"
	apperrors "github.com/mentoapp/mentoapp-api/pkg/errors"
	"github.com/mentoapp/mentoapp-api/pkg/logger"
	"go.uber.org/zap"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
// so the observability middleware can include the reason in the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"message": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"message": message, "details": details})
}

// respondBindError answers a request whose body failed binding or validation
func respondBindError(c *gin.Context, message string, err error) {
	if details := ParseValidationErrors(err); len(details) > 0 {
		respondErrorWithDetails(c, http.StatusBadRequest, message, details, err)
		return
	}
	respondError(c, http.StatusBadRequest, message, err)
}

type errorMapping struct {
	target  error
	status  int
	message string
}

// Checked in order; the first match wins.
var domainErrors = []errorMapping{
	// Duplicate registration is reported as a bad request
	{services.ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{services.ErrRoleNotAllowed, http.StatusForbidden, "Role is not available for self-registration"},
	{services.ErrInvalidRole, http.StatusBadRequest, "Invalid role specified"},
	{services.ErrUserNotFound, http.StatusNotFound, "User not found"},

	{services.ErrInvalidStatus, http.StatusBadRequest, "Invalid response status"},
	{services.ErrRequestNotFound, http.StatusNotFound, "Request not found"},
	{services.ErrAccessDenied, http.StatusForbidden, "Access denied"},
	{services.ErrAlreadyResolved, http.StatusConflict, "Request already resolved"},
	{services.ErrConcurrentModification, http.StatusConflict, "Request was modified by another response"},
	{services.ErrUnknownParticipant, http.StatusBadRequest, "Referenced user does not exist"},

	{services.ErrNoAcceptedRequest, http.StatusForbidden, "No accepted mentorship request with this mentor"},
	{services.ErrSessionNotFound, http.StatusNotFound, "Session not found"},

	{services.ErrProfileNotFound, http.StatusNotFound, "No profile found"},
	{services.ErrProfileExists, http.StatusConflict, "Profile already exists"},
}

// Fallbacks by error kind
var errorKinds = []errorMapping{
	{apperrors.ErrInvalidInput, http.StatusBadRequest, "Invalid request"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{apperrors.ErrAccessDenied, http.StatusForbidden, "Access denied"},
	{apperrors.ErrNotFound, http.StatusNotFound, "Not found"},
	{apperrors.ErrConflict, http.StatusConflict, "Conflict"},
}

// respondServiceError maps a service error to a status and message.
// Unknown errors are answered with 500 and the given fallback message.
func respondServiceError(c *gin.Context, err error, fallback string) {
	for _, d := range domainErrors {
		if errors.Is(err, d.target) {
			respondError(c, d.status, d.message, err)
			return
		}
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			respondError(c, k.status, k.message, err)
			return
		}
	}

	logger.Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.String("method", c.Request.Method),
		zap.Error(err))
	respondError(c, http.StatusInternalServerError, fallback, err)
}
