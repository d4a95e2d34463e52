package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/mentoapp/mentoapp-api/pkg/jwt"
	"github.com/mentoapp/mentoapp-api/pkg/logger"
	"github.com/mentoapp/mentoapp-api/pkg/metrics"
	"go.uber.org/zap"
)

// IdentityContextKey stores the verified caller in the gin context
const IdentityContextKey = "identity"

const bearerPrefix = "Bearer "

var (
	ErrIdentityNotFound = errors.New("identity not found in context")
	ErrInvalidIdentity  = errors.New("invalid identity type")
)

// TokenVerifier verifies access tokens
type TokenVerifier interface {
	Verify(token string) (*jwt.UserClaims, error)
}

// BearerAuthMiddleware admits requests carrying a valid "Authorization: Bearer <token>" header.
// A missing or malformed header is answered with 401, a token that fails verification with 403.
// Nothing downstream runs for rejected requests.
func BearerAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) || strings.TrimSpace(header[len(bearerPrefix):]) == "" {
			metrics.TokenRejections.WithLabelValues("missing").Inc()
			logger.Warn("Missing bearer token",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()))
			_ = c.Error(fmt.Errorf("missing bearer token")) //nolint:errcheck
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
			return
		}

		token := strings.TrimSpace(header[len(bearerPrefix):])
		claims, err := verifier.Verify(token)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, jwt.ErrExpiredToken) {
				reason = "expired"
			}
			metrics.TokenRejections.WithLabelValues(reason).Inc()
			logger.Warn("Rejected bearer token",
				zap.String("reason", reason),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
				zap.Error(err))
			_ = c.Error(fmt.Errorf("rejected bearer token: %w", err)) //nolint:errcheck
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid or expired token."})
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			metrics.TokenRejections.WithLabelValues("invalid").Inc()
			_ = c.Error(fmt.Errorf("token subject is not a UUID: %w", err)) //nolint:errcheck
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid or expired token."})
			return
		}

		identity := &models.Identity{
			UserID: userID,
			Role:   models.Role(claims.Role),
		}
		if claims.IssuedAt != nil {
			identity.IssuedAt = claims.IssuedAt.Time
		}
		if claims.ExpiresAt != nil {
			identity.ExpiresAt = claims.ExpiresAt.Time
		}

		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

// GetIdentity returns the caller verified by BearerAuthMiddleware
func GetIdentity(c *gin.Context) (*models.Identity, error) {
	val, exists := c.Get(IdentityContextKey)
	if !exists {
		return nil, ErrIdentityNotFound
	}

	identity, ok := val.(*models.Identity)
	if !ok {
		return nil, ErrInvalidIdentity
	}

	return identity, nil
}

// RequireRole returns the caller when it holds one of the roles.
// Otherwise it writes 403 {"message": "Access denied"}, aborts and returns nil.
func RequireRole(c *gin.Context, roles ...models.Role) *models.Identity {
	identity, err := GetIdentity(c)
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
		return nil
	}

	if !identity.HasRole(roles...) {
		logger.Warn("Role check failed",
			zap.String("user_id", identity.UserID.String()),
			zap.String("role", string(identity.Role)),
			zap.String("path", c.Request.URL.Path))
		_ = c.Error(fmt.Errorf("role %q not allowed", identity.Role)) //nolint:errcheck
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return nil
	}

	return identity
}
