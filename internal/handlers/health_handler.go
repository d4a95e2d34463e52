package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mentoapp/mentoapp-api/pkg/logger"
	"go.uber.org/zap"
)

const healthcheckTimeout = 2 * time.Second

// Pinger reports whether the storage backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	storage Pinger
}

func NewHealthHandler(storage Pinger) *HealthHandler {
	return &HealthHandler{
		storage: storage,
	}
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthcheckTimeout)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		logger.Warn("Healthcheck failed", zap.Error(err))
		attachError(c, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "storage unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Hello handles GET /api/hello
func Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from API!"})
}
