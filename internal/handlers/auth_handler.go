package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/mentoapp/mentoapp-api/internal/services"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	service services.AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "Please fill all fields", err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Server error")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "Please enter both email and password", err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Server error")
		return
	}

	c.JSON(http.StatusOK, resp)
}
