package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentoapp/mentoapp-api/internal/middleware"
	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/mentoapp/mentoapp-api/internal/services"
)

// ProfileHandler manages the caller's own profile
type ProfileHandler struct {
	service services.ProfileServiceInterface
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(service services.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetProfile handles GET /api/profile. A blank profile is created on first access.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	view, err := h.service.Get(c.Request.Context(), identity.UserID)
	if err != nil {
		respondServiceError(c, err, "Server error loading profile")
		return
	}

	c.JSON(http.StatusOK, view)
}

// CreateProfile handles POST /api/profile
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "Please fill required fields: name, bio", err)
		return
	}

	profile, err := h.service.Create(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		respondServiceError(c, err, "Server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Profile created successfully", "profile": profile})
}

// UpdateProfile handles PUT /api/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "Invalid request body", err)
		return
	}

	profile, err := h.service.Update(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		respondServiceError(c, err, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "profile": profile})
}

// DeleteProfile handles DELETE /api/profile
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	profile, err := h.service.Delete(c.Request.Context(), identity.UserID)
	if err != nil {
		respondServiceError(c, err, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted successfully", "profile": profile})
}
