package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentoapp/mentoapp-api/internal/middleware"
	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/mentoapp/mentoapp-api/internal/services"
)

// AdminHandler handles user and session management for admins.
// Every endpoint checks the admin role before reading the body.
type AdminHandler struct {
	users    services.AdminUsersServiceInterface
	sessions services.SessionServiceInterface
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(users services.AdminUsersServiceInterface, sessions services.SessionServiceInterface) *AdminHandler {
	return &AdminHandler{
		users:    users,
		sessions: sessions,
	}
}

// CreateUser handles POST /api/admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	if middleware.RequireRole(c, models.RoleAdmin) == nil {
		return
	}

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "Missing or invalid fields", err)
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Server error creating user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	if middleware.RequireRole(c, models.RoleAdmin) == nil {
		return
	}

	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Server error retrieving users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateRole handles PUT /api/admin/users/:id/role
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	if middleware.RequireRole(c, models.RoleAdmin) == nil {
		return
	}

	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "Invalid role specified", err)
		return
	}

	if err := h.users.UpdateRole(c.Request.Context(), userID, req.Role); err != nil {
		respondServiceError(c, err, "Server error updating role")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully"})
}

// DeleteUser handles DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if middleware.RequireRole(c, models.RoleAdmin) == nil {
		return
	}

	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err, "Server error deleting user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// CreateSession handles POST /api/admin/sessions
func (h *AdminHandler) CreateSession(c *gin.Context) {
	if middleware.RequireRole(c, models.RoleAdmin) == nil {
		return
	}

	var input models.SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, "Missing or invalid fields", err)
		return
	}

	session, err := h.sessions.Create(c.Request.Context(), &input)
	if err != nil {
		respondServiceError(c, err, "Server error creating session")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Session created successfully", "session": session})
}

// ListSessions handles GET /api/admin/sessions
func (h *AdminHandler) ListSessions(c *gin.Context) {
	if middleware.RequireRole(c, models.RoleAdmin) == nil {
		return
	}

	sessions, err := h.sessions.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to load sessions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// UpdateSession handles PUT /api/admin/sessions/:id
func (h *AdminHandler) UpdateSession(c *gin.Context) {
	if middleware.RequireRole(c, models.RoleAdmin) == nil {
		return
	}

	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input models.SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, "Missing or invalid fields", err)
		return
	}

	session, err := h.sessions.Update(c.Request.Context(), sessionID, &input)
	if err != nil {
		respondServiceError(c, err, "Failed to update session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session updated successfully", "session": session})
}
