package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentoapp/mentoapp-api/internal/middleware"
	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/mentoapp/mentoapp-api/internal/services"
)

// MenteeHandler serves the mentor directory and session booking
type MenteeHandler struct {
	mentors  services.MentorServiceInterface
	sessions services.SessionServiceInterface
}

// NewMenteeHandler creates a new MenteeHandler
func NewMenteeHandler(mentors services.MentorServiceInterface, sessions services.SessionServiceInterface) *MenteeHandler {
	return &MenteeHandler{
		mentors:  mentors,
		sessions: sessions,
	}
}

// ListMentors handles GET /api/mentee/mentors
func (h *MenteeHandler) ListMentors(c *gin.Context) {
	mentors, err := h.mentors.ListMentors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Server error fetching mentors")
		return
	}

	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}

// BookSession handles POST /api/mentee/sessions/book
func (h *MenteeHandler) BookSession(c *gin.Context) {
	identity := middleware.RequireRole(c, models.RoleMentee)
	if identity == nil {
		return
	}

	var req models.BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "Missing or invalid fields", err)
		return
	}

	session, err := h.sessions.Book(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to book session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session booked successfully", "session": session})
}
