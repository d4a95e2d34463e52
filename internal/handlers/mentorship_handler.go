package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mentoapp/mentoapp-api/internal/middleware"
	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/mentoapp/mentoapp-api/internal/services"
)

// MentorshipHandler exposes the mentorship request workflow
type MentorshipHandler struct {
	service services.MentorshipServiceInterface
}

// NewMentorshipHandler creates a new MentorshipHandler
func NewMentorshipHandler(service services.MentorshipServiceInterface) *MentorshipHandler {
	return &MentorshipHandler{service: service}
}

// SubmitRequest handles POST /api/mentorship/request and POST /api/mentee/requests
func (h *MentorshipHandler) SubmitRequest(c *gin.Context) {
	identity := middleware.RequireRole(c, models.RoleMentee)
	if identity == nil {
		return
	}

	var body models.SubmitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, "mentor_id is required", err)
		return
	}

	mentorID, err := uuid.Parse(body.MentorID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "mentor_id must be a valid UUID", err)
		return
	}

	req, err := h.service.SubmitRequest(c.Request.Context(), identity.UserID, mentorID)
	if err != nil {
		respondServiceError(c, err, "Failed to send request")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mentorship request sent", "request": req})
}

// ListIncoming handles GET /api/mentorship/incoming
func (h *MentorshipHandler) ListIncoming(c *gin.Context) {
	identity := middleware.RequireRole(c, models.RoleMentor)
	if identity == nil {
		return
	}

	requests, err := h.service.ListIncoming(c.Request.Context(), identity.UserID)
	if err != nil {
		respondServiceError(c, err, "Failed to load requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// ListOutgoing handles GET /api/mentee/requests
func (h *MentorshipHandler) ListOutgoing(c *gin.Context) {
	identity := middleware.RequireRole(c, models.RoleMentee)
	if identity == nil {
		return
	}

	requests, err := h.service.ListOutgoing(c.Request.Context(), identity.UserID)
	if err != nil {
		respondServiceError(c, err, "Failed to load requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// Respond handles PUT /api/mentorship/respond/:id
func (h *MentorshipHandler) Respond(c *gin.Context) {
	identity := middleware.RequireRole(c, models.RoleMentor)
	if identity == nil {
		return
	}

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var body models.RespondRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, "Invalid response status", err)
		return
	}

	req, err := h.service.Respond(c.Request.Context(), requestID, identity.UserID, body.Status)
	if err != nil {
		respondServiceError(c, err, "Failed to update request status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request " + string(req.Status), "request": req})
}
