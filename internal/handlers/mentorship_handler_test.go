package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// submitAndFetch creates one pending request from mentee to mentor and returns its id
func submitAndFetch(t *testing.T, srv *testServer, mentee, mentor authBody) string {
	t.Helper()

	w := srv.do(t, http.MethodPost, "/api/mentorship/request", mentee.Token, gin.H{"mentor_id": mentor.User.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(t, http.MethodGet, "/api/mentorship/incoming", mentor.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	incoming := decode[struct {
		Requests []models.IncomingRequest `json:"requests"`
	}](t, w)
	require.NotEmpty(t, incoming.Requests)
	return incoming.Requests[0].ID.String()
}

func TestMentorshipHandler_Respond(t *testing.T) {
	srv := newTestServer(t)
	mentee := srv.register(t, "a@example.com", "mentee")
	mentor := srv.register(t, "b@example.com", "mentor")
	other := srv.register(t, "c@example.com", "mentor")

	requestID := submitAndFetch(t, srv, mentee, mentor)
	path := "/api/mentorship/respond/" + requestID

	w := srv.do(t, http.MethodPut, path, mentor.Token, gin.H{"status": "maybe"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid response status"}`, w.Body.String())

	w = srv.do(t, http.MethodPut, path, mentee.Token, gin.H{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodPut, path, other.Token, gin.H{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodPut, "/api/mentorship/respond/"+uuid.NewString(), mentor.Token, gin.H{"status": "accepted"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodPut, "/api/mentorship/respond/not-a-uuid", mentor.Token, gin.H{"status": "accepted"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPut, path, mentor.Token, gin.H{"status": "rejected"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Request rejected"`)

	w = srv.do(t, http.MethodPut, path, mentor.Token, gin.H{"status": "accepted"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMentorshipHandler_SubmitValidation(t *testing.T) {
	srv := newTestServer(t)
	mentee := srv.register(t, "a@example.com", "mentee")
	mentor := srv.register(t, "b@example.com", "mentor")

	w := srv.do(t, http.MethodPost, "/api/mentorship/request", mentee.Token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPost, "/api/mentorship/request", mentee.Token, gin.H{"mentor_id": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPost, "/api/mentorship/request", mentee.Token, gin.H{"mentor_id": uuid.NewString()})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Mentors do not submit requests
	w = srv.do(t, http.MethodPost, "/api/mentorship/request", mentor.Token, gin.H{"mentor_id": mentee.User.ID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodPost, "/api/mentorship/request", "", gin.H{"mentor_id": mentor.User.ID})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMentorshipHandler_IncomingNewestFirst(t *testing.T) {
	srv := newTestServer(t)
	first := srv.register(t, "first@example.com", "mentee")
	second := srv.register(t, "second@example.com", "mentee")
	mentor := srv.register(t, "mentor@example.com", "mentor")

	for _, mentee := range []authBody{first, second} {
		w := srv.do(t, http.MethodPost, "/api/mentorship/request", mentee.Token, gin.H{"mentor_id": mentor.User.ID})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := srv.do(t, http.MethodGet, "/api/mentorship/incoming", mentor.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	incoming := decode[struct {
		Requests []models.IncomingRequest `json:"requests"`
	}](t, w)
	require.Len(t, incoming.Requests, 2)
	assert.Equal(t, "second@example.com", incoming.Requests[0].MenteeEmail)
	assert.Equal(t, "first@example.com", incoming.Requests[1].MenteeEmail)
}
