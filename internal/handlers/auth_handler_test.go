package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mentoapp/mentoapp-api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name     string
		body     gin.H
		expected int
		message  string
	}{
		{"missing fields", gin.H{"email": "a@example.com"}, http.StatusBadRequest, "Please fill all fields"},
		{"bad email", gin.H{"email": "not-an-email", "password": "pw", "role": "mentee"}, http.StatusBadRequest, "Please fill all fields"},
		{"unknown role", gin.H{"email": "a@example.com", "password": "pw", "role": "owner"}, http.StatusBadRequest, "Please fill all fields"},
		{"admin not allowed", gin.H{"email": "a@example.com", "password": "pw", "role": "admin"}, http.StatusForbidden, ""},
		{"ok", gin.H{"email": "a@example.com", "password": "pw", "role": "mentee"}, http.StatusCreated, "User registered successfully"},
		{"duplicate", gin.H{"email": "a@example.com", "password": "pw", "role": "mentor"}, http.StatusBadRequest, "Email already registered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, tt.expected, w.Code, w.Body.String())
			if tt.message != "" {
				body := decode[map[string]any](t, w)
				assert.Equal(t, tt.message, body["message"])
			}
		})
	}
}

func TestAuthHandler_RegisterAdminWhenAllowed(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Auth.AllowAdminRegistration = true
	})

	resp := srv.register(t, "root@example.com", "admin")
	assert.Equal(t, "admin", resp.User.Role)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthHandler_Login(t *testing.T) {
	srv := newTestServer(t)
	registered := srv.register(t, "a@example.com", "mentor")

	w := srv.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@example.com", "password": "correct horse battery"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[authBody](t, w)
	assert.Equal(t, "Login successful", resp.Message)
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.Equal(t, "mentor", resp.User.Role)
	assert.NotEmpty(t, resp.Token)
	assert.NotContains(t, w.Body.String(), "password")

	claims, err := srv.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)

	for _, body := range []gin.H{
		{"email": "a@example.com", "password": "wrong"},
		{"email": "nobody@example.com", "password": "correct horse battery"},
	} {
		w = srv.do(t, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Invalid email or password"}`, w.Body.String())
	}

	w = srv.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
