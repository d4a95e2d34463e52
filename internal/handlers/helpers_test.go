package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mentoapp/mentoapp-api/config"
	"github.com/mentoapp/mentoapp-api/internal/cache"
	"github.com/mentoapp/mentoapp-api/internal/database/memory"
	"github.com/mentoapp/mentoapp-api/internal/middleware"
	"github.com/mentoapp/mentoapp-api/internal/repository"
	"github.com/mentoapp/mentoapp-api/internal/services"
	"github.com/mentoapp/mentoapp-api/pkg/jwt"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testServer is the full API over the in-memory store
type testServer struct {
	router *gin.Engine
	store  *memory.Store
	tokens *jwt.TokenManager
	auth   *services.AuthService
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *testServer {
	t.Helper()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret-key-that-is-long-enough-123",
			JWTIssuer:  "mentoapp-api",
			BcryptCost: bcrypt.MinCost,
		},
		Cache: config.CacheConfig{MentorTTLSeconds: 60},
	}
	for _, m := range mutate {
		m(cfg)
	}

	tokens, err := jwt.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	require.NoError(t, err)

	store := memory.NewStore()
	users := repository.NewUserRepository(store, cache.NewMentorCache(store, cfg.Cache.MentorTTLSeconds))

	authService := services.NewAuthService(users, tokens, cfg)
	sessionService := services.NewSessionService(store, store, cfg)
	mentorshipService := services.NewMentorshipService(store)

	h := &Handlers{
		Auth:       NewAuthHandler(authService),
		Admin:      NewAdminHandler(services.NewAdminUsersService(users, cfg), sessionService),
		Mentee:     NewMenteeHandler(services.NewMentorService(users), sessionService),
		Mentorship: NewMentorshipHandler(mentorshipService),
		Profile:    NewProfileHandler(services.NewProfileService(store, users)),
		Health:     NewHealthHandler(store),
	}

	router := gin.New()
	noLimit := func(c *gin.Context) { c.Next() }
	RegisterRoutes(router.Group("/api"), h, middleware.BearerAuthMiddleware(tokens), noLimit)

	return &testServer{
		router: router,
		store:  store,
		tokens: tokens,
		auth:   authService,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type authBody struct {
	Message string `json:"message"`
	User    struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
	Token string `json:"token"`
}

func (s *testServer) register(t *testing.T, email, role string) authBody {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    email,
		"password": "correct horse battery",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[authBody](t, w)
}
