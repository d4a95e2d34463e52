package handlers

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups every API handler mounted by RegisterRoutes
type Handlers struct {
	Auth       *AuthHandler
	Admin      *AdminHandler
	Mentee     *MenteeHandler
	Mentorship *MentorshipHandler
	Profile    *ProfileHandler
	Health     *HealthHandler
}

// RegisterRoutes mounts the API under api (normally the /api group).
// requireToken guards everything except hello, healthcheck and the auth routes;
// authLimit is applied to register and login only.
func RegisterRoutes(api *gin.RouterGroup, h *Handlers, requireToken, authLimit gin.HandlerFunc) {
	api.GET("/hello", Hello)
	api.GET("/healthcheck", h.Health.Healthcheck)

	auth := api.Group("/auth", authLimit)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	profile := api.Group("/profile", requireToken)
	profile.GET("", h.Profile.GetProfile)
	profile.POST("", h.Profile.CreateProfile)
	profile.PUT("", h.Profile.UpdateProfile)
	profile.DELETE("", h.Profile.DeleteProfile)

	admin := api.Group("/admin", requireToken)
	admin.POST("/users", h.Admin.CreateUser)
	admin.GET("/users", h.Admin.ListUsers)
	admin.PUT("/users/:id/role", h.Admin.UpdateRole)
	admin.DELETE("/users/:id", h.Admin.DeleteUser)
	admin.POST("/sessions", h.Admin.CreateSession)
	admin.GET("/sessions", h.Admin.ListSessions)
	admin.PUT("/sessions/:id", h.Admin.UpdateSession)

	mentee := api.Group("/mentee", requireToken)
	mentee.GET("/mentors", h.Mentee.ListMentors)
	mentee.POST("/requests", h.Mentorship.SubmitRequest)
	mentee.GET("/requests", h.Mentorship.ListOutgoing)
	mentee.POST("/sessions/book", h.Mentee.BookSession)

	mentorship := api.Group("/mentorship", requireToken)
	mentorship.POST("/request", h.Mentorship.SubmitRequest)
	mentorship.GET("/incoming", h.Mentorship.ListIncoming)
	mentorship.PUT("/respond/:id", h.Mentorship.Respond)
}
