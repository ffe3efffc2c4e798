package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"gym-backend/internal/model"
	"gym-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestID())

	cfg := h.cfg
	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	authn := mw.Auth(cfg.Auth.JWTSecret)
	adminOnly := mw.RequireRole(model.RoleAdmin)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)

		// Public catalog, cached.
		api.GET("/gym-centers", caching, h.ListGymCenters)
		api.GET("/gym-centers/:id", caching, h.GetGymCenter)
		api.GET("/activities", caching, h.ListActivities)
		api.GET("/activities/:id", caching, h.GetActivity)
		api.GET("/trainers", caching, h.ListTrainers)
		api.GET("/trainers/:id", caching, h.GetTrainer)
		api.GET("/trainers/:id/activities", caching, h.ListTrainerActivities)

		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)

		authed := api.Group("")
		authed.Use(authn)
		{
			authed.POST("/appointments", h.CreateAppointment)
			authed.GET("/appointments", h.ListAppointments)
			authed.GET("/appointments/availability", h.GetAvailability)
			authed.GET("/appointments/booked-times", h.GetBookedTimes)
			authed.GET("/appointments/:id", h.GetAppointment)

			authed.GET("/members/me", h.GetOwnMember)
			authed.PUT("/members/me", h.UpdateOwnMember)

			authed.POST("/chat", h.Chat)
			authed.GET("/chat", h.GetChatHistory)

			authed.PUT("/subscriptions", h.PutSubscription)
			authed.GET("/subscriptions", h.GetSubscription)
			authed.DELETE("/subscriptions", h.DeleteSubscription)
		}

		admin := api.Group("")
		admin.Use(authn, adminOnly)
		{
			admin.PUT("/appointments/:id/status", h.UpdateAppointmentStatus)
			admin.DELETE("/appointments/:id", h.DeleteAppointment)

			admin.GET("/members", h.ListMembers)
			admin.GET("/members/:id", h.GetMember)

			admin.POST("/gym-centers", h.CreateGymCenter)
			admin.PUT("/gym-centers/:id", h.UpdateGymCenter)
			admin.DELETE("/gym-centers/:id", h.DeleteGymCenter)

			admin.POST("/activities", h.CreateActivity)
			admin.PUT("/activities/:id", h.UpdateActivity)
			admin.DELETE("/activities/:id", h.DeleteActivity)

			admin.POST("/trainers", h.CreateTrainer)
			admin.PUT("/trainers/:id", h.UpdateTrainer)
			admin.DELETE("/trainers/:id", h.DeleteTrainer)
			admin.PUT("/trainers/:id/activities", h.SetTrainerActivities)
		}
	}

	return r
}
