package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"event-manager.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	eventHandler        *handlers.EventHandler
	registrationHandler *handlers.RegistrationHandler
	authMiddleware      gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/resend-code", d.authHandler.ResendCode)
			auth.POST("/verify-code", d.authHandler.VerifyCode)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
			auth.DELETE("/me", d.authMiddleware, d.authHandler.DeleteMe)
		}

		// Event routes
		events := v1.Group("/events")
		{
			events.GET("", d.eventHandler.List)
			events.GET("/my", d.authMiddleware, d.eventHandler.ListMine)
			events.GET("/:id", d.eventHandler.Get)
			events.POST("", d.authMiddleware, d.eventHandler.Create)
			events.PUT("/:id", d.authMiddleware, d.eventHandler.Update)
			events.DELETE("/:id", d.authMiddleware, d.eventHandler.Delete)

			// Public registration for an event
			events.POST("/:id/register", d.registrationHandler.Register)
			events.GET("/:id/registrations", d.authMiddleware, d.registrationHandler.ListForEvent)
		}

		// Registration routes
		registrations := v1.Group("/registrations")
		{
			registrations.PUT("/:id", d.authMiddleware, d.registrationHandler.UpdateStatus)
			// Cancel-only endpoint; intentionally unauthenticated, matching
			// the public self-service cancel flow.
			registrations.DELETE("/:id", d.registrationHandler.Cancel)
		}
	}
}
