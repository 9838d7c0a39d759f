package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carebothq/carebot-api/internal/middleware"
)

// RegisterRoutes wires the route table onto a gin engine. Shared by the
// server binary and the handler tests.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(middleware.RequestID())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().UTC()})
	})

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
		authRoutes.GET("/me", middleware.Auth(h.JWTSecret), h.Me)
	}

	authed := middleware.Auth(h.JWTSecret)

	chatRoutes := r.Group("/chat", authed)
	{
		chatRoutes.GET("/sessions", h.ListSessions)
		chatRoutes.POST("/sessions", h.CreateSession)
		chatRoutes.DELETE("/sessions/:id", h.DeleteSession)
		chatRoutes.GET("/sessions/:id/messages", h.SessionMessages)
		chatRoutes.POST("/messages", h.PostMessage)
	}

	doctorRoutes := r.Group("/doctors", authed)
	{
		doctorRoutes.GET("", h.ListDoctors)
		doctorRoutes.GET("/:id", h.GetDoctor)
	}

	appointmentRoutes := r.Group("/appointments", authed)
	{
		appointmentRoutes.POST("", h.BookAppointment)
		appointmentRoutes.GET("", h.ListAppointments)
		appointmentRoutes.PATCH("/:id/cancel", h.CancelAppointment)
	}

	voiceRoutes := r.Group("/voice", authed)
	{
		voiceRoutes.POST("/speech-to-text", h.SpeechToText)
		voiceRoutes.POST("/text-to-speech", h.TextToSpeech)
		voiceRoutes.GET("/voices", h.Voices)
	}
}
