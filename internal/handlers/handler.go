package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carebothq/carebot-api/internal/llm"
	"github.com/carebothq/carebot-api/internal/services"
	"github.com/carebothq/carebot-api/internal/store"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	Store     store.Store
	Chat      *services.ChatService
	Doctors   *services.DoctorService
	Voice     *services.VoiceService
	JWTSecret string
}

func NewHandler(st store.Store, chat *services.ChatService, doctors *services.DoctorService, voice *services.VoiceService, jwtSecret string) *Handler {
	return &Handler{
		Store:     st,
		Chat:      chat,
		Doctors:   doctors,
		Voice:     voice,
		JWTSecret: jwtSecret,
	}
}

// respondError maps a service-layer failure onto the HTTP error taxonomy.
// Full detail is logged server-side; the client only sees a short message.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		upstreamErr   *llm.UpstreamError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Msg})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.As(err, &upstreamErr):
		status := upstreamErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		log.Printf("upstream error (request %s): %v", c.GetString("requestID"), err)
		c.JSON(status, gin.H{"error": "AI service is unavailable"})
	default:
		log.Printf("internal error (request %s): %v", c.GetString("requestID"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
