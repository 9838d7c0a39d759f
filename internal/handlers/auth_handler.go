package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebothq/carebot-api/internal/models"
	"github.com/carebothq/carebot-api/internal/services"
	"github.com/carebothq/carebot-api/internal/store"
	"github.com/carebothq/carebot-api/internal/utils"
)

type registerRequest struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Age        int    `json:"age"`
	Conditions string `json:"conditions"`
}

// splitConditions turns the comma-separated conditions field into a
// trimmed, empty-filtered list.
func splitConditions(csv string) []string {
	out := []string{}
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// RegisterUser creates an account and returns a bearer token with the
// public user projection.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fullName, email, and password are required"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{
		ID:         primitive.NewObjectID(),
		FullName:   req.FullName,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Password:   hashedPassword,
		Age:        req.Age,
		Conditions: splitConditions(req.Conditions),
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.Store.Users.InsertUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			respondError(c, services.ErrDuplicateEmail)
			return
		}
		respondError(c, err)
		return
	}

	token, err := utils.GenerateJWT(h.JWTSecret, user.ID.Hex())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"user":    user.Public(),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a fresh token. The failure message
// never distinguishes an unknown email from a wrong password.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.Store.Users.UserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, services.ErrInvalidCredentials)
			return
		}
		respondError(c, err)
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		respondError(c, services.ErrInvalidCredentials)
		return
	}

	token, err := utils.GenerateJWT(h.JWTSecret, user.ID.Hex())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user.Public(),
	})
}

// Me returns the profile of the authenticated user.
func (h *Handler) Me(c *gin.Context) {
	userIDHex := c.GetString("userID")
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		log.Printf("invalid user id in token: %q", userIDHex)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	user, err := h.Store.Users.UserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}
