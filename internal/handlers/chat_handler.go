package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type postMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// PostMessage runs the message pipeline for one user turn.
func (h *Handler) PostMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	reply, err := h.Chat.PostMessage(c.Request.Context(), req.Message, req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// ListSessions returns all chat sessions, most recently active first.
func (h *Handler) ListSessions(c *gin.Context) {
	sessions, err := h.Chat.ListSessions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

type createSessionRequest struct {
	Title string `json:"title"`
}

// CreateSession explicitly creates an empty session.
func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sess, err := h.Chat.CreateSession(c.Request.Context(), req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess.View())
}

// DeleteSession removes a session and its messages. Idempotent.
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.Chat.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SessionMessages returns a session's messages in ascending order.
func (h *Handler) SessionMessages(c *gin.Context) {
	messages, err := h.Chat.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}
