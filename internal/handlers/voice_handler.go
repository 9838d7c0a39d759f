package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SpeechToText transcribes an uploaded audio file (multipart field
// "audio_file") into text.
func (h *Handler) SpeechToText(c *gin.Context) {
	fileHeader, err := c.FormFile("audio_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio_file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	text, err := h.Voice.SpeechToText(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}

type textToSpeechRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

// TextToSpeech synthesizes text into base64-encoded mp3 audio.
func (h *Handler) TextToSpeech(c *gin.Context) {
	var req textToSpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	audio, err := h.Voice.TextToSpeech(c.Request.Context(), req.Text, req.Voice)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"audio_base64": audio,
		"text":         req.Text,
	})
}

// Voices returns the fixed voice catalog.
func (h *Handler) Voices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"voices": h.Voice.Voices()})
}
