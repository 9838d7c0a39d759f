package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type bookAppointmentRequest struct {
	DoctorID string `json:"doctor_id"`
	Slot     string `json:"slot"`
	Symptoms string `json:"symptoms"`
	Notes    string `json:"notes"`
}

// BookAppointment creates a scheduled appointment with a snapshot of the
// doctor's name and specialty.
func (h *Handler) BookAppointment(c *gin.Context) {
	var req bookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	appt, err := h.Doctors.BookAppointment(c.Request.Context(), req.DoctorID, req.Slot, req.Symptoms, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt.View())
}

// ListAppointments returns all appointments, newest first.
func (h *Handler) ListAppointments(c *gin.Context) {
	appts, err := h.Doctors.ListAppointments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// CancelAppointment flips the status to cancelled. Cancelling twice leaves
// the record cancelled with no error.
func (h *Handler) CancelAppointment(c *gin.Context) {
	appt, err := h.Doctors.CancelAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      appt.ID.Hex(),
		"status":  appt.Status,
	})
}
