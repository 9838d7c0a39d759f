package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListDoctors returns all doctors, seeding the fixed set on first access.
func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.Doctors.ListDoctors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	doctor, err := h.Doctors.GetDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}
