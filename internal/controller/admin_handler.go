package controller

import (
	"net/http"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/gin-gonic/gin"
)

// ListAllowedStudents GET /api/admin/allowed-students
func (h *Handler) ListAllowedStudents(c *gin.Context) {
	list, err := h.roster.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// AddAllowedStudent POST /api/admin/allowed-students
func (h *Handler) AddAllowedStudent(c *gin.Context) {
	var req allowedStudentRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	student, err := h.roster.Add(c.Request.Context(), model.AllowedStudent{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		SeatNumber:  req.SeatNumber,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}
