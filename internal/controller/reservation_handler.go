package controller

import (
	"io"
	"net/http"
	"strconv"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/Freeeeeet/academy_booking/internal/service"
	"github.com/gin-gonic/gin"
)

const maxUpdateBody = 64 << 10

// CreateReservation POST /api/reservations
func (h *Handler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	reservation, err := h.reservations.Create(c.Request.Context(), CurrentUser(c), service.CreateReservationInput{
		ScheduleID: req.ScheduleID,
		Type:       model.ReservationType(req.Type),
		Content:    req.Content,
		PhotoURLs:  req.PhotoURLs,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// MyReservations GET /api/reservations/mine
func (h *Handler) MyReservations(c *gin.Context) {
	list, err := h.reservations.ListMine(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// AllReservations GET /api/reservations, только учитель
func (h *Handler) AllReservations(c *gin.Context) {
	list, err := h.reservations.ListAll(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateReservation PATCH /api/reservations/:id
func (h *Handler) UpdateReservation(c *gin.Context) {
	id, ok := h.reservationID(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUpdateBody))
	if err != nil {
		respondError(c, h.logger, service.Validation("cannot read request body"))
		return
	}

	user := CurrentUser(c)
	upd, err := service.ParseReservationUpdate(user.Role, body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	reservation, err := h.reservations.Update(c.Request.Context(), user, id, upd)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// DeleteReservation DELETE /api/reservations/:id
func (h *Handler) DeleteReservation(c *gin.Context) {
	id, ok := h.reservationID(c)
	if !ok {
		return
	}

	if err := h.reservations.Delete(c.Request.Context(), CurrentUser(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *Handler) reservationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, h.logger, service.Validation("invalid reservation id"))
		return 0, false
	}
	return id, true
}
