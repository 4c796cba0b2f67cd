package controller

import (
	"net/http"

	"github.com/Freeeeeet/academy_booking/internal/render"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const boardTitle = "Onsite question slots"

// ListSchedules GET /api/schedules, доступен и без входа
func (h *Handler) ListSchedules(c *gin.Context) {
	schedules, err := h.schedules.List(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// ScheduleBoard GET /api/schedules/board.png, та же загрузка картинкой
func (h *Handler) ScheduleBoard(c *gin.Context) {
	schedules, err := h.schedules.List(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	img, err := render.ScheduleBoard(boardTitle, schedules)
	if err != nil {
		h.logger.Error("Failed to render schedule board", zap.Error(err))
		respondMessage(c, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", img)
}
