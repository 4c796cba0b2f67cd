package controller

import (
	"net/http"

	"github.com/Freeeeeet/academy_booking/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const internalErrorMessage = "internal server error"

// statusFor переводит класс ошибки в HTTP статус
func statusFor(kind service.ErrorKind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError пишет {"message": ...}. Внутренние ошибки логируются, клиенту уходит общее сообщение.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	kind := service.KindOf(err)
	status := statusFor(kind)

	if kind == service.KindInternal {
		logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(status, gin.H{"message": internalErrorMessage})
		return
	}

	c.AbortWithStatusJSON(status, gin.H{"message": err.Error()})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
