package controller

import (
	"net/http"
	"time"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/Freeeeeet/academy_booking/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionCookie  = "sid"
	currentUserKey = "academy_current_user"
)

// RequestLogger логирует каждый запрос
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		if user := CurrentUser(c); user != nil {
			fields = append(fields, zap.Int64("user_id", user.ID))
		}

		if status >= http.StatusInternalServerError {
			logger.Warn("HTTP request", fields...)
			return
		}
		logger.Debug("HTTP request", fields...)
	}
}

// Session читает cookie сессии и кладёт пользователя в контекст.
// Запрос без сессии проходит дальше анонимно.
func Session(auth AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := sessionFromCookie(c)
		if !ok {
			c.Next()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), sessionID)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		if user != nil {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

// RequireUser пропускает только авторизованных
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			respondMessage(c, http.StatusUnauthorized, service.ErrUnauthenticated.Message)
			return
		}
		c.Next()
	}
}

// RequireTeacher пропускает только учителя
func RequireTeacher() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			respondMessage(c, http.StatusUnauthorized, service.ErrUnauthenticated.Message)
			return
		}
		if !user.IsTeacher() {
			respondMessage(c, http.StatusForbidden, service.ErrTeacherOnly.Message)
			return
		}
		c.Next()
	}
}

// CurrentUser пользователь текущего запроса или nil
func CurrentUser(c *gin.Context) *model.User {
	if v, exists := c.Get(currentUserKey); exists {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

func sessionFromCookie(c *gin.Context) (uuid.UUID, bool) {
	raw, err := c.Cookie(sessionCookie)
	if err != nil || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
