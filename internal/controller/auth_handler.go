package controller

import (
	"net/http"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/gin-gonic/gin"
)

// Register POST /api/register
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	user, session, err := h.auth.Register(c.Request.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.setSessionCookie(c, session)
	c.JSON(http.StatusCreated, user)
}

// Login POST /api/login
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	user, session, err := h.auth.Login(c.Request.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.setSessionCookie(c, session)
	c.JSON(http.StatusOK, user)
}

// Logout POST /api/logout. Без сессии тоже отвечает 200.
func (h *Handler) Logout(c *gin.Context) {
	if sessionID, ok := sessionFromCookie(c); ok {
		if err := h.auth.Logout(c.Request.Context(), sessionID); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	h.clearSessionCookie(c)
	c.Status(http.StatusOK)
}

// Me GET /api/user
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentUser(c))
}

func (h *Handler) setSessionCookie(c *gin.Context, session *model.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, session.ID.String(), int(h.sessionTTL.Seconds()), "/", "", h.cookieSecure, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", h.cookieSecure, true)
}
