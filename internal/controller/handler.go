package controller

import (
	"time"

	"go.uber.org/zap"
)

// Deps зависимости обработчиков. Uploader может быть nil, тогда загрузка фото выключена.
type Deps struct {
	Auth         AuthService
	Schedules    ScheduleService
	Reservations ReservationService
	Roster       RosterService
	Uploader     Uploader
	Logger       *zap.Logger

	CookieSecure bool
	SessionTTL   time.Duration
}

type Handler struct {
	auth         AuthService
	schedules    ScheduleService
	reservations ReservationService
	roster       RosterService
	uploader     Uploader
	logger       *zap.Logger

	cookieSecure bool
	sessionTTL   time.Duration
}

func NewHandler(deps Deps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		auth:         deps.Auth,
		schedules:    deps.Schedules,
		reservations: deps.Reservations,
		roster:       deps.Roster,
		uploader:     deps.Uploader,
		logger:       logger,
		cookieSecure: deps.CookieSecure,
		sessionTTL:   deps.SessionTTL,
	}
}
