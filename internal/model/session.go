package model

import (
	"time"

	"github.com/google/uuid"
)

// Session серверная сессия пользователя, идентификатор хранится в cookie
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired проверяет истекла ли сессия
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
