package controller

import (
	"context"
	"io"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/Freeeeeet/academy_booking/internal/service"
	"github.com/google/uuid"
)

// Сервисы, которые вызывают обработчики. Реализации в пакете service.

type AuthService interface {
	Register(ctx context.Context, phone, password string) (*model.User, *model.Session, error)
	Login(ctx context.Context, phone, password string) (*model.User, *model.Session, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	Authenticate(ctx context.Context, sessionID uuid.UUID) (*model.User, error)
}

type ScheduleService interface {
	List(ctx context.Context, user *model.User) ([]*model.ScheduleWithCount, error)
}

type ReservationService interface {
	Create(ctx context.Context, student *model.User, in service.CreateReservationInput) (*model.Reservation, error)
	Update(ctx context.Context, actor *model.User, id int64, upd service.ReservationUpdate) (*model.Reservation, error)
	Delete(ctx context.Context, actor *model.User, id int64) error
	ListMine(ctx context.Context, user *model.User) ([]*model.ReservationDetails, error)
	ListAll(ctx context.Context, actor *model.User) ([]*model.ReservationDetails, error)
}

type RosterService interface {
	Add(ctx context.Context, student model.AllowedStudent) (*model.AllowedStudent, error)
	List(ctx context.Context) ([]*model.AllowedStudent, error)
}

// Uploader сохраняет файл и возвращает публичный URL
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}
