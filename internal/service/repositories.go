package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/google/uuid"
)

// Интерфейсы хранилища, которые использует сервисный слой.
// Реализации: пакет repository (Postgres) и фейки в тестах.

type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	LockByID(ctx context.Context, id int64) error
}

type AllowedStudentRepository interface {
	Create(ctx context.Context, student *model.AllowedStudent) error
	Upsert(ctx context.Context, student *model.AllowedStudent) error
	GetByPhone(ctx context.Context, phone string) (*model.AllowedStudent, error)
	List(ctx context.Context) ([]*model.AllowedStudent, error)
	Count(ctx context.Context) (int, error)
}

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	GetByID(ctx context.Context, id int64) (*model.Schedule, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*model.Schedule, error)
	ListWithCounts(ctx context.Context, userID int64) ([]*model.ScheduleWithCount, error)
	Count(ctx context.Context) (int, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*model.Reservation, error)
	Update(ctx context.Context, reservation *model.Reservation) error
	Delete(ctx context.Context, id int64) error
	CountOnsiteBySchedule(ctx context.Context, scheduleID int64) (int, error)
	CountOnsiteCreatedBetween(ctx context.Context, userID int64, from, to time.Time) (int, error)
	ExistsOnsite(ctx context.Context, userID, scheduleID int64) (bool, error)
	ListDetailsByUser(ctx context.Context, userID int64) ([]*model.ReservationDetails, error)
	ListDetails(ctx context.Context) ([]*model.ReservationDetails, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Notifier сообщает учителю о новых вопросах
type Notifier interface {
	ReservationCreated(ctx context.Context, reservation *model.Reservation, student *model.User)
}

// NopNotifier ничего не отправляет
type NopNotifier struct{}

func (NopNotifier) ReservationCreated(context.Context, *model.Reservation, *model.User) {}
