package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/Freeeeeet/academy_booking/internal/repository"
	"go.uber.org/zap"
)

// DailyOnsiteLimit сколько очных вопросов студент может создать за календарный день
const DailyOnsiteLimit = 3

// CreateReservationInput данные нового вопроса
type CreateReservationInput struct {
	ScheduleID *int64
	Type       model.ReservationType
	Content    *string
	PhotoURLs  []string
}

type ReservationService struct {
	tx              TxManager
	userRepo        UserRepository
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	notifier        Notifier
	location        *time.Location
	now             func() time.Time
	logger          *zap.Logger
}

func NewReservationService(
	tx TxManager,
	userRepo UserRepository,
	scheduleRepo ScheduleRepository,
	reservationRepo ReservationRepository,
	notifier Notifier,
	location *time.Location,
	logger *zap.Logger,
) *ReservationService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if location == nil {
		location = time.Local
	}
	return &ReservationService{
		tx:              tx,
		userRepo:        userRepo,
		scheduleRepo:    scheduleRepo,
		reservationRepo: reservationRepo,
		notifier:        notifier,
		location:        location,
		now:             time.Now,
		logger:          logger,
	}
}

// Create проверяет допуск и создаёт резервацию.
// Очные проверки (лимит, вместимость, дубликат) и вставка идут в одной транзакции
// под блокировками строк пользователя и слота.
func (s *ReservationService) Create(ctx context.Context, student *model.User, in CreateReservationInput) (*model.Reservation, error) {
	reservation := &model.Reservation{
		UserID:    student.ID,
		Type:      in.Type,
		Content:   in.Content,
		PhotoURLs: slices.Clone(in.PhotoURLs),
		Status:    model.ReservationStatusPending,
		CreatedAt: s.now(),
	}
	if reservation.PhotoURLs == nil {
		reservation.PhotoURLs = []string{}
	}

	var err error
	switch in.Type {
	case model.ReservationTypeOnline:
		// Онлайн вопросы не ограничены ни вместимостью, ни лимитом
		if in.ScheduleID != nil {
			err = ErrScheduleNotAllowed
			break
		}
		err = s.reservationRepo.Create(ctx, reservation)
	case model.ReservationTypeOnsite:
		err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
			return s.admitOnsite(ctx, reservation, in.ScheduleID)
		})
	default:
		err = ErrInvalidReservationType
	}

	observeAdmission(in.Type, err)

	if err != nil {
		if KindOf(err) != KindInternal {
			s.logger.Info("Reservation rejected",
				zap.Int64("user_id", student.ID),
				zap.String("type", string(in.Type)),
				zap.Error(err),
			)
			return nil, err
		}
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.logger.Info("Reservation created",
		zap.Int64("reservation_id", reservation.ID),
		zap.Int64("user_id", student.ID),
		zap.String("type", string(reservation.Type)),
	)

	s.notifier.ReservationCreated(ctx, reservation, student)

	return reservation, nil
}

// admitOnsite порядок проверок: лимит, слот, вместимость, дубликат
func (s *ReservationService) admitOnsite(ctx context.Context, reservation *model.Reservation, scheduleID *int64) error {
	if scheduleID == nil {
		return ErrScheduleRequired
	}

	// Блокировка пользователя сериализует проверки дневного лимита
	if err := s.userRepo.LockByID(ctx, reservation.UserID); err != nil {
		return fmt.Errorf("lock user: %w", err)
	}

	from, to := s.dayBounds(reservation.CreatedAt)
	daily, err := s.reservationRepo.CountOnsiteCreatedBetween(ctx, reservation.UserID, from, to)
	if err != nil {
		return fmt.Errorf("count daily onsite: %w", err)
	}
	if daily >= DailyOnsiteLimit {
		return ErrDailyLimitReached
	}

	schedule, err := s.scheduleRepo.GetByIDForUpdate(ctx, *scheduleID)
	if err != nil {
		return fmt.Errorf("get schedule: %w", err)
	}
	if schedule == nil {
		return ErrScheduleNotFound
	}

	count, err := s.reservationRepo.CountOnsiteBySchedule(ctx, schedule.ID)
	if err != nil {
		return fmt.Errorf("count schedule reservations: %w", err)
	}
	if count >= schedule.Capacity {
		return ErrSlotFull
	}

	reserved, err := s.reservationRepo.ExistsOnsite(ctx, reservation.UserID, schedule.ID)
	if err != nil {
		return fmt.Errorf("check duplicate: %w", err)
	}
	if reserved {
		return ErrDuplicateReservation
	}

	reservation.ScheduleID = &schedule.ID
	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrDuplicateReservation
		}
		return err
	}

	return nil
}

// dayBounds начало и конец календарного дня t в часовом поясе академии, включительно
func (s *ReservationService) dayBounds(t time.Time) (time.Time, time.Time) {
	t = t.In(s.location)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.location)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}

// Update меняет резервацию согласно роли автора
func (s *ReservationService) Update(ctx context.Context, actor *model.User, id int64, upd ReservationUpdate) (*model.Reservation, error) {
	var updated *model.Reservation

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		reservation, err := s.reservationRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("get reservation: %w", err)
		}
		if reservation == nil {
			return ErrReservationNotFound
		}

		if err := authorize(actor, reservation); err != nil {
			return err
		}

		from := reservation.Status

		switch u := upd.(type) {
		case TeacherUpdate:
			if !actor.IsTeacher() {
				return ErrTeacherFieldsOnly
			}
			if err := u.validate(); err != nil {
				return err
			}
			if err := u.apply(reservation); err != nil {
				return err
			}
		case StudentUpdate:
			if actor.ID != reservation.UserID {
				return ErrForbidden
			}
			if err := u.validate(); err != nil {
				return err
			}
			if err := u.apply(reservation); err != nil {
				return err
			}
		default:
			return ErrEmptyUpdate
		}

		if err := s.reservationRepo.Update(ctx, reservation); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("save reservation: %w", err)
		}

		if from != reservation.Status {
			statusTransitions.WithLabelValues(string(from), string(reservation.Status)).Inc()
		}

		updated = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reservation updated",
		zap.Int64("reservation_id", id),
		zap.Int64("actor_id", actor.ID),
		zap.String("status", string(updated.Status)),
	)

	return updated, nil
}

// Delete удаляет резервацию. Разрешено владельцу и учителю при любом статусе.
func (s *ReservationService) Delete(ctx context.Context, actor *model.User, id int64) error {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get reservation: %w", err)
	}
	if reservation == nil {
		return ErrReservationNotFound
	}

	if err := authorize(actor, reservation); err != nil {
		return err
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("delete reservation: %w", err)
	}

	s.logger.Info("Reservation deleted",
		zap.Int64("reservation_id", id),
		zap.Int64("actor_id", actor.ID),
	)

	return nil
}

// ListMine возвращает резервации пользователя, новые первыми
func (s *ReservationService) ListMine(ctx context.Context, user *model.User) ([]*model.ReservationDetails, error) {
	return s.reservationRepo.ListDetailsByUser(ctx, user.ID)
}

// ListAll возвращает все резервации для учителя, новые первыми
func (s *ReservationService) ListAll(ctx context.Context, actor *model.User) ([]*model.ReservationDetails, error) {
	if !actor.IsTeacher() {
		return nil, ErrTeacherOnly
	}
	return s.reservationRepo.ListDetails(ctx)
}

// authorize учитель может всё, студент только свои резервации
func authorize(actor *model.User, reservation *model.Reservation) error {
	if actor.IsTeacher() || actor.ID == reservation.UserID {
		return nil
	}
	return ErrForbidden
}
