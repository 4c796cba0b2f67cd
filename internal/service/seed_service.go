package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/Freeeeeet/academy_booking/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SeedConfig данные учётной записи учителя для первого запуска
type SeedConfig struct {
	TeacherPhone    string
	TeacherPassword string
	TeacherName     string
}

var (
	seedRoster = []model.AllowedStudent{
		{Name: "홍길동", PhoneNumber: "1234567890", SeatNumber: 1},
		{Name: "김철수", PhoneNumber: "0987654321", SeatNumber: 24},
		{Name: "이영희", PhoneNumber: "1112223333", SeatNumber: 5},
	}

	seedDays    = []string{"월요일", "화요일", "수요일", "목요일", "금요일"}
	seedPeriods = 3
)

type SeedService struct {
	userRepo     UserRepository
	allowedRepo  AllowedStudentRepository
	scheduleRepo ScheduleRepository
	cfg          SeedConfig
	passwordCost int
	logger       *zap.Logger
}

func NewSeedService(
	userRepo UserRepository,
	allowedRepo AllowedStudentRepository,
	scheduleRepo ScheduleRepository,
	cfg SeedConfig,
	logger *zap.Logger,
) *SeedService {
	return &SeedService{
		userRepo:     userRepo,
		allowedRepo:  allowedRepo,
		scheduleRepo: scheduleRepo,
		cfg:          cfg,
		passwordCost: bcrypt.DefaultCost,
		logger:       logger,
	}
}

// EnsureSeedData заполняет пустые таблицы справочными данными. Повторный вызов ничего не меняет.
func (s *SeedService) EnsureSeedData(ctx context.Context) error {
	if err := s.seedRoster(ctx); err != nil {
		return err
	}
	if err := s.seedSchedules(ctx); err != nil {
		return err
	}
	return s.seedTeacher(ctx)
}

func (s *SeedService) seedRoster(ctx context.Context) error {
	count, err := s.allowedRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed roster: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, entry := range seedRoster {
		student := entry
		if err := s.allowedRepo.Create(ctx, &student); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("seed roster: %w", err)
		}
	}

	s.logger.Info("Seeded roster", zap.Int("count", len(seedRoster)))
	return nil
}

func (s *SeedService) seedSchedules(ctx context.Context) error {
	count, err := s.scheduleRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed schedules: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, day := range seedDays {
		for period := 1; period <= seedPeriods; period++ {
			schedule := &model.Schedule{
				DayOfWeek:    day,
				PeriodNumber: period,
				Capacity:     model.DefaultScheduleCapacity,
			}
			if err := s.scheduleRepo.Create(ctx, schedule); err != nil && !errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("seed schedules: %w", err)
			}
		}
	}

	s.logger.Info("Seeded schedules", zap.Int("count", len(seedDays)*seedPeriods))
	return nil
}

func (s *SeedService) seedTeacher(ctx context.Context) error {
	phone := NormalizePhone(s.cfg.TeacherPhone)
	if phone == "" || s.cfg.TeacherPassword == "" {
		s.logger.Warn("Teacher account not configured, skipping")
		return nil
	}

	existing, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return fmt.Errorf("seed teacher: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := HashPassword(s.cfg.TeacherPassword, s.passwordCost)
	if err != nil {
		return fmt.Errorf("seed teacher: %w", err)
	}

	teacher := &model.User{
		PhoneNumber:  phone,
		PasswordHash: hash,
		Name:         s.cfg.TeacherName,
		Role:         model.RoleTeacher,
	}
	if err := s.userRepo.Create(ctx, teacher); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("seed teacher: %w", err)
	}

	s.logger.Info("Seeded teacher account", zap.Int64("user_id", teacher.ID))
	return nil
}
