package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/Freeeeeet/academy_booking/internal/repository"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RosterService управляет белым списком студентов
type RosterService struct {
	tx          TxManager
	allowedRepo AllowedStudentRepository
	validate    *validator.Validate
	logger      *zap.Logger
}

func NewRosterService(tx TxManager, allowedRepo AllowedStudentRepository, logger *zap.Logger) *RosterService {
	return &RosterService{
		tx:          tx,
		allowedRepo: allowedRepo,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
	}
}

// Add добавляет студента в белый список
func (s *RosterService) Add(ctx context.Context, student model.AllowedStudent) (*model.AllowedStudent, error) {
	if err := s.prepare(&student); err != nil {
		return nil, err
	}

	if err := s.allowedRepo.Create(ctx, &student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAllowedStudentExists
		}
		return nil, fmt.Errorf("add allowed student: %w", err)
	}

	s.logger.Info("Student added to roster",
		zap.Int64("allowed_student_id", student.ID),
		zap.String("name", student.Name),
	)

	return &student, nil
}

// Import добавляет или обновляет записи одной транзакцией
func (s *RosterService) Import(ctx context.Context, students []model.AllowedStudent) (int, error) {
	for i := range students {
		if err := s.prepare(&students[i]); err != nil {
			return 0, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for i := range students {
			if err := s.allowedRepo.Upsert(ctx, &students[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("import roster: %w", err)
	}

	s.logger.Info("Roster imported", zap.Int("count", len(students)))

	return len(students), nil
}

// List возвращает белый список
func (s *RosterService) List(ctx context.Context) ([]*model.AllowedStudent, error) {
	return s.allowedRepo.List(ctx)
}

func (s *RosterService) prepare(student *model.AllowedStudent) error {
	student.Name = strings.TrimSpace(student.Name)
	student.PhoneNumber = NormalizePhone(student.PhoneNumber)

	if err := s.validate.Struct(student); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Validation("field %s failed on %s", verrs[0].Field(), verrs[0].Tag())
		}
		return Validation("invalid roster entry")
	}
	return nil
}
