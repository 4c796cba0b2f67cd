package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/academy_booking/internal/model"
)

type ScheduleService struct {
	scheduleRepo ScheduleRepository
}

func NewScheduleService(scheduleRepo ScheduleRepository) *ScheduleService {
	return &ScheduleService{scheduleRepo: scheduleRepo}
}

// List возвращает слоты с текущей загрузкой. user может быть nil (аноним).
func (s *ScheduleService) List(ctx context.Context, user *model.User) ([]*model.ScheduleWithCount, error) {
	var userID int64
	if user != nil {
		userID = user.ID
	}

	schedules, err := s.scheduleRepo.ListWithCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}
