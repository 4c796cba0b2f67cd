package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/Freeeeeet/academy_booking/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScheduleRepository struct {
	*base.Repository
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новый слот расписания
func (r *ScheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	query := `
		INSERT INTO schedules (day_of_week, period_number, capacity)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.QueryRow(ctx, query, schedule.DayOfWeek, schedule.PeriodNumber, schedule.Capacity).Scan(&schedule.ID)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create schedule: %w", ErrDuplicate)
		}
		return fmt.Errorf("create schedule: %w", err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*model.Schedule, error) {
	return r.getByID(ctx, `SELECT id, day_of_week, period_number, capacity FROM schedules WHERE id = $1`, id)
}

// GetByIDForUpdate получает слот и блокирует его строку до конца транзакции.
// Пока блокировка держится, никто другой не может занять место в этом слоте.
func (r *ScheduleRepository) GetByIDForUpdate(ctx context.Context, id int64) (*model.Schedule, error) {
	return r.getByID(ctx, `SELECT id, day_of_week, period_number, capacity FROM schedules WHERE id = $1 FOR UPDATE`, id)
}

func (r *ScheduleRepository) getByID(ctx context.Context, query string, id int64) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.QueryRow(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.DayOfWeek,
		&schedule.PeriodNumber,
		&schedule.Capacity,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule by id: %w", err)
	}

	return &schedule, nil
}

// List возвращает все слоты
func (r *ScheduleRepository) List(ctx context.Context) ([]*model.Schedule, error) {
	query := `
		SELECT id, day_of_week, period_number, capacity
		FROM schedules
		ORDER BY id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	schedules := []*model.Schedule{}
	for rows.Next() {
		var schedule model.Schedule
		if err := rows.Scan(&schedule.ID, &schedule.DayOfWeek, &schedule.PeriodNumber, &schedule.Capacity); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, &schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedules: %w", err)
	}

	return schedules, nil
}

// ListWithCounts возвращает слоты с числом очных резерваций и отметкой о брони пользователя.
// userID = 0 означает анонимного пользователя.
func (r *ScheduleRepository) ListWithCounts(ctx context.Context, userID int64) ([]*model.ScheduleWithCount, error) {
	query := `
		SELECT s.id, s.day_of_week, s.period_number, s.capacity,
		       (SELECT COUNT(*) FROM reservations r
		        WHERE r.schedule_id = s.id AND r.type = 'onsite') AS current_count,
		       EXISTS(SELECT 1 FROM reservations r
		              WHERE r.schedule_id = s.id AND r.type = 'onsite' AND r.user_id = $1) AS reserved
		FROM schedules s
		ORDER BY s.id
	`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list schedules with counts: %w", err)
	}
	defer rows.Close()

	schedules := []*model.ScheduleWithCount{}
	for rows.Next() {
		var s model.ScheduleWithCount
		err := rows.Scan(
			&s.ID,
			&s.DayOfWeek,
			&s.PeriodNumber,
			&s.Capacity,
			&s.CurrentCount,
			&s.IsReservedByUser,
		)
		if err != nil {
			return nil, fmt.Errorf("scan schedule with count: %w", err)
		}
		schedules = append(schedules, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedules with counts: %w", err)
	}

	return schedules, nil
}

// Count возвращает количество слотов
func (r *ScheduleRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.QueryRow(ctx, `SELECT COUNT(*) FROM schedules`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count schedules: %w", err)
	}
	return count, nil
}
