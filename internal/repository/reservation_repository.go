package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/Freeeeeet/academy_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reservationColumns = `r.id, r.user_id, r.schedule_id, r.type, r.content, r.photo_urls,
	r.teacher_feedback, r.teacher_photo_url, r.status, r.created_at`

type ReservationRepository struct {
	*base.Repository
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новую резервацию
func (r *ReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	query := `
		INSERT INTO reservations (user_id, schedule_id, type, content, photo_urls, teacher_feedback, teacher_photo_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	if reservation.PhotoURLs == nil {
		reservation.PhotoURLs = []string{}
	}
	// Время создания задаёт сервис: по нему считается дневной лимит
	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = time.Now()
	}

	err := r.QueryRow(
		ctx, query,
		reservation.UserID,
		reservation.ScheduleID,
		reservation.Type,
		reservation.Content,
		reservation.PhotoURLs,
		reservation.TeacherFeedback,
		reservation.TeacherPhotoURL,
		reservation.Status,
		reservation.CreatedAt,
	).Scan(&reservation.ID)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create reservation: %w", ErrDuplicate)
		}
		return fmt.Errorf("create reservation: %w", err)
	}

	return nil
}

// GetByID получает резервацию по ID
func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	return r.getByID(ctx, `SELECT `+reservationColumns+` FROM reservations r WHERE r.id = $1`, id)
}

// GetByIDForUpdate получает резервацию и блокирует её строку до конца транзакции
func (r *ReservationRepository) GetByIDForUpdate(ctx context.Context, id int64) (*model.Reservation, error) {
	return r.getByID(ctx, `SELECT `+reservationColumns+` FROM reservations r WHERE r.id = $1 FOR UPDATE`, id)
}

func (r *ReservationRepository) getByID(ctx context.Context, query string, id int64) (*model.Reservation, error) {
	reservation, err := scanReservation(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation by id: %w", err)
	}

	return reservation, nil
}

// Update сохраняет изменяемые поля резервации
func (r *ReservationRepository) Update(ctx context.Context, reservation *model.Reservation) error {
	query := `
		UPDATE reservations
		SET content = $1, photo_urls = $2, teacher_feedback = $3, teacher_photo_url = $4, status = $5
		WHERE id = $6
	`

	if reservation.PhotoURLs == nil {
		reservation.PhotoURLs = []string{}
	}

	affected, err := r.ExecAffected(
		ctx, query,
		reservation.Content,
		reservation.PhotoURLs,
		reservation.TeacherFeedback,
		reservation.TeacherPhotoURL,
		reservation.Status,
		reservation.ID,
	)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("update reservation: %w", ErrNotFound)
	}

	return nil
}

// Delete удаляет резервацию
func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("delete reservation: %w", ErrNotFound)
	}

	return nil
}

// CountOnsiteBySchedule считает очные резервации слота. Онлайн вопросы место не занимают.
func (r *ReservationRepository) CountOnsiteBySchedule(ctx context.Context, scheduleID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE schedule_id = $1 AND type = 'onsite'
	`

	var count int
	if err := r.QueryRow(ctx, query, scheduleID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count onsite reservations by schedule: %w", err)
	}
	return count, nil
}

// CountOnsiteCreatedBetween считает очные резервации пользователя, созданные в [from, to]
func (r *ReservationRepository) CountOnsiteCreatedBetween(ctx context.Context, userID int64, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE user_id = $1
		  AND type = 'onsite'
		  AND created_at >= $2
		  AND created_at <= $3
	`

	var count int
	if err := r.QueryRow(ctx, query, userID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("count daily onsite reservations: %w", err)
	}
	return count, nil
}

// ExistsOnsite проверяет есть ли у пользователя очная резервация на слот
func (r *ReservationRepository) ExistsOnsite(ctx context.Context, userID, scheduleID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE user_id = $1 AND schedule_id = $2 AND type = 'onsite'
		)
	`

	var exists bool
	if err := r.QueryRow(ctx, query, userID, scheduleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check onsite reservation exists: %w", err)
	}
	return exists, nil
}

// ListDetailsByUser возвращает резервации пользователя, новые первыми
func (r *ReservationRepository) ListDetailsByUser(ctx context.Context, userID int64) ([]*model.ReservationDetails, error) {
	return r.listDetails(ctx, `WHERE r.user_id = $1`, userID)
}

// ListDetails возвращает все резервации для учителя, новые первыми
func (r *ReservationRepository) ListDetails(ctx context.Context) ([]*model.ReservationDetails, error) {
	return r.listDetails(ctx, ``)
}

func (r *ReservationRepository) listDetails(ctx context.Context, where string, args ...any) ([]*model.ReservationDetails, error) {
	// LEFT JOIN: у онлайн вопросов нет слота
	query := `
		SELECT ` + reservationColumns + `,
		       u.name, COALESCE(u.seat_number, 0), s.day_of_week, s.period_number
		FROM reservations r
		JOIN users u ON u.id = r.user_id
		LEFT JOIN schedules s ON s.id = r.schedule_id
		` + where + `
		ORDER BY r.created_at DESC, r.id DESC
	`

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservation details: %w", err)
	}
	defer rows.Close()

	list := []*model.ReservationDetails{}
	for rows.Next() {
		var (
			d      model.ReservationDetails
			day    *string
			period *int
		)
		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.ScheduleID,
			&d.Type,
			&d.Content,
			&d.PhotoURLs,
			&d.TeacherFeedback,
			&d.TeacherPhotoURL,
			&d.Status,
			&d.CreatedAt,
			&d.StudentName,
			&d.SeatNumber,
			&day,
			&period,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reservation details: %w", err)
		}
		fillScheduleLabels(&d, day, period)
		list = append(list, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservation details: %w", err)
	}

	return list, nil
}

// fillScheduleLabels подставляет подписи для резерваций без слота
func fillScheduleLabels(d *model.ReservationDetails, day *string, period *int) {
	switch {
	case day != nil:
		d.Day = *day
	case d.Type == model.ReservationTypeOnsite:
		d.Day = model.DayLabelOnsite
	default:
		d.Day = model.DayLabelOnline
	}

	if period != nil {
		d.Period = *period
	}
}

func scanReservation(row pgx.Row) (*model.Reservation, error) {
	var reservation model.Reservation
	err := row.Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.ScheduleID,
		&reservation.Type,
		&reservation.Content,
		&reservation.PhotoURLs,
		&reservation.TeacherFeedback,
		&reservation.TeacherPhotoURL,
		&reservation.Status,
		&reservation.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}
