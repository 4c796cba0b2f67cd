package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/Freeeeeet/academy_booking/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AllowedStudentRepository struct {
	*base.Repository
}

func NewAllowedStudentRepository(pool *pgxpool.Pool) *AllowedStudentRepository {
	return &AllowedStudentRepository{Repository: base.NewRepository(pool)}
}

// Create добавляет номер в белый список
func (r *AllowedStudentRepository) Create(ctx context.Context, student *model.AllowedStudent) error {
	query := `
		INSERT INTO allowed_students (name, phone_number, seat_number)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.QueryRow(ctx, query, student.Name, student.PhoneNumber, student.SeatNumber).Scan(&student.ID)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create allowed student: %w", ErrDuplicate)
		}
		return fmt.Errorf("create allowed student: %w", err)
	}

	return nil
}

// Upsert добавляет номер или обновляет имя и место для существующего
func (r *AllowedStudentRepository) Upsert(ctx context.Context, student *model.AllowedStudent) error {
	query := `
		INSERT INTO allowed_students (name, phone_number, seat_number)
		VALUES ($1, $2, $3)
		ON CONFLICT (phone_number) DO UPDATE
		SET name = EXCLUDED.name, seat_number = EXCLUDED.seat_number
		RETURNING id
	`

	err := r.QueryRow(ctx, query, student.Name, student.PhoneNumber, student.SeatNumber).Scan(&student.ID)
	if err != nil {
		return fmt.Errorf("upsert allowed student: %w", err)
	}

	return nil
}

// GetByPhone ищет запись белого списка по номеру
func (r *AllowedStudentRepository) GetByPhone(ctx context.Context, phone string) (*model.AllowedStudent, error) {
	query := `
		SELECT id, name, phone_number, seat_number
		FROM allowed_students
		WHERE phone_number = $1
	`

	var student model.AllowedStudent
	err := r.QueryRow(ctx, query, phone).Scan(
		&student.ID,
		&student.Name,
		&student.PhoneNumber,
		&student.SeatNumber,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get allowed student: %w", err)
	}

	return &student, nil
}

// List возвращает белый список, отсортированный по номеру места
func (r *AllowedStudentRepository) List(ctx context.Context) ([]*model.AllowedStudent, error) {
	query := `
		SELECT id, name, phone_number, seat_number
		FROM allowed_students
		ORDER BY seat_number, id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list allowed students: %w", err)
	}
	defer rows.Close()

	students := []*model.AllowedStudent{}
	for rows.Next() {
		var student model.AllowedStudent
		if err := rows.Scan(&student.ID, &student.Name, &student.PhoneNumber, &student.SeatNumber); err != nil {
			return nil, fmt.Errorf("scan allowed student: %w", err)
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate allowed students: %w", err)
	}

	return students, nil
}

// Count возвращает размер белого списка
func (r *AllowedStudentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.QueryRow(ctx, `SELECT COUNT(*) FROM allowed_students`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count allowed students: %w", err)
	}
	return count, nil
}
