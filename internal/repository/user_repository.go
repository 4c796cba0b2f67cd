package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/Freeeeeet/academy_booking/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, phone_number, password_hash, name, seat_number, role, created_at`

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (phone_number, password_hash, name, seat_number, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		user.PhoneNumber,
		user.PasswordHash,
		user.Name,
		user.SeatNumber,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create user: %w", ErrDuplicate)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByPhone получает пользователя по нормализованному номеру телефона
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`

	user, err := scanUser(r.QueryRow(ctx, query, phone))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by phone: %w", err)
	}

	return user, nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

// LockByID блокирует строку пользователя до конца текущей транзакции.
// Сериализует проверки дневного лимита для одного студента.
func (r *UserRepository) LockByID(ctx context.Context, id int64) error {
	var lockedID int64
	err := r.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
	if err != nil {
		if base.IsNotFound(err) {
			return fmt.Errorf("lock user: %w", ErrNotFound)
		}
		return fmt.Errorf("lock user: %w", err)
	}
	return nil
}

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.Name,
		&user.SeatNumber,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
