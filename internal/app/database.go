package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/academy_booking/internal/repository"
	"github.com/Freeeeeet/academy_booking/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// OpenPool подключается к Postgres и проверяет соединение
func OpenPool(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DB_DSN: %w", err)
	}
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("✅ Connected to database",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
	)

	return pool, nil
}

// Repositories все репозитории поверх одного пула
type Repositories struct {
	Tx              *base.TxManager
	Users           *repository.UserRepository
	AllowedStudents *repository.AllowedStudentRepository
	Schedules       *repository.ScheduleRepository
	Reservations    *repository.ReservationRepository
	Sessions        *repository.SessionRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Tx:              base.NewTxManager(pool),
		Users:           repository.NewUserRepository(pool),
		AllowedStudents: repository.NewAllowedStudentRepository(pool),
		Schedules:       repository.NewScheduleRepository(pool),
		Reservations:    repository.NewReservationRepository(pool),
		Sessions:        repository.NewSessionRepository(pool),
	}
}
