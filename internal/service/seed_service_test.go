package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newSeedService(store *memStore, cfg SeedConfig) *SeedService {
	svc := NewSeedService(memUsers{store}, memAllowed{store}, memSchedules{store}, cfg, zap.NewNop())
	svc.passwordCost = bcrypt.MinCost
	return svc
}

func TestEnsureSeedData_Idempotent(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	svc := newSeedService(store, SeedConfig{TeacherPhone: "7777", TeacherPassword: "7777", TeacherName: "선생님"})

	require.NoError(t, svc.EnsureSeedData(ctx))
	require.NoError(t, svc.EnsureSeedData(ctx))

	roster, err := memAllowed{store}.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, roster)

	schedules, err := memSchedules{store}.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15, schedules)

	assert.Equal(t, 1, memUsers{store}.count())
	teacher, err := memUsers{store}.GetByPhone(ctx, "7777")
	require.NoError(t, err)
	require.NotNil(t, teacher)
	assert.Equal(t, model.RoleTeacher, teacher.Role)
	assert.True(t, CheckPassword(teacher.PasswordHash, "7777"))

	slots, err := memSchedules{store}.ListWithCounts(ctx, 0)
	require.NoError(t, err)
	for _, s := range slots {
		assert.Equal(t, model.DefaultScheduleCapacity, s.Capacity)
	}
}

func TestEnsureSeedData_KeepsExistingData(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	require.NoError(t, memAllowed{store}.Create(ctx, &model.AllowedStudent{Name: "only", PhoneNumber: "999", SeatNumber: 2}))
	require.NoError(t, memSchedules{store}.Create(ctx, &model.Schedule{DayOfWeek: "토요일", PeriodNumber: 1, Capacity: 2}))

	svc := newSeedService(store, SeedConfig{})
	require.NoError(t, svc.EnsureSeedData(ctx))

	roster, err := memAllowed{store}.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, roster)

	schedules, err := memSchedules{store}.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, schedules)

	// Без настроек учитель не создаётся
	assert.Zero(t, memUsers{store}.count())
}
