package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgeExpiredSessions(context.Context) (int64, error) {
	p.calls.Add(1)
	return 1, p.err
}

func TestScheduler_RunsImmediatelyAndPeriodically(t *testing.T) {
	purger := &countingPurger{}
	s := NewScheduler(purger, 10*time.Millisecond, zap.NewNop())

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return purger.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	s.Stop()
	calls := purger.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, purger.calls.Load())

	// Повторный Stop безопасен
	s.Stop()
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	purger := &countingPurger{err: errors.New("db down")}
	s := NewScheduler(purger, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.Eventually(t, func() bool { return purger.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancel")
	}
}
