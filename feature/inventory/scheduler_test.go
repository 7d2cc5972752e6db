package inventory_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"brandstock/feature/inventory"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSchedulerCoalescesBurst(t *testing.T) {
	var reloads atomic.Int32
	s := inventory.NewReloadScheduler(20*time.Millisecond,
		func(context.Context) error {
			reloads.Add(1)
			return nil
		},
		zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)

	// A burst of signals inside one debounce window settles into one reload.
	for i := 0; i < 5; i++ {
		s.Invalidate()
	}

	assert.Eventually(t, func() bool { return reloads.Load() == 1 },
		time.Second, 5*time.Millisecond)

	// No trailing extra reload sneaks in after the burst.
	time.Sleep(60 * time.Millisecond)
	assert.EqualValues(t, 1, reloads.Load())

	// A fresh signal after the window starts a new cycle.
	s.Invalidate()
	assert.Eventually(t, func() bool { return reloads.Load() == 2 },
		time.Second, 5*time.Millisecond)

	cancel()
	s.Wait()
}

func TestSchedulerWaitReturnsAfterCancel(t *testing.T) {
	s := inventory.NewReloadScheduler(10*time.Millisecond,
		func(context.Context) error { return nil },
		zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not shut down")
	}
}

func TestSchedulerSurvivesReloadFailure(t *testing.T) {
	var reloads atomic.Int32
	s := inventory.NewReloadScheduler(5*time.Millisecond,
		func(context.Context) error {
			reloads.Add(1)
			return assert.AnError
		},
		zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	s.Invalidate()
	assert.Eventually(t, func() bool { return reloads.Load() == 1 },
		time.Second, 5*time.Millisecond)

	// A failed reload must not wedge the loop.
	s.Invalidate()
	assert.Eventually(t, func() bool { return reloads.Load() == 2 },
		time.Second, 5*time.Millisecond)
}
