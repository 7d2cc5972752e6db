package inventory

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ReloadScheduler turns invalidation signals into debounced full reloads.
//
// The poll detector and both push feeds post signals here instead of calling
// the reload path directly; signals arriving within the debounce window are
// coalesced into one reload, and singleflight keeps concurrent reloads from
// stacking. A signal is never dropped outright: at most it merges with one
// already pending, so every relevant change still ends in a reload.
type ReloadScheduler struct {
	window  time.Duration
	reload  func(context.Context) error
	logger  *zap.Logger
	signals chan struct{}
	done    chan struct{}
	sf      singleflight.Group
}

// NewReloadScheduler creates a scheduler around the given reload function.
func NewReloadScheduler(window time.Duration, reload func(context.Context) error, logger *zap.Logger) *ReloadScheduler {
	if window <= 0 {
		window = 120 * time.Millisecond
	}
	return &ReloadScheduler{
		window:  window,
		reload:  reload,
		logger:  logger,
		signals: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Invalidate posts a reload signal. Non-blocking; if a signal is already
// pending the two coalesce.
func (s *ReloadScheduler) Invalidate() {
	select {
	case s.signals <- struct{}{}:
	default:
	}
}

// Run drains signals until the context is cancelled. Call from a goroutine.
func (s *ReloadScheduler) Run(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.signals:
		}

		// Debounce: let a burst of signals settle into one reload.
		timer := time.NewTimer(s.window)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := s.execute(ctx); err != nil {
			s.logger.Warn("Scheduled reload failed", zap.Error(err))
		}
	}
}

// execute runs one reload through singleflight so an external caller hitting
// the reload path directly shares the same flight.
func (s *ReloadScheduler) execute(ctx context.Context) error {
	_, err, _ := s.sf.Do("reload", func() (any, error) {
		return nil, s.reload(ctx)
	})
	return err
}

// Wait blocks until Run has exited. Used during session teardown.
func (s *ReloadScheduler) Wait() {
	<-s.done
}
