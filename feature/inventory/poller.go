package inventory

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Poller is the timer-driven change detector. It fetches only the remote row
// count for the brand; a count change means rows were added or removed and
// the cache needs a reload. In-place edits on existing rows do not move the
// count and are invisible here; the push feeds cover those.
type Poller struct {
	interval   time.Duration
	count      func(context.Context) (int64, error)
	invalidate func()
	logger     *zap.Logger

	baseline    int64
	established bool
}

// NewPoller creates a poller around a count probe. invalidate is called once
// per detected change.
func NewPoller(interval time.Duration, count func(context.Context) (int64, error), invalidate func(), logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		interval:   interval,
		count:      count,
		invalidate: invalidate,
		logger:     logger,
	}
}

// Run ticks until the context is cancelled. Call from a goroutine.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick performs one observation. The first successful observation only
// establishes the baseline; later ones compare against it.
func (p *Poller) tick(ctx context.Context) {
	n, err := p.count(ctx)
	if err != nil {
		p.logger.Warn("Item count probe failed", zap.Error(err))
		return
	}
	if !p.established {
		p.baseline = n
		p.established = true
		return
	}
	if n != p.baseline {
		p.logger.Debug("Item count changed",
			zap.Int64("baseline", p.baseline),
			zap.Int64("observed", n))
		p.baseline = n
		p.invalidate()
	}
}
