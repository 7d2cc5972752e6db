package inventory

import (
	"context"
	"fmt"
	"time"

	"brandstock/core/stream"

	"go.uber.org/zap"
)

// Change feed tables the session listens on.
const (
	itemsTable = "items"
	sizesTable = "item_sizes"
)

// Session scopes the poller, the two push subscriptions and the reload
// scheduler to one brand context. When the brand changes or the app shuts
// down the session is closed and everything it started stops; no callback
// ever runs against a superseded cache.
type Session struct {
	cancel    context.CancelFunc
	scheduler *ReloadScheduler
	subs      []stream.Subscription
}

// StartSession performs the initial load and brings up all three
// invalidation sources. The caller owns the returned session and must close
// it.
func StartSession(ctx context.Context, svc *Service, feed stream.Feed, cfg Config, logger *zap.Logger) (*Session, error) {
	sessionCtx, cancel := context.WithCancel(ctx)

	if err := svc.Reload(sessionCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("initial inventory load failed: %w", err)
	}

	scheduler := NewReloadScheduler(cfg.DebounceWindow(), svc.Reload, logger)
	go scheduler.Run(sessionCtx)

	session := &Session{cancel: cancel, scheduler: scheduler}

	poller := NewPoller(cfg.PollInterval(), func(ctx context.Context) (int64, error) {
		return svc.remote.CountItems(ctx, svc.BrandID())
	}, scheduler.Invalidate, logger)
	go poller.Run(sessionCtx)

	merger := NewMerger(sessionCtx, svc.Cache(), svc.remote, scheduler.Invalidate, logger)

	itemSub, err := feed.Subscribe(sessionCtx, itemsTable, stream.FieldTrue("is_shared"), merger.HandleItemEvent)
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to subscribe to item changes: %w", err)
	}
	session.subs = append(session.subs, itemSub)

	sizeSub, err := feed.Subscribe(sessionCtx, sizesTable, nil, merger.HandleSizeEvent)
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to subscribe to size changes: %w", err)
	}
	session.subs = append(session.subs, sizeSub)

	logger.Info("Inventory session started",
		zap.String("brand_id", svc.BrandID()),
		zap.Duration("poll_interval", cfg.PollInterval()),
		zap.Duration("debounce", cfg.DebounceWindow()))
	return session, nil
}

// Close tears the session down deterministically: subscriptions first so no
// new signals arrive, then the scheduler and poller via context.
func (s *Session) Close() {
	for _, sub := range s.subs {
		_ = sub.Close()
	}
	s.cancel()
	if s.scheduler != nil {
		s.scheduler.Wait()
	}
}

// Config holds the sync engine's tuning knobs.
type Config struct {
	// PollIntervalSeconds is how often the row-count probe runs.
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds" default:"30"`
	// DebounceMillis is the window within which invalidation signals
	// coalesce into one reload.
	DebounceMillis int `mapstructure:"debounce_millis" default:"120"`
}

// PollInterval returns the poll period with the default applied.
func (c Config) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// DebounceWindow returns the coalescing window with the default applied.
func (c Config) DebounceWindow() time.Duration {
	if c.DebounceMillis <= 0 {
		return 120 * time.Millisecond
	}
	return time.Duration(c.DebounceMillis) * time.Millisecond
}
