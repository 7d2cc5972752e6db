package stream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Handler receives change events. Handlers run on the subscription's own
// goroutine and must not block for long.
type Handler func(Event)

// Feed is a source of row-change events, one channel per table.
type Feed interface {
	// Subscribe delivers events for the given table to the handler.
	// A nil filter passes everything. The returned subscription must be
	// closed when the consuming context goes away.
	Subscribe(ctx context.Context, table string, filter Filter, handler Handler) (Subscription, error)
}

// Subscription is a handle to an active table subscription.
type Subscription interface {
	// Close tears the subscription down; the handler is never called again
	// after Close returns.
	Close() error
}

// RedisFeed implements Feed over Redis pub/sub. The remote store publishes
// one JSON event per row change on "<prefix>.<table>".
type RedisFeed struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisFeed connects a change feed to Redis.
func NewRedisFeed(cfg Config, logger *zap.Logger) (*RedisFeed, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisFeed{client: client, prefix: cfg.ChannelPrefix, logger: logger}, nil
}

// Subscribe starts a goroutine draining the table's channel. Malformed
// payloads are logged and skipped; they never reach the handler.
func (f *RedisFeed) Subscribe(ctx context.Context, table string, filter Filter, handler Handler) (Subscription, error) {
	channel := f.prefix + "." + table
	pubsub := f.client.Subscribe(ctx, channel)

	// Force the subscription onto the wire before returning, so callers
	// don't race their first publish against setup.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	sub := &redisSubscription{pubsub: pubsub}
	go func() {
		for msg := range pubsub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				f.logger.Warn("Dropping malformed change event",
					zap.String("channel", channel),
					zap.Error(err))
				continue
			}
			if filter != nil && !filter(event) {
				continue
			}
			handler(event)
		}
	}()
	return sub, nil
}

// Close shuts down the underlying Redis connection.
func (f *RedisFeed) Close() error {
	return f.client.Close()
}

type redisSubscription struct {
	pubsub *redis.PubSub
}

func (s *redisSubscription) Close() error {
	return s.pubsub.Close()
}
