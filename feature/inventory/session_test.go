package inventory_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"brandstock/core/identity"
	"brandstock/core/stream"
	"brandstock/feature/inventory"
	"brandstock/feature/inventory/mocks"
	"brandstock/feature/inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeFeed captures subscriptions so tests can inject events directly.
type fakeFeed struct {
	mu   sync.Mutex
	subs map[string]*fakeSubscription
}

type fakeSubscription struct {
	filter  stream.Filter
	handler stream.Handler
	closed  atomic.Bool
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{subs: map[string]*fakeSubscription{}}
}

func (f *fakeFeed) Subscribe(_ context.Context, table string, filter stream.Filter, handler stream.Handler) (stream.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub := &fakeSubscription{filter: filter, handler: handler}
	f.subs[table] = sub
	return sub, nil
}

// publish routes an event through the table's filter like the real feed does.
func (f *fakeFeed) publish(table string, event stream.Event) {
	f.mu.Lock()
	sub := f.subs[table]
	f.mu.Unlock()
	if sub == nil || sub.closed.Load() {
		return
	}
	if sub.filter != nil && !sub.filter(event) {
		return
	}
	sub.handler(event)
}

func (s *fakeSubscription) Close() error {
	s.closed.Store(true)
	return nil
}

func TestStartSessionInitialLoadFailure(t *testing.T) {
	remote := new(mocks.Remote)
	remote.On("FetchItems", mock.Anything, "b1").Return(nil, errors.New("store down"))

	service := newTestService(remote, identity.Context{BrandID: "b1"})

	session, err := inventory.StartSession(context.Background(), service, newFakeFeed(), inventory.Config{}, zap.NewNop())

	assert.Error(t, err)
	assert.Nil(t, session)
}

func TestSessionPushInvalidationReloads(t *testing.T) {
	var fetches atomic.Int32
	remote := new(mocks.Remote)
	remote.On("FetchItems", mock.Anything, "b1").
		Run(func(mock.Arguments) { fetches.Add(1) }).
		Return([]models.Item{{ID: "i1", BrandID: "b2", IsShared: true}}, nil)
	remote.On("FetchItemSizes", mock.Anything, "i1").Return([]models.Size{}, nil)
	remote.On("CountItems", mock.Anything, "b1").Return(int64(1), nil)

	feed := newFakeFeed()
	service := newTestService(remote, identity.Context{BrandID: "b1"})

	cfg := inventory.Config{PollIntervalSeconds: 3600, DebounceMillis: 5}
	session, err := inventory.StartSession(context.Background(), service, feed, cfg, zap.NewNop())
	require.NoError(t, err)
	defer session.Close()

	assert.EqualValues(t, 1, fetches.Load(), "initial load only")
	require.Contains(t, feed.subs, "items")
	require.Contains(t, feed.subs, "item_sizes")

	// A shared-item change for a cached item must end in a reload.
	feed.publish("items", stream.Event{
		Type: stream.EventUpdate,
		New:  map[string]any{"id": "i1", "is_shared": true},
	})

	assert.Eventually(t, func() bool { return fetches.Load() == 2 },
		time.Second, 5*time.Millisecond)

	// An unshared item never passes the feed filter.
	feed.publish("items", stream.Event{
		Type: stream.EventUpdate,
		New:  map[string]any{"id": "i1", "is_shared": false},
	})
	time.Sleep(30 * time.Millisecond)
	assert.EqualValues(t, 2, fetches.Load())
}

func TestSessionCloseStopsSubscriptions(t *testing.T) {
	remote := new(mocks.Remote)
	remote.On("FetchItems", mock.Anything, "b1").Return([]models.Item{}, nil)
	remote.On("CountItems", mock.Anything, "b1").Return(int64(0), nil)

	feed := newFakeFeed()
	service := newTestService(remote, identity.Context{BrandID: "b1"})

	session, err := inventory.StartSession(context.Background(), service, feed, inventory.Config{}, zap.NewNop())
	require.NoError(t, err)

	session.Close()

	assert.True(t, feed.subs["items"].closed.Load())
	assert.True(t, feed.subs["item_sizes"].closed.Load())
}

func TestConfigDefaults(t *testing.T) {
	cfg := inventory.Config{}
	assert.Equal(t, 30*time.Second, cfg.PollInterval())
	assert.Equal(t, 120*time.Millisecond, cfg.DebounceWindow())

	cfg = inventory.Config{PollIntervalSeconds: 5, DebounceMillis: 250}
	assert.Equal(t, 5*time.Second, cfg.PollInterval())
	assert.Equal(t, 250*time.Millisecond, cfg.DebounceWindow())
}
