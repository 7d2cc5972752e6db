package inventory

import (
	"context"

	"brandstock/core/stream"

	"go.uber.org/zap"
)

// Merger consumes the push change feeds and decides which events concern the
// local cache. Qualifying events post an invalidation signal; the scheduler
// turns those into reloads.
type Merger struct {
	cache      *Cache
	remote     Remote
	invalidate func()
	logger     *zap.Logger

	// ctx bounds the follow-up lookups size events need. It is the session
	// context, so lookups die with the session.
	ctx context.Context
}

// NewMerger creates a merger bound to a session context.
func NewMerger(ctx context.Context, cache *Cache, remote Remote, invalidate func(), logger *zap.Logger) *Merger {
	return &Merger{
		cache:      cache,
		remote:     remote,
		invalidate: invalidate,
		logger:     logger,
		ctx:        ctx,
	}
}

// HandleItemEvent processes an event from the shared-items feed. Events
// without a usable id are ignored; events for items the cache does not hold
// are not ours to care about.
func (m *Merger) HandleItemEvent(event stream.Event) {
	id, ok := event.EntityID()
	if !ok {
		return
	}
	if !m.cache.Has(id) {
		return
	}
	m.invalidate()
}

// HandleSizeEvent processes an event from the sizes feed. The owning item id
// is resolved remotely; a failed lookup (e.g. the size row raced a deletion)
// is logged and swallowed.
func (m *Merger) HandleSizeEvent(event stream.Event) {
	sizeID, ok := event.EntityID()
	if !ok {
		return
	}

	// Deletions carry the owning item in the old payload, saving a lookup.
	itemID, ok := event.Field("item_id")
	if !ok {
		var err error
		itemID, err = m.remote.LookupSizeItem(m.ctx, sizeID)
		if err != nil {
			m.logger.Debug("Size lookup failed, ignoring event",
				zap.String("size_id", sizeID),
				zap.Error(err))
			return
		}
	}

	if !m.cache.Has(itemID) {
		return
	}
	m.invalidate()
}
