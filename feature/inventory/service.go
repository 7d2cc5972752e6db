package inventory

import (
	"context"
	"sync"

	"brandstock/core/identity"
	"brandstock/core/notify"
	"brandstock/core/storage"
	"brandstock/feature/inventory/models"

	"go.uber.org/zap"
)

// Service is the synchronization engine for one brand's inventory view.
// It owns the cache and reconciles it against the remote store; the poller,
// the event merger and the sharing linker all funnel through it.
type Service struct {
	cache  *Cache
	remote Remote
	images *storage.ImageStore
	sink   notify.Sink
	ident  identity.Context
	logger *zap.Logger

	// locks serializes mutations per item id so concurrent edits on one
	// item cannot interleave. Different items proceed concurrently.
	locks sync.Map

	mu      sync.Mutex
	loadErr error
}

// NewService creates the engine for the identity's brand.
func NewService(remote Remote, images *storage.ImageStore, sink notify.Sink, ident identity.Context, logger *zap.Logger) *Service {
	return &Service{
		cache:  NewCache(),
		remote: remote,
		images: images,
		sink:   sink,
		ident:  ident,
		logger: logger,
	}
}

// Cache exposes the cache for read surfaces and the merger.
func (s *Service) Cache() *Cache {
	return s.cache
}

// BrandID returns the brand the engine is scoped to.
func (s *Service) BrandID() string {
	return s.ident.BrandID
}

// Reload replaces the whole cache from the remote store, hydrating each item
// with its size count and aggregate quantities. On failure the previously
// cached state is left untouched and a sticky load error is set; the next
// successful reload clears it.
func (s *Service) Reload(ctx context.Context) error {
	items, err := s.remote.FetchItems(ctx, s.ident.BrandID)
	if err != nil {
		s.setLoadErr(err)
		s.sink.Failure("inventory reload failed", err)
		return err
	}

	for i := range items {
		if err := s.hydrate(ctx, &items[i]); err != nil {
			s.setLoadErr(err)
			s.sink.Failure("inventory reload failed", err, zap.String("item_id", items[i].ID))
			return err
		}
	}

	s.cache.ReplaceAll(items)
	s.setLoadErr(nil)
	s.logger.Debug("Inventory reloaded",
		zap.String("brand_id", s.ident.BrandID),
		zap.Int("items", len(items)))
	return nil
}

// FetchSizes returns the remote size rows for an item. Read-only: a failure
// leaves the cache alone, sets the sticky load error and is reported.
func (s *Service) FetchSizes(ctx context.Context, itemID string) ([]models.Size, error) {
	sizes, err := s.remote.FetchItemSizes(ctx, itemID)
	if err != nil {
		s.setLoadErr(err)
		s.sink.Failure("size fetch failed", err, zap.String("item_id", itemID))
		return nil, err
	}
	return sizes, nil
}

// LoadError returns the sticky error from the last failed read, if any.
func (s *Service) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

func (s *Service) setLoadErr(err error) {
	s.mu.Lock()
	s.loadErr = err
	s.mu.Unlock()
}

// itemLock returns the mutex serializing mutations for one item id.
func (s *Service) itemLock(id string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// hydrate fills an item's derived fields from its remote size rows.
func (s *Service) hydrate(ctx context.Context, item *models.Item) error {
	sizes, err := s.remote.FetchItemSizes(ctx, item.ID)
	if err != nil {
		return err
	}
	item.SizeCount = len(sizes)
	item.Quantities = ComputeQuantities(sizes)
	return nil
}
