package inventory

// Sharing linker: manages the many-to-many association between items and
// brands. Sharing is a one-way door: the first share flips is_shared on and
// it never flips back, even when unsharing leaves a single linked brand.

import (
	"context"
	"fmt"

	"brandstock/feature/inventory/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddSharedItem links an existing item to the current brand. If the item is
// not yet shared it is promoted first, which also links its owning brand so
// the owner keeps seeing it. Link creation is idempotent on the
// (item, brand) pair. The canonical row is re-fetched, re-aggregated and
// merged into the cache.
func (s *Service) AddSharedItem(ctx context.Context, existing models.Item) (models.Item, error) {
	lock := s.itemLock(existing.ID)
	lock.Lock()
	defer lock.Unlock()

	if !existing.IsShared {
		if err := s.remote.SetShared(ctx, existing.ID, true); err != nil {
			s.sink.Failure("share failed", err, zap.String("item_id", existing.ID))
			return models.Item{}, fmt.Errorf("failed to share item %s: %w", existing.ID, err)
		}
		if err := s.addLink(ctx, existing.ID, existing.BrandID); err != nil {
			s.sink.Failure("share failed", err, zap.String("item_id", existing.ID))
			return models.Item{}, err
		}
	}

	if err := s.addLink(ctx, existing.ID, s.ident.BrandID); err != nil {
		s.sink.Failure("share failed", err, zap.String("item_id", existing.ID))
		return models.Item{}, err
	}

	canonical, err := s.remote.FetchItem(ctx, existing.ID)
	if err != nil {
		s.sink.Failure("share failed", err, zap.String("item_id", existing.ID))
		return models.Item{}, fmt.Errorf("failed to resolve shared item %s: %w", existing.ID, err)
	}
	if err := s.hydrate(ctx, &canonical); err != nil {
		s.sink.Failure("share failed", err, zap.String("item_id", existing.ID))
		return models.Item{}, fmt.Errorf("failed to aggregate shared item %s: %w", existing.ID, err)
	}

	s.cache.Append(canonical)
	s.sink.Success("item shared",
		zap.String("item_id", canonical.ID),
		zap.String("brand_id", s.ident.BrandID))
	return canonical, nil
}

// StopSharing removes the current brand's link to the item and reloads the
// whole view, so an item no longer linked here drops out of the cache. The
// item row itself is untouched; is_shared stays true regardless of how many
// links remain.
func (s *Service) StopSharing(ctx context.Context, itemID string) error {
	if err := s.remote.UnlinkSharedItem(ctx, itemID, s.ident.BrandID); err != nil {
		s.sink.Failure("unshare failed", err, zap.String("item_id", itemID))
		return fmt.Errorf("failed to unshare item %s: %w", itemID, err)
	}

	if err := s.Reload(ctx); err != nil {
		return err
	}
	s.sink.Success("item unshared",
		zap.String("item_id", itemID),
		zap.String("brand_id", s.ident.BrandID))
	return nil
}

func (s *Service) addLink(ctx context.Context, itemID, brandID string) error {
	link := models.SharedLink{
		ID:      uuid.NewString(),
		ItemID:  itemID,
		BrandID: brandID,
	}
	if err := s.remote.AddSharedLink(ctx, link); err != nil {
		return fmt.Errorf("failed to link item %s to brand %s: %w", itemID, brandID, err)
	}
	return nil
}
