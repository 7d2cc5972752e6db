package inventory

// Mutation coordinator: every write captures the prior cache state, applies
// the new state optimistically, then calls the remote store. Remote success
// keeps (or canonicalizes) the optimistic state; remote failure reverts it.
//
// Propagation follows how surfaces call these: AddItem, UpdateItemDetails,
// AddSize and UpdateSize return the remote error after reverting and
// notifying; ToggleActive, RemoveItem and RemoveSize are fire-and-forget
// operations that revert (or reload) and notify but swallow the error.

import (
	"context"
	"fmt"

	"brandstock/feature/inventory/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewItem carries the caller-supplied fields for item creation.
type NewItem struct {
	Name      string    `json:"name"`
	ProductID string    `json:"product_id"`
	ImageURL  string    `json:"image_url"`
	Sizes     []NewSize `json:"sizes"`
}

// NewSize carries the caller-supplied fields for a size record.
type NewSize struct {
	Label             string `json:"label"`
	OriginalQuantity  int    `json:"original_quantity"`
	AvailableQuantity int    `json:"available_quantity"`
	InCirculation     int    `json:"in_circulation"`
}

// AddItem creates an item owned by the current brand. The acting user is a
// hard precondition: without one, nothing is created anywhere. Items get
// exactly one default size unless the caller supplies a list.
func (s *Service) AddItem(ctx context.Context, in NewItem) (models.Item, error) {
	if !s.ident.HasUser() {
		return models.Item{}, fmt.Errorf("item creation requires an acting user: %w", ErrPrecondition)
	}

	item := models.Item{
		ID:        uuid.NewString(),
		Name:      in.Name,
		ProductID: in.ProductID,
		BrandID:   s.ident.BrandID,
		IsActive:  true,
		ImageURL:  in.ImageURL,
		CreatedBy: s.ident.UserID,
	}

	specs := in.Sizes
	if len(specs) == 0 {
		specs = []NewSize{{Label: "One Size"}}
	}
	sizes := make([]models.Size, 0, len(specs))
	for _, ns := range specs {
		sizes = append(sizes, models.Size{
			ID:                uuid.NewString(),
			ItemID:            item.ID,
			Label:             ns.Label,
			OriginalQuantity:  ns.OriginalQuantity,
			AvailableQuantity: ns.AvailableQuantity,
			InCirculation:     ns.InCirculation,
		})
	}
	item.SizeCount = len(sizes)
	item.Quantities = ComputeQuantities(sizes)

	lock := s.itemLock(item.ID)
	lock.Lock()
	defer lock.Unlock()

	s.cache.Append(item)

	created, err := s.remote.CreateItem(ctx, item, sizes)
	if err != nil {
		s.cache.Remove(item.ID)
		s.sink.Failure("item creation failed", err, zap.String("name", in.Name))
		return models.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	created.SizeCount = item.SizeCount
	created.Quantities = item.Quantities
	s.cache.Append(created)
	s.sink.Success("item created", zap.String("item_id", created.ID))
	return created, nil
}

// ToggleActive flips the item's active flag. Remote failure restores the
// prior flag and is not returned.
func (s *Service) ToggleActive(ctx context.Context, id string) error {
	lock := s.itemLock(id)
	lock.Lock()
	defer lock.Unlock()

	prior, ok := s.cache.Get(id)
	if !ok {
		return fmt.Errorf("item %s: %w", id, ErrNotFound)
	}

	next := !prior.IsActive
	s.cache.ApplyLocal(id, func(it *models.Item) {
		it.IsActive = next
	})

	if err := s.remote.ToggleStatus(ctx, id, next); err != nil {
		s.cache.Append(prior)
		s.sink.Failure("status toggle failed", err, zap.String("item_id", id))
		return nil
	}
	s.sink.Success("status toggled", zap.String("item_id", id), zap.Bool("active", next))
	return nil
}

// UpdateItemDetails patches the item's editable fields, keeping the server's
// canonical row on success. Remote failure reverts and is returned.
func (s *Service) UpdateItemDetails(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error) {
	lock := s.itemLock(id)
	lock.Lock()
	defer lock.Unlock()

	prior, ok := s.cache.Get(id)
	if !ok {
		return models.Item{}, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}

	s.cache.Append(patch.Apply(prior))

	canonical, err := s.remote.UpdateItem(ctx, id, patch)
	if err != nil {
		s.cache.Append(prior)
		s.sink.Failure("item update failed", err, zap.String("item_id", id))
		return models.Item{}, fmt.Errorf("failed to update item %s: %w", id, err)
	}

	// Derived fields are not part of the canonical row.
	canonical.SizeCount = prior.SizeCount
	canonical.Quantities = prior.Quantities
	s.cache.Append(canonical)
	s.sink.Success("item updated", zap.String("item_id", id))
	return canonical, nil
}

// RemoveItem deletes the item and its stored image. The image goes first and
// cannot be restored, so any failure past that point triggers a full reload
// instead of a localized revert. Errors are not returned.
func (s *Service) RemoveItem(ctx context.Context, id string) error {
	lock := s.itemLock(id)
	lock.Lock()
	defer lock.Unlock()

	prior, ok := s.cache.Get(id)
	if !ok {
		return fmt.Errorf("item %s: %w", id, ErrNotFound)
	}

	s.cache.Remove(id)

	if prior.ImageURL != "" && s.images != nil {
		if err := s.images.Delete(ctx, prior.ImageURL); err != nil {
			s.sink.Failure("item removal failed", err, zap.String("item_id", id))
			s.reloadAfterFailedRemove(ctx, id)
			return nil
		}
	}

	if err := s.remote.DeleteItem(ctx, id); err != nil {
		s.sink.Failure("item removal failed", err, zap.String("item_id", id))
		s.reloadAfterFailedRemove(ctx, id)
		return nil
	}
	s.sink.Success("item removed", zap.String("item_id", id))
	return nil
}

func (s *Service) reloadAfterFailedRemove(ctx context.Context, id string) {
	if err := s.Reload(ctx); err != nil {
		s.logger.Warn("Reload after failed removal also failed",
			zap.String("item_id", id),
			zap.Error(err))
	}
}

// AddSize appends a size record to a cached item, adjusting the aggregate by
// the new size's values. Remote failure reverts and is returned.
func (s *Service) AddSize(ctx context.Context, itemID string, ns NewSize) (models.Size, error) {
	lock := s.itemLock(itemID)
	lock.Lock()
	defer lock.Unlock()

	prior, ok := s.cache.Get(itemID)
	if !ok {
		return models.Size{}, fmt.Errorf("item %s: %w", itemID, ErrNotFound)
	}

	size := models.Size{
		ID:                uuid.NewString(),
		ItemID:            itemID,
		Label:             ns.Label,
		OriginalQuantity:  ns.OriginalQuantity,
		AvailableQuantity: ns.AvailableQuantity,
		InCirculation:     ns.InCirculation,
	}

	s.cache.ApplyLocal(itemID, func(it *models.Item) {
		it.SizeCount++
		it.Quantities = ApplyDelta(it.Quantities, models.Size{}, size)
	})

	if err := s.remote.AddItemSize(ctx, size); err != nil {
		s.cache.Append(prior)
		s.sink.Failure("size creation failed", err, zap.String("item_id", itemID))
		return models.Size{}, fmt.Errorf("failed to add size: %w", err)
	}
	s.sink.Success("size added", zap.String("item_id", itemID), zap.String("size_id", size.ID))
	return size, nil
}

// UpdateSize replaces a size record's fields, adjusting the aggregate by the
// delta between old and new values. Remote failure reverts and is returned.
func (s *Service) UpdateSize(ctx context.Context, size models.Size) error {
	lock := s.itemLock(size.ItemID)
	lock.Lock()
	defer lock.Unlock()

	prior, ok := s.cache.Get(size.ItemID)
	if !ok {
		return fmt.Errorf("item %s: %w", size.ItemID, ErrNotFound)
	}

	old, err := s.lookupSize(ctx, size.ItemID, size.ID)
	if err != nil {
		return err
	}

	s.cache.ApplyLocal(size.ItemID, func(it *models.Item) {
		it.Quantities = ApplyDelta(it.Quantities, old, size)
	})

	if err := s.remote.UpdateItemSize(ctx, size); err != nil {
		s.cache.Append(prior)
		s.sink.Failure("size update failed", err, zap.String("size_id", size.ID))
		return fmt.Errorf("failed to update size %s: %w", size.ID, err)
	}
	s.sink.Success("size updated", zap.String("size_id", size.ID))
	return nil
}

// RemoveSize deletes a size record, subtracting its values from the
// aggregate. Remote failure reverts; the error is not returned.
func (s *Service) RemoveSize(ctx context.Context, itemID, sizeID string) error {
	lock := s.itemLock(itemID)
	lock.Lock()
	defer lock.Unlock()

	prior, ok := s.cache.Get(itemID)
	if !ok {
		return fmt.Errorf("item %s: %w", itemID, ErrNotFound)
	}

	old, err := s.lookupSize(ctx, itemID, sizeID)
	if err != nil {
		return err
	}

	s.cache.ApplyLocal(itemID, func(it *models.Item) {
		it.SizeCount--
		it.Quantities = ApplyDelta(it.Quantities, old, models.Size{})
	})

	if err := s.remote.DeleteItemSize(ctx, sizeID); err != nil {
		s.cache.Append(prior)
		s.sink.Failure("size removal failed", err, zap.String("size_id", sizeID))
		return nil
	}
	s.sink.Success("size removed", zap.String("size_id", sizeID))
	return nil
}

// lookupSize resolves the current remote values of one size row, needed to
// compute incremental aggregate deltas.
func (s *Service) lookupSize(ctx context.Context, itemID, sizeID string) (models.Size, error) {
	sizes, err := s.remote.FetchItemSizes(ctx, itemID)
	if err != nil {
		return models.Size{}, fmt.Errorf("failed to resolve size %s: %w", sizeID, err)
	}
	for _, sz := range sizes {
		if sz.ID == sizeID {
			return sz, nil
		}
	}
	return models.Size{}, fmt.Errorf("size %s: %w", sizeID, ErrNotFound)
}
