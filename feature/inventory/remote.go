package inventory

import (
	"context"
	"fmt"

	"brandstock/feature/inventory/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Remote is the authoritative store contract the engine reconciles against.
// It is deliberately a plain CRUD surface; all sync semantics live on the
// caller side.
type Remote interface {
	FetchItems(ctx context.Context, brandID string) ([]models.Item, error)
	FetchItem(ctx context.Context, id string) (models.Item, error)
	CreateItem(ctx context.Context, item models.Item, sizes []models.Size) (models.Item, error)
	UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error)
	DeleteItem(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string, active bool) error
	CountItems(ctx context.Context, brandID string) (int64, error)

	FetchItemSizes(ctx context.Context, itemID string) ([]models.Size, error)
	CountItemSizes(ctx context.Context, itemID string) (int64, error)
	AddItemSize(ctx context.Context, size models.Size) error
	UpdateItemSize(ctx context.Context, size models.Size) error
	DeleteItemSize(ctx context.Context, id string) error
	LookupSizeItem(ctx context.Context, sizeID string) (string, error)
	CalculateQuantities(ctx context.Context, itemID string) (models.Quantities, error)

	SetShared(ctx context.Context, itemID string, shared bool) error
	AddSharedLink(ctx context.Context, link models.SharedLink) error
	UnlinkSharedItem(ctx context.Context, itemID, brandID string) error
}

// GormRemote implements Remote against the shared MySQL store.
type GormRemote struct {
	db *gorm.DB
}

// NewGormRemote wraps a gorm connection as a Remote.
func NewGormRemote(db *gorm.DB) *GormRemote {
	return &GormRemote{db: db}
}

// FetchItems returns every item visible to the brand: its own rows plus
// shared rows it is linked to.
func (r *GormRemote) FetchItems(ctx context.Context, brandID string) ([]models.Item, error) {
	var items []models.Item
	linked := r.db.Model(&models.SharedLink{}).Select("item_id").Where("brand_id = ?", brandID)
	err := r.db.WithContext(ctx).
		Where("brand_id = ?", brandID).
		Or("is_shared = ? AND id IN (?)", true, linked).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	return items, nil
}

func (r *GormRemote) FetchItem(ctx context.Context, id string) (models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return models.Item{}, fmt.Errorf("failed to fetch item %s: %w", id, err)
	}
	return item, nil
}

// CreateItem inserts the item and its sizes in one transaction.
func (r *GormRemote) CreateItem(ctx context.Context, item models.Item, sizes []models.Size) (models.Item, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		if len(sizes) > 0 {
			if err := tx.Create(&sizes).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

// UpdateItem applies the patch and returns the canonical row.
func (r *GormRemote) UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.ProductID != nil {
		updates["product_id"] = *patch.ProductID
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return models.Item{}, fmt.Errorf("failed to update item %s: %w", id, result.Error)
		}
	}
	return r.FetchItem(ctx, id)
}

func (r *GormRemote) DeleteItem(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	return nil
}

func (r *GormRemote) ToggleStatus(ctx context.Context, id string, active bool) error {
	result := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return fmt.Errorf("failed to toggle item %s: %w", id, result.Error)
	}
	return nil
}

// CountItems is the cheap existence probe used by the poll detector.
func (r *GormRemote) CountItems(ctx context.Context, brandID string) (int64, error) {
	var count int64
	linked := r.db.Model(&models.SharedLink{}).Select("item_id").Where("brand_id = ?", brandID)
	err := r.db.WithContext(ctx).Model(&models.Item{}).
		Where("brand_id = ?", brandID).
		Or("is_shared = ? AND id IN (?)", true, linked).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

func (r *GormRemote) FetchItemSizes(ctx context.Context, itemID string) ([]models.Size, error) {
	var sizes []models.Size
	if err := r.db.WithContext(ctx).Where("item_id = ?", itemID).Find(&sizes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch sizes for item %s: %w", itemID, err)
	}
	return sizes, nil
}

func (r *GormRemote) CountItemSizes(ctx context.Context, itemID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Size{}).Where("item_id = ?", itemID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count sizes for item %s: %w", itemID, err)
	}
	return count, nil
}

func (r *GormRemote) AddItemSize(ctx context.Context, size models.Size) error {
	if err := r.db.WithContext(ctx).Create(&size).Error; err != nil {
		return fmt.Errorf("failed to add size: %w", err)
	}
	return nil
}

func (r *GormRemote) UpdateItemSize(ctx context.Context, size models.Size) error {
	result := r.db.WithContext(ctx).Model(&models.Size{}).Where("id = ?", size.ID).Updates(map[string]any{
		"label":              size.Label,
		"original_quantity":  size.OriginalQuantity,
		"available_quantity": size.AvailableQuantity,
		"in_circulation":     size.InCirculation,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update size %s: %w", size.ID, result.Error)
	}
	return nil
}

func (r *GormRemote) DeleteItemSize(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Size{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete size %s: %w", id, err)
	}
	return nil
}

// LookupSizeItem resolves a size id to its owning item id. Used by the event
// merger to map size-feed events onto cached items.
func (r *GormRemote) LookupSizeItem(ctx context.Context, sizeID string) (string, error) {
	var size models.Size
	if err := r.db.WithContext(ctx).Select("item_id").First(&size, "id = ?", sizeID).Error; err != nil {
		return "", fmt.Errorf("failed to look up size %s: %w", sizeID, err)
	}
	return size.ItemID, nil
}

// CalculateQuantities sums the item's size counters store-side.
func (r *GormRemote) CalculateQuantities(ctx context.Context, itemID string) (models.Quantities, error) {
	var row struct {
		Original      int
		Available     int
		InCirculation int
	}
	err := r.db.WithContext(ctx).Model(&models.Size{}).
		Select("COALESCE(SUM(original_quantity),0) AS original, COALESCE(SUM(available_quantity),0) AS available, COALESCE(SUM(in_circulation),0) AS in_circulation").
		Where("item_id = ?", itemID).
		Scan(&row).Error
	if err != nil {
		return models.Quantities{}, fmt.Errorf("failed to calculate quantities for item %s: %w", itemID, err)
	}
	return models.Quantities{
		Original:      row.Original,
		Available:     row.Available,
		InCirculation: row.InCirculation,
		Total:         row.Available + row.InCirculation,
	}, nil
}

func (r *GormRemote) SetShared(ctx context.Context, itemID string, shared bool) error {
	result := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", itemID).Update("is_shared", shared)
	if result.Error != nil {
		return fmt.Errorf("failed to set shared flag on item %s: %w", itemID, result.Error)
	}
	return nil
}

// AddSharedLink inserts a link row. The (item_id, brand_id) pair carries a
// unique index; re-adding an existing pair is a no-op.
func (r *GormRemote) AddSharedLink(ctx context.Context, link models.SharedLink) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
	if err != nil {
		return fmt.Errorf("failed to add shared link: %w", err)
	}
	return nil
}

func (r *GormRemote) UnlinkSharedItem(ctx context.Context, itemID, brandID string) error {
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND brand_id = ?", itemID, brandID).
		Delete(&models.SharedLink{}).Error
	if err != nil {
		return fmt.Errorf("failed to unlink item %s from brand %s: %w", itemID, brandID, err)
	}
	return nil
}
