package models

import "time"

// Item is a top-level inventory entity owned by one brand.
// SizeCount and Quantities are derived from the item's size records on load
// and are never written back to the store.
type Item struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	ProductID string    `gorm:"column:product_id;size:64" json:"product_id"`
	BrandID   string    `gorm:"column:brand_id;size:36;index" json:"brand_id"`
	IsActive  bool      `gorm:"column:is_active" json:"is_active"`
	IsShared  bool      `gorm:"column:is_shared;index" json:"is_shared"`
	ImageURL  string    `gorm:"column:image_url;size:512" json:"image_url"`
	CreatedBy string    `gorm:"column:created_by;size:36" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	SizeCount  int        `gorm:"-" json:"size_count"`
	Quantities Quantities `gorm:"-" json:"quantities"`
}

// TableName overrides the gorm default pluralization.
func (Item) TableName() string {
	return "items"
}

// SharedInstance reports whether the viewing brand sees an item it does not own.
func (i Item) SharedInstance(currentBrandID string) bool {
	return i.IsShared && i.BrandID != currentBrandID
}

// Size is a sub-record of an Item carrying its own quantity counters.
// All three counters are non-negative; no relation between available and
// original is enforced (available may exceed original).
type Size struct {
	ID                string `gorm:"primaryKey;size:36" json:"id"`
	ItemID            string `gorm:"column:item_id;size:36;index" json:"item_id"`
	Label             string `gorm:"size:64" json:"label"`
	OriginalQuantity  int    `gorm:"column:original_quantity" json:"original_quantity"`
	AvailableQuantity int    `gorm:"column:available_quantity" json:"available_quantity"`
	InCirculation     int    `gorm:"column:in_circulation" json:"in_circulation"`
}

// TableName overrides the gorm default pluralization.
func (Size) TableName() string {
	return "item_sizes"
}

// SharedLink associates an item with a brand that may view it.
// The (item_id, brand_id) pair is unique; re-sharing must not duplicate it.
type SharedLink struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	ItemID  string `gorm:"column:item_id;size:36;uniqueIndex:idx_item_brand" json:"item_id"`
	BrandID string `gorm:"column:brand_id;size:36;uniqueIndex:idx_item_brand" json:"brand_id"`
}

// TableName overrides the gorm default pluralization.
func (SharedLink) TableName() string {
	return "shared_links"
}

// Quantities holds the item-level totals derived from its size records.
// Total is always Available + InCirculation at settled states.
type Quantities struct {
	Original      int `json:"original_quantity"`
	Available     int `json:"available_quantity"`
	InCirculation int `json:"in_circulation"`
	Total         int `json:"total_quantity"`
}

// ItemPatch carries the editable item fields for a details update.
// Nil fields are left untouched.
type ItemPatch struct {
	Name      *string `json:"name,omitempty"`
	ProductID *string `json:"product_id,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
}

// Apply merges the patch into a copy of the item and returns it.
func (p ItemPatch) Apply(item Item) Item {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.ProductID != nil {
		item.ProductID = *p.ProductID
	}
	if p.ImageURL != nil {
		item.ImageURL = *p.ImageURL
	}
	return item
}
