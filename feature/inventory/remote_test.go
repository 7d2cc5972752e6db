package inventory_test

import (
	"context"
	"testing"

	"brandstock/core/database"
	"brandstock/core/identity"
	"brandstock/core/notify"
	"brandstock/feature/inventory"
	"brandstock/feature/inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Item{}, &models.Size{}, &models.SharedLink{}))
	return db
}

func seedItem(t *testing.T, db *gorm.DB, item models.Item, sizes ...models.Size) {
	t.Helper()
	require.NoError(t, db.Create(&item).Error)
	for _, sz := range sizes {
		require.NoError(t, db.Create(&sz).Error)
	}
}

func TestGormRemoteVisibility(t *testing.T) {
	db := newTestStore(t)
	remote := inventory.NewGormRemote(db)
	ctx := context.Background()

	seedItem(t, db, models.Item{ID: "own", BrandID: "b1"})
	seedItem(t, db, models.Item{ID: "shared", BrandID: "b2", IsShared: true})
	seedItem(t, db, models.Item{ID: "foreign", BrandID: "b2"})
	require.NoError(t, db.Create(&models.SharedLink{ID: "l1", ItemID: "shared", BrandID: "b1"}).Error)

	items, err := remote.FetchItems(ctx, "b1")
	require.NoError(t, err)

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.ElementsMatch(t, []string{"own", "shared"}, ids)

	count, err := remote.CountItems(ctx, "b1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestGormRemoteSharedLinkIdempotent(t *testing.T) {
	db := newTestStore(t)
	remote := inventory.NewGormRemote(db)
	ctx := context.Background()

	seedItem(t, db, models.Item{ID: "i1", BrandID: "b1", IsShared: true})

	require.NoError(t, remote.AddSharedLink(ctx, models.SharedLink{ID: "l1", ItemID: "i1", BrandID: "b2"}))
	require.NoError(t, remote.AddSharedLink(ctx, models.SharedLink{ID: "l2", ItemID: "i1", BrandID: "b2"}))

	var count int64
	require.NoError(t, db.Model(&models.SharedLink{}).Where("item_id = ? AND brand_id = ?", "i1", "b2").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGormRemoteCalculateQuantities(t *testing.T) {
	db := newTestStore(t)
	remote := inventory.NewGormRemote(db)
	ctx := context.Background()

	seedItem(t, db, models.Item{ID: "i1", BrandID: "b1"},
		models.Size{ID: "s1", ItemID: "i1", OriginalQuantity: 5, AvailableQuantity: 5},
		models.Size{ID: "s2", ItemID: "i1", OriginalQuantity: 3, AvailableQuantity: 2, InCirculation: 1})
	seedItem(t, db, models.Item{ID: "other", BrandID: "b1"},
		models.Size{ID: "s9", ItemID: "other", OriginalQuantity: 99, AvailableQuantity: 99})

	q, err := remote.CalculateQuantities(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, models.Quantities{Original: 8, Available: 7, InCirculation: 1, Total: 8}, q)
}

func TestGormRemoteLookupSizeItem(t *testing.T) {
	db := newTestStore(t)
	remote := inventory.NewGormRemote(db)
	ctx := context.Background()

	seedItem(t, db, models.Item{ID: "i1", BrandID: "b1"},
		models.Size{ID: "s1", ItemID: "i1"})

	itemID, err := remote.LookupSizeItem(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "i1", itemID)

	_, err = remote.LookupSizeItem(ctx, "ghost")
	assert.Error(t, err)
}

func TestGormRemoteUpdateItemReturnsCanonical(t *testing.T) {
	db := newTestStore(t)
	remote := inventory.NewGormRemote(db)
	ctx := context.Background()

	seedItem(t, db, models.Item{ID: "i1", BrandID: "b1", Name: "Coat", ProductID: "p1"})

	name := "Jacket"
	item, err := remote.UpdateItem(ctx, "i1", models.ItemPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Jacket", item.Name)
	assert.Equal(t, "p1", item.ProductID)
}

// Brand two shares brand one's item, then stops. The item stays shared and
// stays visible to its owner; only the requester's view changes.
func TestSharingAsymmetry(t *testing.T) {
	db := newTestStore(t)
	remote := inventory.NewGormRemote(db)
	ctx := context.Background()

	seedItem(t, db, models.Item{ID: "x", BrandID: "b1", Name: "Coat"},
		models.Size{ID: "s1", ItemID: "x", OriginalQuantity: 5, AvailableQuantity: 5})

	owner := inventory.NewService(remote, nil, notify.NopSink{}, identity.Context{BrandID: "b1"}, zap.NewNop())
	requester := inventory.NewService(remote, nil, notify.NopSink{}, identity.Context{BrandID: "b2"}, zap.NewNop())

	item, err := remote.FetchItem(ctx, "x")
	require.NoError(t, err)

	shared, err := requester.AddSharedItem(ctx, item)
	require.NoError(t, err)
	assert.True(t, shared.IsShared)

	var links int64
	require.NoError(t, db.Model(&models.SharedLink{}).Where("item_id = ?", "x").Count(&links).Error)
	assert.EqualValues(t, 2, links, "owner and requester are both linked")

	require.NoError(t, owner.Reload(ctx))
	require.NoError(t, requester.Reload(ctx))
	assert.True(t, owner.Cache().Has("x"))
	assert.True(t, requester.Cache().Has("x"))

	// Sharing twice must not duplicate links.
	_, err = requester.AddSharedItem(ctx, shared)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.SharedLink{}).Where("item_id = ?", "x").Count(&links).Error)
	assert.EqualValues(t, 2, links)

	require.NoError(t, requester.StopSharing(ctx, "x"))

	require.NoError(t, db.Model(&models.SharedLink{}).Where("item_id = ?", "x").Count(&links).Error)
	assert.EqualValues(t, 1, links, "owner's link survives")

	row, err := remote.FetchItem(ctx, "x")
	require.NoError(t, err)
	assert.True(t, row.IsShared, "the shared flag never demotes")

	require.NoError(t, owner.Reload(ctx))
	assert.True(t, owner.Cache().Has("x"))
	assert.False(t, requester.Cache().Has("x"))
}
