package inventory_test

import (
	"context"
	"errors"
	"testing"

	"brandstock/core/identity"
	"brandstock/feature/inventory/mocks"
	"brandstock/feature/inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReloadHydratesItems(t *testing.T) {
	remote := new(mocks.Remote)
	remote.On("FetchItems", mock.Anything, "b1").Return([]models.Item{
		{ID: "i1", BrandID: "b1", Name: "Coat"},
		{ID: "i2", BrandID: "b1", Name: "Hat"},
	}, nil)
	remote.On("FetchItemSizes", mock.Anything, "i1").Return([]models.Size{
		{ID: "s1", ItemID: "i1", OriginalQuantity: 5, AvailableQuantity: 5},
		{ID: "s2", ItemID: "i1", OriginalQuantity: 3, AvailableQuantity: 2, InCirculation: 1},
	}, nil)
	remote.On("FetchItemSizes", mock.Anything, "i2").Return([]models.Size{}, nil)

	service := newTestService(remote, identity.Context{BrandID: "b1"})

	assert.NoError(t, service.Reload(context.Background()))
	assert.NoError(t, service.LoadError())

	item, ok := service.Cache().Get("i1")
	assert.True(t, ok)
	assert.Equal(t, 2, item.SizeCount)
	assert.Equal(t, models.Quantities{Original: 8, Available: 7, InCirculation: 1, Total: 8}, item.Quantities)

	item, _ = service.Cache().Get("i2")
	assert.Equal(t, 0, item.SizeCount)
}

func TestReloadFailureKeepsCache(t *testing.T) {
	remote := new(mocks.Remote)
	remote.On("FetchItems", mock.Anything, "b1").Return(nil, errors.New("store down")).Once()

	service := newTestService(remote, identity.Context{BrandID: "b1"})
	service.Cache().Append(models.Item{ID: "stale", BrandID: "b1"})

	err := service.Reload(context.Background())

	assert.Error(t, err)
	assert.True(t, service.Cache().Has("stale"))
	assert.Error(t, service.LoadError())

	// The next successful reload clears the sticky error.
	remote.On("FetchItems", mock.Anything, "b1").Return([]models.Item{{ID: "fresh"}}, nil)
	remote.On("FetchItemSizes", mock.Anything, "fresh").Return([]models.Size{}, nil)

	assert.NoError(t, service.Reload(context.Background()))
	assert.NoError(t, service.LoadError())
	assert.False(t, service.Cache().Has("stale"))
}

func TestReloadHydrationFailure(t *testing.T) {
	remote := new(mocks.Remote)
	remote.On("FetchItems", mock.Anything, "b1").Return([]models.Item{{ID: "i1"}}, nil)
	remote.On("FetchItemSizes", mock.Anything, "i1").Return(nil, errors.New("store down"))

	service := newTestService(remote, identity.Context{BrandID: "b1"})
	service.Cache().Append(models.Item{ID: "stale"})

	assert.Error(t, service.Reload(context.Background()))
	assert.True(t, service.Cache().Has("stale"))
}

func TestFetchSizesStickyError(t *testing.T) {
	remote := new(mocks.Remote)
	remote.On("FetchItemSizes", mock.Anything, "i1").Return(nil, errors.New("store down"))

	service := newTestService(remote, identity.Context{BrandID: "b1"})
	service.Cache().Append(models.Item{ID: "i1"})

	_, err := service.FetchSizes(context.Background(), "i1")

	assert.Error(t, err)
	assert.Error(t, service.LoadError())
	// Read failures never touch the cache.
	assert.True(t, service.Cache().Has("i1"))
}

func TestFetchSizes(t *testing.T) {
	remote := new(mocks.Remote)
	remote.On("FetchItemSizes", mock.Anything, "i1").
		Return([]models.Size{{ID: "s1", ItemID: "i1"}}, nil)

	service := newTestService(remote, identity.Context{BrandID: "b1"})

	sizes, err := service.FetchSizes(context.Background(), "i1")
	assert.NoError(t, err)
	assert.Len(t, sizes, 1)
}
