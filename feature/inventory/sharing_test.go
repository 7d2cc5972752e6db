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

func linkFor(brandID string) any {
	return mock.MatchedBy(func(l models.SharedLink) bool {
		return l.ItemID == "i1" && l.BrandID == brandID
	})
}

func TestAddSharedItemFirstShare(t *testing.T) {
	remote := new(mocks.Remote)
	owned := models.Item{ID: "i1", Name: "Coat", BrandID: "b1", IsShared: false}

	remote.On("SetShared", mock.Anything, "i1", true).Return(nil)
	// Promoting links the owner as well, so the owner keeps its view.
	remote.On("AddSharedLink", mock.Anything, linkFor("b1")).Return(nil)
	remote.On("AddSharedLink", mock.Anything, linkFor("b2")).Return(nil)
	remote.On("FetchItem", mock.Anything, "i1").
		Return(models.Item{ID: "i1", Name: "Coat", BrandID: "b1", IsShared: true}, nil)
	remote.On("FetchItemSizes", mock.Anything, "i1").
		Return([]models.Size{{ID: "s1", ItemID: "i1", OriginalQuantity: 5, AvailableQuantity: 5}}, nil)

	service := newTestService(remote, identity.Context{BrandID: "b2"})

	shared, err := service.AddSharedItem(context.Background(), owned)

	assert.NoError(t, err)
	assert.True(t, shared.IsShared)
	assert.Equal(t, 1, shared.SizeCount)
	assert.True(t, shared.SharedInstance("b2"))
	assert.True(t, service.Cache().Has("i1"))
	remote.AssertExpectations(t)
}

func TestAddSharedItemAlreadyShared(t *testing.T) {
	remote := new(mocks.Remote)
	remote.On("AddSharedLink", mock.Anything, linkFor("b2")).Return(nil)
	remote.On("FetchItem", mock.Anything, "i1").
		Return(models.Item{ID: "i1", BrandID: "b1", IsShared: true}, nil)
	remote.On("FetchItemSizes", mock.Anything, "i1").Return([]models.Size{}, nil)

	service := newTestService(remote, identity.Context{BrandID: "b2"})

	_, err := service.AddSharedItem(context.Background(), models.Item{ID: "i1", BrandID: "b1", IsShared: true})

	assert.NoError(t, err)
	remote.AssertNotCalled(t, "SetShared", mock.Anything, mock.Anything, mock.Anything)
	remote.AssertNumberOfCalls(t, "AddSharedLink", 1)
}

func TestAddSharedItemPromotionFailure(t *testing.T) {
	remote := new(mocks.Remote)
	remote.On("SetShared", mock.Anything, "i1", true).Return(errors.New("down"))

	service := newTestService(remote, identity.Context{BrandID: "b2"})

	_, err := service.AddSharedItem(context.Background(), models.Item{ID: "i1", BrandID: "b1"})

	assert.Error(t, err)
	assert.False(t, service.Cache().Has("i1"))
	remote.AssertNotCalled(t, "AddSharedLink", mock.Anything, mock.Anything)
}

func TestStopSharingReloads(t *testing.T) {
	remote := new(mocks.Remote)
	remote.On("UnlinkSharedItem", mock.Anything, "i1", "b2").Return(nil)
	remote.On("FetchItems", mock.Anything, "b2").
		Return([]models.Item{{ID: "own-1", BrandID: "b2"}}, nil)
	remote.On("FetchItemSizes", mock.Anything, "own-1").Return([]models.Size{}, nil)

	service := newTestService(remote, identity.Context{BrandID: "b2"})
	service.Cache().ReplaceAll([]models.Item{
		{ID: "own-1", BrandID: "b2"},
		{ID: "i1", BrandID: "b1", IsShared: true},
	})

	err := service.StopSharing(context.Background(), "i1")

	assert.NoError(t, err)
	assert.False(t, service.Cache().Has("i1"))
	assert.True(t, service.Cache().Has("own-1"))
	remote.AssertExpectations(t)
}

func TestStopSharingFailure(t *testing.T) {
	remote := new(mocks.Remote)
	remote.On("UnlinkSharedItem", mock.Anything, "i1", "b2").Return(errors.New("down"))

	service := newTestService(remote, identity.Context{BrandID: "b2"})
	service.Cache().Append(models.Item{ID: "i1", BrandID: "b1", IsShared: true})

	err := service.StopSharing(context.Background(), "i1")

	assert.Error(t, err)
	assert.True(t, service.Cache().Has("i1"))
	remote.AssertNotCalled(t, "FetchItems", mock.Anything, mock.Anything)
}
