package mocks

import (
	"context"

	"brandstock/feature/inventory/models"

	"github.com/stretchr/testify/mock"
)

// Remote is a mock implementation of inventory.Remote
type Remote struct {
	mock.Mock
}

func (m *Remote) FetchItems(ctx context.Context, brandID string) ([]models.Item, error) {
	args := m.Called(ctx, brandID)
	if items, ok := args.Get(0).([]models.Item); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Remote) FetchItem(ctx context.Context, id string) (models.Item, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Item), args.Error(1)
}

func (m *Remote) CreateItem(ctx context.Context, item models.Item, sizes []models.Size) (models.Item, error) {
	args := m.Called(ctx, item, sizes)
	if created, ok := args.Get(0).(models.Item); ok {
		return created, args.Error(1)
	}
	return item, args.Error(1)
}

func (m *Remote) UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(models.Item), args.Error(1)
}

func (m *Remote) DeleteItem(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Remote) ToggleStatus(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *Remote) CountItems(ctx context.Context, brandID string) (int64, error) {
	args := m.Called(ctx, brandID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Remote) FetchItemSizes(ctx context.Context, itemID string) ([]models.Size, error) {
	args := m.Called(ctx, itemID)
	if sizes, ok := args.Get(0).([]models.Size); ok {
		return sizes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Remote) CountItemSizes(ctx context.Context, itemID string) (int64, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Remote) AddItemSize(ctx context.Context, size models.Size) error {
	args := m.Called(ctx, size)
	return args.Error(0)
}

func (m *Remote) UpdateItemSize(ctx context.Context, size models.Size) error {
	args := m.Called(ctx, size)
	return args.Error(0)
}

func (m *Remote) DeleteItemSize(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Remote) LookupSizeItem(ctx context.Context, sizeID string) (string, error) {
	args := m.Called(ctx, sizeID)
	return args.String(0), args.Error(1)
}

func (m *Remote) CalculateQuantities(ctx context.Context, itemID string) (models.Quantities, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(models.Quantities), args.Error(1)
}

func (m *Remote) SetShared(ctx context.Context, itemID string, shared bool) error {
	args := m.Called(ctx, itemID, shared)
	return args.Error(0)
}

func (m *Remote) AddSharedLink(ctx context.Context, link models.SharedLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *Remote) UnlinkSharedItem(ctx context.Context, itemID, brandID string) error {
	args := m.Called(ctx, itemID, brandID)
	return args.Error(0)
}
