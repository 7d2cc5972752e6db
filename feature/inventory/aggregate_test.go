package inventory_test

import (
	"testing"

	"brandstock/feature/inventory"
	"brandstock/feature/inventory/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeQuantities(t *testing.T) {
	sizes := []models.Size{
		{ID: "s1", OriginalQuantity: 5, AvailableQuantity: 5, InCirculation: 0},
		{ID: "s2", OriginalQuantity: 3, AvailableQuantity: 2, InCirculation: 1},
	}

	q := inventory.ComputeQuantities(sizes)

	assert.Equal(t, 8, q.Original)
	assert.Equal(t, 7, q.Available)
	assert.Equal(t, 1, q.InCirculation)
	assert.Equal(t, 8, q.Total)
}

func TestComputeQuantitiesEmpty(t *testing.T) {
	q := inventory.ComputeQuantities(nil)
	assert.Equal(t, models.Quantities{}, q)
}

// The incremental path must always land on the same numbers as a full
// recompute over the resulting size set.
func TestApplyDeltaMatchesRecompute(t *testing.T) {
	base := []models.Size{
		{ID: "s1", OriginalQuantity: 5, AvailableQuantity: 5, InCirculation: 0},
		{ID: "s2", OriginalQuantity: 3, AvailableQuantity: 2, InCirculation: 1},
	}
	q := inventory.ComputeQuantities(base)

	t.Run("Add", func(t *testing.T) {
		added := models.Size{ID: "s3", OriginalQuantity: 4, AvailableQuantity: 6, InCirculation: 2}
		incremental := inventory.ApplyDelta(q, models.Size{}, added)
		full := inventory.ComputeQuantities(append(append([]models.Size{}, base...), added))
		assert.Equal(t, full, incremental)
	})

	t.Run("Update", func(t *testing.T) {
		updated := models.Size{ID: "s2", OriginalQuantity: 3, AvailableQuantity: 0, InCirculation: 3}
		incremental := inventory.ApplyDelta(q, base[1], updated)
		full := inventory.ComputeQuantities([]models.Size{base[0], updated})
		assert.Equal(t, full, incremental)
	})

	t.Run("Remove", func(t *testing.T) {
		incremental := inventory.ApplyDelta(q, base[1], models.Size{})
		full := inventory.ComputeQuantities(base[:1])
		assert.Equal(t, full, incremental)
	})
}

// Adding a size and immediately removing it must restore the aggregate
// exactly.
func TestDeltaRoundTrip(t *testing.T) {
	start := models.Quantities{Original: 10, Available: 6, InCirculation: 4, Total: 10}
	size := models.Size{ID: "s9", OriginalQuantity: 7, AvailableQuantity: 3, InCirculation: 2}

	afterAdd := inventory.ApplyDelta(start, models.Size{}, size)
	afterRemove := inventory.ApplyDelta(afterAdd, size, models.Size{})

	assert.Equal(t, start, afterRemove)
}
