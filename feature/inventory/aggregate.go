package inventory

import "brandstock/feature/inventory/models"

// ComputeQuantities derives the item-level aggregate from a full size set.
// Used on full reloads; single-size mutations go through ApplyDelta instead.
func ComputeQuantities(sizes []models.Size) models.Quantities {
	var q models.Quantities
	for _, s := range sizes {
		q.Original += s.OriginalQuantity
		q.Available += s.AvailableQuantity
		q.InCirculation += s.InCirculation
	}
	q.Total = q.Available + q.InCirculation
	return q
}

// ApplyDelta adjusts an aggregate by the difference between a size's new and
// old values. For an added size old is the zero value; for a removed size new
// is the zero value. The result must always match a full recompute over the
// current size set.
func ApplyDelta(q models.Quantities, oldSize, newSize models.Size) models.Quantities {
	q.Original += newSize.OriginalQuantity - oldSize.OriginalQuantity
	q.Available += newSize.AvailableQuantity - oldSize.AvailableQuantity
	q.InCirculation += newSize.InCirculation - oldSize.InCirculation
	q.Total = q.Available + q.InCirculation
	return q
}
