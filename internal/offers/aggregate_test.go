package offers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeGroupTotalsBucketsByType(t *testing.T) {
	items := []OfferItem{
		{Type: ItemTypeMaterial, PurchasePrice: 100, MarginAmount: 20, LineTotal: 360},
		{Type: ItemTypeMaterial, PurchasePrice: 50, MarginAmount: 5, LineTotal: 55},
		{Type: ItemTypeLabor, PurchasePrice: 80, MarginAmount: 40, LineTotal: 120},
		{Type: ItemTypeOther, PurchasePrice: 10, MarginAmount: 2, LineTotal: 12},
	}

	got := RecomputeGroupTotals(items)

	assert.InDelta(t, 150.0, got.MaterialCost, 1e-9)
	assert.InDelta(t, 25.0, got.MaterialMargin, 1e-9)
	assert.InDelta(t, 80.0, got.LaborCost, 1e-9)
	assert.InDelta(t, 40.0, got.LaborMargin, 1e-9)
	assert.InDelta(t, 10.0, got.OtherCost, 1e-9)
	assert.InDelta(t, 2.0, got.OtherMargin, 1e-9)
	assert.InDelta(t, 547.0, got.TotalNet, 1e-9)
}

func TestRecomputeGroupTotalsEmpty(t *testing.T) {
	got := RecomputeGroupTotals(nil)
	assert.Equal(t, GroupTotals{}, got)
}

func TestRecomputeGroupTotalsIsFromScratch(t *testing.T) {
	items := []OfferItem{
		{Type: ItemTypeLabor, PurchasePrice: 30, MarginAmount: 15, LineTotal: 45},
	}

	// Folding twice over the same set must give identical results: the fold
	// carries no state between invocations.
	first := RecomputeGroupTotals(items)
	second := RecomputeGroupTotals(items)
	assert.Equal(t, first, second)
}
