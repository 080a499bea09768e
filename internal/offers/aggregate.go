package offers

// GroupTotals is the cost/margin breakdown of one group, bucketed by item type.
type GroupTotals struct {
	MaterialCost   float64
	LaborCost      float64
	OtherCost      float64
	MaterialMargin float64
	LaborMargin    float64
	OtherMargin    float64
	TotalNet       float64
}

// RecomputeGroupTotals folds the group's current item set into a fresh totals
// record. The full set is re-read and re-folded on every item mutation rather
// than maintaining incremental deltas; an empty set yields all-zero totals.
func RecomputeGroupTotals(items []OfferItem) GroupTotals {
	var t GroupTotals
	for _, item := range items {
		switch item.Type {
		case ItemTypeMaterial:
			t.MaterialCost += item.PurchasePrice
			t.MaterialMargin += item.MarginAmount
		case ItemTypeLabor:
			t.LaborCost += item.PurchasePrice
			t.LaborMargin += item.MarginAmount
		default:
			t.OtherCost += item.PurchasePrice
			t.OtherMargin += item.MarginAmount
		}
		t.TotalNet += item.LineTotal
	}
	return t
}
