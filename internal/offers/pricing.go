package offers

import (
	"errors"
)

// ErrUndefinedMarkup is returned when a margin amount is supplied for an item
// with a zero purchase price: the markup percentage cannot be derived.
var ErrUndefinedMarkup = errors.New("markup percent undefined for zero purchase price")

type priceMode int

const (
	priceUnchanged priceMode = iota
	priceByMarkup
	priceByMargin
)

// PriceInput selects which side of the markup/margin pair the caller supplied.
// Exactly one of the two derived quantities is taken as authoritative; the
// other is recomputed from it.
type PriceInput struct {
	mode    priceMode
	percent float64
	amount  float64
}

// ByMarkup prices the item from a markup percentage over purchase price.
func ByMarkup(percent float64) PriceInput {
	return PriceInput{mode: priceByMarkup, percent: percent}
}

// ByMargin prices the item from an absolute margin amount.
func ByMargin(amount float64) PriceInput {
	return PriceInput{mode: priceByMargin, amount: amount}
}

// Unchanged keeps the stored markup and margin as-is.
func Unchanged() PriceInput {
	return PriceInput{mode: priceUnchanged}
}

// ItemPricing carries the numeric pricing fields of a single line item.
type ItemPricing struct {
	Qty           float64
	PurchasePrice float64
	MarkupPercent float64
	MarginAmount  float64
	UnitPrice     float64
	LineTotal     float64
}

// PricePatch is a partial pricing update. Nil fields fall back to the stored
// value; Price selects the markup/margin resolution mode.
type PricePatch struct {
	Qty           *float64
	PurchasePrice *float64
	Price         PriceInput
}

// ComputeItemPricing derives the full pricing of an item from its stored state
// and an incoming patch. It is pure: persistence is the caller's concern.
//
// Invariants of the result: UnitPrice = PurchasePrice + MarginAmount and
// LineTotal = Qty * UnitPrice, with MarkupPercent and MarginAmount mutually
// consistent for PurchasePrice > 0.
func ComputeItemPricing(current ItemPricing, patch PricePatch) (ItemPricing, error) {
	next := current
	if patch.Qty != nil {
		next.Qty = *patch.Qty
	}
	if patch.PurchasePrice != nil {
		next.PurchasePrice = *patch.PurchasePrice
	}

	switch patch.Price.mode {
	case priceByMargin:
		if next.PurchasePrice == 0 {
			return ItemPricing{}, ErrUndefinedMarkup
		}
		next.MarginAmount = patch.Price.amount
		next.MarkupPercent = ((next.PurchasePrice+next.MarginAmount)/next.PurchasePrice - 1) * 100
	case priceByMarkup:
		next.MarkupPercent = patch.Price.percent
		next.MarginAmount = next.PurchasePrice * (next.MarkupPercent / 100)
	case priceUnchanged:
		// keep stored markup and margin
	}

	next.UnitPrice = next.PurchasePrice + next.MarginAmount
	next.LineTotal = next.Qty * next.UnitPrice
	return next, nil
}
