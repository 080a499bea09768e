package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerkit/offerkit/internal/offers"
)

func priceItems(group *offers.OfferGroup, lineTotal float64) {
	for i := range group.Items {
		group.Items[i].LineTotal = lineTotal
	}
}

func TestBuildDocumentRunningSubtotals(t *testing.T) {
	first := makeGroup(1, 20)
	priceItems(&first, 10)

	offer := &offers.Offer{
		Title:   "Bathroom renovation",
		TaxRate: 19,
		Groups:  []offers.OfferGroup{first},
	}

	doc := BuildDocument(offer)
	require.Len(t, doc.Pages, 2)

	// 16 items on page 1, the remaining 4 on page 2.
	assert.Equal(t, 1, doc.Pages[0].Number)
	assert.InDelta(t, 160.0, doc.Pages[0].Subtotal, 1e-9)
	assert.False(t, doc.Pages[0].Terminal)

	assert.Equal(t, 2, doc.Pages[1].Number)
	assert.InDelta(t, 200.0, doc.Pages[1].Subtotal, 1e-9)
	assert.True(t, doc.Pages[1].Terminal)

	assert.InDelta(t, 200.0, doc.Totals.Net, 1e-9)
	assert.InDelta(t, 38.0, doc.Totals.Tax, 1e-9)
	assert.InDelta(t, 238.0, doc.Totals.Gross, 1e-9)
}

func TestBuildDocumentEmptyOffer(t *testing.T) {
	doc := BuildDocument(&offers.Offer{Title: "Empty", TaxRate: 19})
	require.Len(t, doc.Pages, 1)
	assert.True(t, doc.Pages[0].Terminal)
	assert.Zero(t, doc.Totals.Net)
	assert.Zero(t, doc.Totals.Gross)
}

func TestBuildDocumentCarriesDiscountTerms(t *testing.T) {
	discount := 2.0
	days := 14
	offer := &offers.Offer{
		Title:           "With skonto",
		TaxRate:         19,
		DiscountPercent: &discount,
		DiscountDays:    &days,
	}

	doc := BuildDocument(offer)
	require.NotNil(t, doc.Totals.DiscountPercent)
	assert.InDelta(t, 2.0, *doc.Totals.DiscountPercent, 1e-9)
	require.NotNil(t, doc.Totals.DiscountDays)
	assert.Equal(t, 14, *doc.Totals.DiscountDays)
}
