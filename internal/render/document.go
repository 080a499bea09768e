package render

import (
	"github.com/offerkit/offerkit/internal/offers"
)

// DocumentPage pairs one laid-out page with the rendering context the page
// footer needs: the running net subtotal through this page, and whether this
// is the terminal page carrying the tax/discount/grand-total block.
type DocumentPage struct {
	Number   int     `json:"number"`
	Slices   Page    `json:"slices"`
	Subtotal float64 `json:"subtotal"`
	Terminal bool    `json:"terminal"`
}

// DocumentTotals is the grand-total block rendered on the terminal page.
type DocumentTotals struct {
	Net             float64  `json:"net"`
	TaxRate         float64  `json:"tax_rate"`
	Tax             float64  `json:"tax"`
	Gross           float64  `json:"gross"`
	DiscountPercent *float64 `json:"discount_percent,omitempty"`
	DiscountDays    *int     `json:"discount_days,omitempty"`
}

// Document is the fully laid-out offer ready for template rendering.
type Document struct {
	Offer  *offers.Offer  `json:"offer"`
	Pages  []DocumentPage `json:"pages"`
	Totals DocumentTotals `json:"totals"`
}

// BuildDocument paginates the offer and computes the per-page running
// subtotals and the terminal-page totals from the live item sums.
func BuildDocument(offer *offers.Offer) Document {
	pages := Paginate(offer.Groups)

	doc := Document{Offer: offer, Pages: make([]DocumentPage, 0, len(pages))}
	running := 0.0
	for i, page := range pages {
		for _, slice := range page {
			for _, item := range slice.Items {
				running += item.LineTotal
			}
		}
		doc.Pages = append(doc.Pages, DocumentPage{
			Number:   i + 1,
			Slices:   page,
			Subtotal: running,
			Terminal: i == len(pages)-1,
		})
	}

	tax := running * (offer.TaxRate / 100)
	doc.Totals = DocumentTotals{
		Net:             running,
		TaxRate:         offer.TaxRate,
		Tax:             tax,
		Gross:           running + tax,
		DiscountPercent: offer.DiscountPercent,
		DiscountDays:    offer.DiscountDays,
	}
	return doc
}
