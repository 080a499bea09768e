package render

import (
	"context"
	"fmt"

	"github.com/offerkit/offerkit/internal/observability"
	"github.com/offerkit/offerkit/internal/offers"
)

// OfferLoader loads the fully materialized offer tree. Satisfied by the
// offers service.
type OfferLoader interface {
	GetOffer(ctx context.Context, id int64) (*offers.Offer, error)
}

// Renderer ties the offer loader, the PDF exporter and the render cache
// together. It backs both the HTTP document endpoints and the background
// cache-warming job.
type Renderer struct {
	loader   OfferLoader
	exporter *PDFExporter
	cache    *Cache
	metrics  *observability.Metrics
}

func NewRenderer(loader OfferLoader, exporter *PDFExporter, cache *Cache) *Renderer {
	return &Renderer{loader: loader, exporter: exporter, cache: cache}
}

// WithMetrics enables render outcome counting.
func (r *Renderer) WithMetrics(metrics *observability.Metrics) *Renderer {
	r.metrics = metrics
	return r
}

// PDF returns the rendered PDF for the offer's current revision, serving from
// cache when possible.
func (r *Renderer) PDF(ctx context.Context, offerID int64) ([]byte, error) {
	offer, err := r.loader.GetOffer(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("load offer: %w", err)
	}
	return r.cache.Fetch(ctx, offer.ID, offer.UpdatedAt, func(ctx context.Context) ([]byte, error) {
		pdf, err := r.exporter.RenderPDF(ctx, BuildDocument(offer))
		r.metrics.ObservePDFRender(err)
		return pdf, err
	})
}

// Warm pre-renders the offer's PDF into the cache.
func (r *Renderer) Warm(ctx context.Context, offerID int64) error {
	_, err := r.PDF(ctx, offerID)
	return err
}
