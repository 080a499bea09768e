package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeRenderOfferPDF pre-renders an offer PDF into the cache.
	TaskTypeRenderOfferPDF = "offer:render_pdf"
)

// RenderOfferPDFPayload identifies the offer to pre-render.
type RenderOfferPDFPayload struct {
	OfferID int64 `json:"offer_id"`
}

// NewRenderOfferPDFTask constructs an Asynq task.
func NewRenderOfferPDFTask(payload RenderOfferPDFPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeRenderOfferPDF, data), nil
}

// PDFWarmer warms the render cache for one offer. Satisfied by the render
// package's Renderer.
type PDFWarmer interface {
	Warm(ctx context.Context, offerID int64) error
}

// HandleRenderOfferPDF returns the handler processing TaskTypeRenderOfferPDF.
func HandleRenderOfferPDF(warmer PDFWarmer, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload RenderOfferPDFPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if err := warmer.Warm(ctx, payload.OfferID); err != nil {
			logger.Warn("warm offer pdf failed",
				slog.Int64("offer_id", payload.OfferID), slog.Any("error", err))
			return err
		}
		return nil
	}
}
