package render

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/offerkit/offerkit/internal/offers"
	"github.com/offerkit/offerkit/internal/platform/httpx"
)

type Handler struct {
	logger   *slog.Logger
	loader   OfferLoader
	renderer *Renderer
}

func NewHandler(logger *slog.Logger, loader OfferLoader, renderer *Renderer) *Handler {
	return &Handler{logger: logger, loader: loader, renderer: renderer}
}

// MountRoutes attaches the document endpoints onto the offers subrouter.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{id}/document", h.ShowDocument)
	r.Get("/{id}/pdf", h.ShowPDF)
}

// ShowDocument returns the paginated view model consumed by the HTML
// rendering layer.
func (h *Handler) ShowDocument(w http.ResponseWriter, r *http.Request) {
	offer, ok := h.loadOffer(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, BuildDocument(offer))
}

// ShowPDF streams the rendered PDF, serving from cache when the offer
// revision has been rendered before.
func (h *Handler) ShowPDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid id")
		return
	}

	pdf, err := h.renderer.PDF(r.Context(), id)
	if err != nil {
		if errors.Is(err, offers.ErrNotFound) {
			httpx.RespondError(w, httpx.ErrNotFound)
			return
		}
		h.logger.Error("render offer pdf failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Render Failed", "")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="offer.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) loadOffer(w http.ResponseWriter, r *http.Request) (*offers.Offer, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid id")
		return nil, false
	}
	offer, err := h.loader.GetOffer(r.Context(), id)
	if err != nil {
		if errors.Is(err, offers.ErrNotFound) {
			httpx.RespondError(w, httpx.ErrNotFound)
		} else {
			h.logger.Error("load offer failed", slog.Any("error", err))
			httpx.RespondError(w, err)
		}
		return nil, false
	}
	return offer, true
}
