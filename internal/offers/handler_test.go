package offers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (chi.Router, *Service) {
	t.Helper()
	svc, _ := newTestService()
	h := NewHandler(slog.Default(), svc)
	r := chi.NewRouter()
	r.Route("/offers", h.MountRoutes)
	r.Route("/items", h.MountItemRoutes)
	return r, svc
}

func doJSON(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHandlerCreateOffer(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(t, r, http.MethodPost, "/offers", map[string]any{
		"title":      "Roof repair",
		"offer_date": "2026-03-12T00:00:00Z",
		"tax_rate":   19,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var offer Offer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &offer))
	assert.Equal(t, OfferStatusDraft, offer.Status)
	assert.Equal(t, "Roof repair", offer.Title)
}

func TestHandlerCreateOfferValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	// Missing title.
	rr := doJSON(t, r, http.MethodPost, "/offers", map[string]any{
		"offer_date": "2026-03-12T00:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Validation Failed")
}

func TestHandlerGetOfferNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(t, r, http.MethodGet, "/offers/999", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandlerStatusConflict(t *testing.T) {
	r, svc := newTestRouter(t)
	offer := seedOffer(t, svc)

	rr := doJSON(t, r, http.MethodPost, offerPath(offer.ID)+"/status", map[string]any{
		"status": "accepted",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestHandlerItemLifecycle(t *testing.T) {
	r, svc := newTestRouter(t)
	offer := seedOffer(t, svc)

	rr := doJSON(t, r, http.MethodPost, offerPath(offer.ID)+"/groups", map[string]any{
		"title": "Plumbing",
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var group OfferGroup
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &group))

	rr = doJSON(t, r, http.MethodPost, groupPath(offer.ID, group.ID)+"/items", map[string]any{
		"type":           "material",
		"name":           "Copper pipe",
		"qty":            3,
		"unit":           "m",
		"purchase_price": 100,
		"markup_percent": 20,
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var item OfferItem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &item))
	assert.Equal(t, "1.1", item.PositionIndex)
	assert.InDelta(t, 360.0, item.LineTotal, 1e-9)

	rr = doJSON(t, r, http.MethodPatch, itemPath(item.ID), map[string]any{
		"margin_amount": 50,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &item))
	assert.InDelta(t, 50.0, item.MarkupPercent, 1e-9)

	rr = doJSON(t, r, http.MethodDelete, itemPath(item.ID), nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestHandlerItemMarginZeroPurchase(t *testing.T) {
	r, svc := newTestRouter(t)
	offer := seedOffer(t, svc)

	rr := doJSON(t, r, http.MethodPost, offerPath(offer.ID)+"/groups", map[string]any{
		"title": "Misc",
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var group OfferGroup
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &group))

	rr = doJSON(t, r, http.MethodPost, groupPath(offer.ID, group.ID)+"/items", map[string]any{
		"type":           "other",
		"name":           "Disposal",
		"qty":            1,
		"unit":           "pc",
		"purchase_price": 0,
		"margin_amount":  15,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func offerPath(id int64) string {
	return "/offers/" + strconv.FormatInt(id, 10)
}

func groupPath(offerID, groupID int64) string {
	return offerPath(offerID) + "/groups/" + strconv.FormatInt(groupID, 10)
}

func itemPath(id int64) string {
	return "/items/" + strconv.FormatInt(id, 10)
}
