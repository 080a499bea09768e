package render

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerkit/offerkit/internal/offers"
)

func sampleDocument() Document {
	group := makeGroup(1, 2)
	group.Title = "Plumbing"
	group.Items[0].Name = "Copper pipe"
	group.Items[0].Qty = 3
	group.Items[0].Unit = "m"
	group.Items[0].UnitPrice = 120
	group.Items[0].LineTotal = 360

	offer := &offers.Offer{
		Title:     "Bathroom renovation",
		OfferDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		TaxRate:   19,
		Intro:     "Dear customer,",
		Outro:     "Kind regards,",
		Groups:    []offers.OfferGroup{group},
	}
	return BuildDocument(offer)
}

func TestRenderPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/forms/chromium/convert/html", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		require.NoError(t, r.ParseMultipartForm(10<<20))
		assert.Equal(t, "8.27", r.FormValue("paperWidth"))
		assert.Equal(t, "11.69", r.FormValue("paperHeight"))

		file, _, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()

		html, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Contains(t, string(html), "Bathroom renovation")
		assert.Contains(t, string(html), "Copper pipe")
		assert.Contains(t, string(html), "Plumbing")

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("%PDF-fake"))
	}))
	defer srv.Close()

	exporter := &PDFExporter{Endpoint: srv.URL, Client: srv.Client()}

	data, err := exporter.RenderPDF(context.Background(), sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(data))
}

func TestRenderPDFGotenbergError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "conversion failed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	exporter := &PDFExporter{Endpoint: srv.URL, Client: srv.Client()}

	_, err := exporter.RenderPDF(context.Background(), sampleDocument())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gotenberg response 500")
}

func TestRenderPDFMissingEndpoint(t *testing.T) {
	exporter := &PDFExporter{}
	_, err := exporter.RenderPDF(context.Background(), sampleDocument())
	require.Error(t, err)
}

func TestHTMLShowsSubtotalOnNonTerminalPages(t *testing.T) {
	group := makeGroup(1, 20)
	priceItems(&group, 10)
	doc := BuildDocument(&offers.Offer{Title: "Big offer", TaxRate: 19, Groups: []offers.OfferGroup{group}})
	require.Len(t, doc.Pages, 2)

	html, err := HTML(doc)
	require.NoError(t, err)
	assert.Contains(t, html, "Subtotal: 160.00")
	assert.Contains(t, html, "Grand total")
}
