package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// PDFExporter wraps Gotenberg interactions for offer PDF generation.
type PDFExporter struct {
	Endpoint string
	Client   *http.Client
}

// RenderPDF renders the document HTML and converts it through Gotenberg.
func (p *PDFExporter) RenderPDF(ctx context.Context, doc Document) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("pdf exporter not initialized")
	}
	endpoint := strings.TrimRight(p.Endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("gotenberg endpoint required")
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	html, err := HTML(doc)
	if err != nil {
		return nil, err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("files", "offer.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, err
	}

	for field, value := range map[string]string{
		"paperWidth":   "8.27",
		"paperHeight":  "11.69",
		"marginTop":    "0.5",
		"marginBottom": "0.5",
		"marginLeft":   "0.5",
		"marginRight":  "0.5",
	} {
		if err := writer.WriteField(field, value); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gotenberg response %d: %s", resp.StatusCode, string(data))
	}

	return io.ReadAll(resp.Body)
}
