package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/offer_pdf.html
var templates embed.FS

var funcMap = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("January 2, 2006")
	},
	"formatMoney": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"formatQty": func(qty float64) string {
		s := fmt.Sprintf("%.4f", qty)
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
		return s
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

var offerTemplate = template.Must(
	template.New("offer_pdf.html").Funcs(funcMap).ParseFS(templates, "templates/offer_pdf.html"),
)

// HTML renders the document into the printable HTML fed to Gotenberg.
func HTML(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := offerTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("render offer template: %w", err)
	}
	return buf.String(), nil
}
