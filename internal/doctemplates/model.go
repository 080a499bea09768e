// Package doctemplates stores reusable intro/outro text blocks applied to
// offer documents. Templates only affect rendering, never pricing.
package doctemplates

import "time"

type TemplateKind string

const (
	KindIntro TemplateKind = "intro"
	KindOutro TemplateKind = "outro"
)

type Template struct {
	ID        int64        `json:"id" db:"id"`
	Kind      TemplateKind `json:"kind" db:"kind"`
	Name      string       `json:"name" db:"name"`
	Body      string       `json:"body" db:"body"`
	IsDefault bool         `json:"is_default" db:"is_default"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}
