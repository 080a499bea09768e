package offers

import (
	"time"

	"github.com/google/uuid"
)

type OfferStatus string

const (
	OfferStatusDraft     OfferStatus = "draft"
	OfferStatusSent      OfferStatus = "sent"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusRejected  OfferStatus = "rejected"
	OfferStatusCancelled OfferStatus = "cancelled"
)

type ItemType string

const (
	ItemTypeMaterial ItemType = "material"
	ItemTypeLabor    ItemType = "labor"
	ItemTypeOther    ItemType = "other"
)

type Offer struct {
	ID              int64        `json:"id" db:"id"`
	PublicID        uuid.UUID    `json:"public_id" db:"public_id"`
	CustomerID      *int64       `json:"customer_id,omitempty" db:"customer_id"`
	ProjectID       *int64       `json:"project_id,omitempty" db:"project_id"`
	Title           string       `json:"title" db:"title"`
	OfferDate       time.Time    `json:"offer_date" db:"offer_date"`
	OfferNumber     *string      `json:"offer_number,omitempty" db:"offer_number"`
	Status          OfferStatus  `json:"status" db:"status"`
	Intro           string       `json:"intro" db:"intro"`
	Outro           string       `json:"outro" db:"outro"`
	PaymentDueDays  int          `json:"payment_due_days" db:"payment_due_days"`
	DiscountPercent *float64     `json:"discount_percent,omitempty" db:"discount_percent"`
	DiscountDays    *int         `json:"discount_days,omitempty" db:"discount_days"`
	TaxRate         float64      `json:"tax_rate" db:"tax_rate"`
	ShowVATForLabor bool         `json:"show_vat_for_labor" db:"show_vat_for_labor"`
	TotalNet        float64      `json:"total_net" db:"total_net"`
	TotalTax        float64      `json:"total_tax" db:"total_tax"`
	TotalGross      float64      `json:"total_gross" db:"total_gross"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
	Groups          []OfferGroup `json:"groups,omitempty" db:"-"`
}

// OfferGroup is a named section of an offer. The six cost/margin fields and
// TotalNet are a denormalized cache over the group's current items, rebuilt
// after every item mutation.
type OfferGroup struct {
	ID             int64       `json:"id" db:"id"`
	OfferID        int64       `json:"offer_id" db:"offer_id"`
	Index          int         `json:"index" db:"group_index"`
	Title          string      `json:"title" db:"title"`
	MaterialCost   float64     `json:"material_cost" db:"material_cost"`
	LaborCost      float64     `json:"labor_cost" db:"labor_cost"`
	OtherCost      float64     `json:"other_cost" db:"other_cost"`
	MaterialMargin float64     `json:"material_margin" db:"material_margin"`
	LaborMargin    float64     `json:"labor_margin" db:"labor_margin"`
	OtherMargin    float64     `json:"other_margin" db:"other_margin"`
	TotalNet       float64     `json:"total_net" db:"total_net"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
	Items          []OfferItem `json:"items,omitempty" db:"-"`
}

// OfferItem is a single priced line. UnitPrice, LineTotal, MarkupPercent and
// MarginAmount are derived by the pricing engine; PositionIndex is assigned
// once at creation and never renumbered.
type OfferItem struct {
	ID            int64     `json:"id" db:"id"`
	GroupID       int64     `json:"group_id" db:"group_id"`
	Type          ItemType  `json:"type" db:"item_type"`
	Name          string    `json:"name" db:"name"`
	Description   *string   `json:"description,omitempty" db:"description"`
	Qty           float64   `json:"qty" db:"qty"`
	Unit          string    `json:"unit" db:"unit"`
	PurchasePrice float64   `json:"purchase_price" db:"purchase_price"`
	MarkupPercent float64   `json:"markup_percent" db:"markup_percent"`
	MarginAmount  float64   `json:"margin_amount" db:"margin_amount"`
	UnitPrice     float64   `json:"unit_price" db:"unit_price"`
	LineTotal     float64   `json:"line_total" db:"line_total"`
	PositionIndex string    `json:"position_index" db:"position_index"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
