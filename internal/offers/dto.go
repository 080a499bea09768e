package offers

import "time"

type CreateOfferRequest struct {
	CustomerID      *int64    `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	ProjectID       *int64    `json:"project_id,omitempty" validate:"omitempty,gt=0"`
	Title           string    `json:"title" validate:"required,max=255"`
	OfferDate       time.Time `json:"offer_date" validate:"required"`
	OfferNumber     *string   `json:"offer_number,omitempty" validate:"omitempty,max=50"`
	Intro           string    `json:"intro"`
	Outro           string    `json:"outro"`
	PaymentDueDays  int       `json:"payment_due_days" validate:"gte=0"`
	DiscountPercent *float64  `json:"discount_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	DiscountDays    *int      `json:"discount_days,omitempty" validate:"omitempty,gte=0"`
	TaxRate         float64   `json:"tax_rate" validate:"gte=0,lte=100"`
	ShowVATForLabor bool      `json:"show_vat_for_labor"`
	IntroTemplateID *int64    `json:"intro_template_id,omitempty" validate:"omitempty,gt=0"`
	OutroTemplateID *int64    `json:"outro_template_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateOfferRequest struct {
	CustomerID      *int64     `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	ProjectID       *int64     `json:"project_id,omitempty" validate:"omitempty,gt=0"`
	Title           *string    `json:"title,omitempty" validate:"omitempty,max=255"`
	OfferDate       *time.Time `json:"offer_date,omitempty"`
	OfferNumber     *string    `json:"offer_number,omitempty" validate:"omitempty,max=50"`
	Intro           *string    `json:"intro,omitempty"`
	Outro           *string    `json:"outro,omitempty"`
	PaymentDueDays  *int       `json:"payment_due_days,omitempty" validate:"omitempty,gte=0"`
	DiscountPercent *float64   `json:"discount_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	DiscountDays    *int       `json:"discount_days,omitempty" validate:"omitempty,gte=0"`
	TaxRate         *float64   `json:"tax_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
	ShowVATForLabor *bool      `json:"show_vat_for_labor,omitempty"`
}

type UpdateOfferStatusRequest struct {
	Status OfferStatus `json:"status" validate:"required,oneof=draft sent accepted rejected cancelled"`
}

type CreateGroupRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

type UpdateGroupRequest struct {
	Title *string `json:"title,omitempty" validate:"omitempty,max=255"`
}

type CreateItemRequest struct {
	Type          ItemType `json:"type" validate:"required,oneof=material labor other"`
	Name          string   `json:"name" validate:"required,max=255"`
	Description   *string  `json:"description,omitempty"`
	Qty           float64  `json:"qty" validate:"gte=0"`
	Unit          string   `json:"unit" validate:"required,max=20"`
	PurchasePrice float64  `json:"purchase_price" validate:"gte=0"`
	MarkupPercent *float64 `json:"markup_percent,omitempty" validate:"omitempty,gte=0"`
	MarginAmount  *float64 `json:"margin_amount,omitempty" validate:"omitempty,gte=0"`
}

type UpdateItemRequest struct {
	Type          *ItemType `json:"type,omitempty" validate:"omitempty,oneof=material labor other"`
	Name          *string   `json:"name,omitempty" validate:"omitempty,max=255"`
	Description   *string   `json:"description,omitempty"`
	Qty           *float64  `json:"qty,omitempty" validate:"omitempty,gte=0"`
	Unit          *string   `json:"unit,omitempty" validate:"omitempty,max=20"`
	PurchasePrice *float64  `json:"purchase_price,omitempty" validate:"omitempty,gte=0"`
	MarkupPercent *float64  `json:"markup_percent,omitempty" validate:"omitempty,gte=0"`
	MarginAmount  *float64  `json:"margin_amount,omitempty" validate:"omitempty,gte=0"`
}

type ListOffersRequest struct {
	Status     *OfferStatus `json:"status,omitempty"`
	CustomerID *int64       `json:"customer_id,omitempty"`
	ProjectID  *int64       `json:"project_id,omitempty"`
	Limit      int          `json:"limit" validate:"gte=0,lte=1000"`
	Offset     int          `json:"offset" validate:"gte=0"`
}

// priceInput maps the optional markup/margin pair of a request onto the
// engine's tagged input. A margin amount takes precedence when both are sent,
// matching the engine's resolution order.
func priceInput(markupPercent, marginAmount *float64) PriceInput {
	switch {
	case marginAmount != nil:
		return ByMargin(*marginAmount)
	case markupPercent != nil:
		return ByMarkup(*markupPercent)
	default:
		return Unchanged()
	}
}
