package customers

type CreateCustomerRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	TaxID        *string `json:"tax_id,omitempty" validate:"omitempty,max=50"`
	AddressLine1 *string `json:"address_line1,omitempty" validate:"omitempty,max=255"`
	AddressLine2 *string `json:"address_line2,omitempty" validate:"omitempty,max=255"`
	City         *string `json:"city,omitempty" validate:"omitempty,max=100"`
	PostalCode   *string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
	Country      string  `json:"country" validate:"omitempty,len=2"`
	Notes        *string `json:"notes,omitempty"`
}

type UpdateCustomerRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	TaxID        *string `json:"tax_id,omitempty" validate:"omitempty,max=50"`
	AddressLine1 *string `json:"address_line1,omitempty" validate:"omitempty,max=255"`
	AddressLine2 *string `json:"address_line2,omitempty" validate:"omitempty,max=255"`
	City         *string `json:"city,omitempty" validate:"omitempty,max=100"`
	PostalCode   *string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
	Country      *string `json:"country,omitempty" validate:"omitempty,len=2"`
	IsActive     *bool   `json:"is_active,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type ListCustomersRequest struct {
	Search   *string `json:"search,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	Limit    int     `json:"limit" validate:"gte=0,lte=1000"`
	Offset   int     `json:"offset" validate:"gte=0"`
}
