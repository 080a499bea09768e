package doctemplates

type CreateTemplateRequest struct {
	Kind      TemplateKind `json:"kind" validate:"required,oneof=intro outro"`
	Name      string       `json:"name" validate:"required,max=150"`
	Body      string       `json:"body" validate:"required"`
	IsDefault bool         `json:"is_default"`
}

type UpdateTemplateRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=150"`
	Body      *string `json:"body,omitempty"`
	IsDefault *bool   `json:"is_default,omitempty"`
}
