package projects

type CreateProjectRequest struct {
	CustomerID  *int64  `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description,omitempty"`
}

type UpdateProjectRequest struct {
	CustomerID  *int64         `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	Name        *string        `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string        `json:"description,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty" validate:"omitempty,oneof=active done archived"`
}

type ListProjectsRequest struct {
	CustomerID *int64         `json:"customer_id,omitempty"`
	Status     *ProjectStatus `json:"status,omitempty"`
	Limit      int            `json:"limit" validate:"gte=0,lte=1000"`
	Offset     int            `json:"offset" validate:"gte=0"`
}
