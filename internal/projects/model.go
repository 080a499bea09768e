package projects

import "time"

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusDone     ProjectStatus = "done"
	ProjectStatusArchived ProjectStatus = "archived"
)

type Project struct {
	ID          int64         `json:"id" db:"id"`
	CustomerID  *int64        `json:"customer_id,omitempty" db:"customer_id"`
	Name        string        `json:"name" db:"name"`
	Description *string       `json:"description,omitempty" db:"description"`
	Status      ProjectStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}
