package department

import (
	"time"

	resourcemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/resource"
)

type Department struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CompanyID string    `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDataModel(d *resourcemodel.Department) *Department {
	return &Department{
		ID:        d.ID,
		Name:      d.Name,
		CompanyID: d.CompanyID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func ToDataModel(d *Department) *resourcemodel.Department {
	return &resourcemodel.Department{
		ID:        d.ID,
		Name:      d.Name,
		CompanyID: d.CompanyID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
