package outlet

import (
	"time"

	resourcemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/resource"
)

type Outlet struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	CompanyID  string    `json:"company_id"`
	OutletType string    `json:"outlet_type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromDataModel(o *resourcemodel.Outlet) *Outlet {
	return &Outlet{
		ID:         o.ID,
		Name:       o.Name,
		CompanyID:  o.CompanyID,
		OutletType: o.OutletType,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func ToDataModel(o *Outlet) *resourcemodel.Outlet {
	return &resourcemodel.Outlet{
		ID:         o.ID,
		Name:       o.Name,
		CompanyID:  o.CompanyID,
		OutletType: o.OutletType,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}
