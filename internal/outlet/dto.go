package outlet

import (
	internal "github.com/mohspitality/hospitality-management/internal"
	"github.com/mohspitality/hospitality-management/internal/core/common/validation"
	resourcemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/resource"
)

type CreateOutletDTO struct {
	Name       string `json:"name"`
	OutletType string `json:"outlet_type"`
}

func (d CreateOutletDTO) Validate() error {
	if err := validation.ValidateResourceName("name", d.Name); err != nil {
		return err
	}
	if !resourcemodel.OutletType(d.OutletType).Valid() {
		return internal.NewValidationError("outlet_type must be restaurant or room_service", internal.ErrCodeInvalidOutletType)
	}
	return nil
}

type OutletsResponse struct {
	Outlets []*Outlet `json:"outlets"`
}
