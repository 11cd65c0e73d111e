package qrcode

import (
	internal "github.com/mohspitality/hospitality-management/internal"
	resourcemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/resource"
)

type CreateBatchDTO struct {
	OutletType string `json:"outlet_type"`
	Rooms      string `json:"rooms"`
	FillColor  string `json:"fill_color,omitempty"`
	BackColor  string `json:"back_color,omitempty"`
	Size       int    `json:"size,omitempty"`
}

func (d CreateBatchDTO) Validate() error {
	if !resourcemodel.OutletType(d.OutletType).Valid() {
		return internal.NewValidationError("outlet_type must be restaurant or room_service", internal.ErrCodeInvalidOutletType)
	}
	if d.Size < 0 || d.Size > 2048 {
		return internal.NewValidationError("size must be between 0 and 2048", internal.ErrCodeValidationFailed)
	}
	return nil
}

type BatchesResponse struct {
	Batches []*Batch `json:"batches"`
}
