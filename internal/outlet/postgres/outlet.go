package postgres

import (
	"errors"

	"gorm.io/gorm"

	resourcemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/resource"
	"github.com/mohspitality/hospitality-management/internal/outlet"
)

type OutletRepository struct {
	db *gorm.DB
}

func NewOutletRepository(db *gorm.DB) outlet.RepositoryAPI {
	return &OutletRepository{db: db}
}

func (r *OutletRepository) Create(o *resourcemodel.Outlet) error {
	return r.db.Create(o).Error
}

func (r *OutletRepository) GetByName(companyID, name string) (*resourcemodel.Outlet, error) {
	var o resourcemodel.Outlet
	err := r.db.Where("company_id = ? AND name = ?", companyID, name).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *OutletRepository) ListByCompany(companyID string) ([]*resourcemodel.Outlet, error) {
	var outlets []*resourcemodel.Outlet
	err := r.db.Where("company_id = ?", companyID).Order("name ASC").Find(&outlets).Error
	return outlets, err
}

func (r *OutletRepository) Delete(companyID string, id int64) (int64, error) {
	result := r.db.Where("id = ? AND company_id = ?", id, companyID).Delete(&resourcemodel.Outlet{})
	return result.RowsAffected, result.Error
}
