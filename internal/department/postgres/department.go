package postgres

import (
	"errors"

	"gorm.io/gorm"

	resourcemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/resource"
	"github.com/mohspitality/hospitality-management/internal/department"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Create(d *resourcemodel.Department) error {
	return r.db.Create(d).Error
}

func (r *DepartmentRepository) GetByName(companyID, name string) (*resourcemodel.Department, error) {
	var d resourcemodel.Department
	err := r.db.Where("company_id = ? AND name = ?", companyID, name).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepository) ListByCompany(companyID string) ([]*resourcemodel.Department, error) {
	var departments []*resourcemodel.Department
	err := r.db.Where("company_id = ?", companyID).Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepository) Delete(companyID string, id int64) (int64, error) {
	result := r.db.Where("id = ? AND company_id = ?", id, companyID).Delete(&resourcemodel.Department{})
	return result.RowsAffected, result.Error
}
