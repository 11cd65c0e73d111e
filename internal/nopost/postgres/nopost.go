package postgres

import (
	"errors"

	"gorm.io/gorm"

	resourcemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/resource"
	"github.com/mohspitality/hospitality-management/internal/nopost"
)

type NoPostListRepository struct {
	db *gorm.DB
}

func NewNoPostListRepository(db *gorm.DB) nopost.RepositoryAPI {
	return &NoPostListRepository{db: db}
}

// Upsert inserts the company's row on first write and replaces items on
// later writes, inside one transaction. UNIQUE(company_id) backs the
// one-row-per-company invariant.
func (r *NoPostListRepository) Upsert(companyID, items string) (*resourcemodel.NoPostList, error) {
	var row resourcemodel.NoPostList
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("company_id = ?", companyID).First(&row).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			row = resourcemodel.NoPostList{CompanyID: companyID, Items: items}
			return tx.Create(&row).Error
		}
		row.Items = items
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *NoPostListRepository) ListByCompany(companyID string) ([]*resourcemodel.NoPostList, error) {
	var lists []*resourcemodel.NoPostList
	err := r.db.Where("company_id = ?", companyID).Find(&lists).Error
	return lists, err
}

func (r *NoPostListRepository) Delete(companyID string, id int64) (int64, error) {
	result := r.db.Where("id = ? AND company_id = ?", id, companyID).Delete(&resourcemodel.NoPostList{})
	return result.RowsAffected, result.Error
}
