package postgres

import (
	"errors"

	"gorm.io/gorm"

	qrcodemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/qrcode"
	"github.com/mohspitality/hospitality-management/internal/qrcode"
)

type QRCodeRepository struct {
	db *gorm.DB
}

func NewQRCodeRepository(db *gorm.DB) qrcode.RepositoryAPI {
	return &QRCodeRepository{db: db}
}

func (r *QRCodeRepository) CreateBatch(b *qrcodemodel.QRCodeBatch) error {
	return r.db.Create(b).Error
}

func (r *QRCodeRepository) CountBatchesByCompany(companyID string) (int64, error) {
	var count int64
	err := r.db.Model(&qrcodemodel.QRCodeBatch{}).Where("company_id = ?", companyID).Count(&count).Error
	return count, err
}

func (r *QRCodeRepository) ListBatchesByCompany(companyID string) ([]*qrcodemodel.QRCodeBatch, error) {
	var batches []*qrcodemodel.QRCodeBatch
	err := r.db.Where("company_id = ?", companyID).Order("created_at DESC").Find(&batches).Error
	return batches, err
}

func (r *QRCodeRepository) GetLimitForSubscription(subscriptionType string) (*qrcodemodel.QRCodeLimit, error) {
	var limit qrcodemodel.QRCodeLimit
	err := r.db.Where("subscription_type = ?", subscriptionType).First(&limit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &limit, nil
}
