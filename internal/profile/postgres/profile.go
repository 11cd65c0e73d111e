package postgres

import (
	"errors"

	"gorm.io/gorm"

	profilemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/profile"
	"github.com/mohspitality/hospitality-management/internal/profile"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) profile.RepositoryAPI {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetUserProfile(userID string) (*profilemodel.UserProfile, error) {
	var p profilemodel.UserProfile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) CreateUserProfile(p *profilemodel.UserProfile) error {
	return r.db.Create(p).Error
}

func (r *ProfileRepository) GetCompanyProfile(userID string) (*profilemodel.CompanyProfile, error) {
	var p profilemodel.CompanyProfile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetCompanyProfileByName(companyName string) (*profilemodel.CompanyProfile, error) {
	var p profilemodel.CompanyProfile
	err := r.db.Where("company_name = ?", companyName).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetCompanyProfileByPhone(phoneNumber string) (*profilemodel.CompanyProfile, error) {
	var p profilemodel.CompanyProfile
	err := r.db.Where("phone_number = ?", phoneNumber).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) CreateCompanyProfile(p *profilemodel.CompanyProfile) error {
	return r.db.Create(p).Error
}

func (r *ProfileRepository) UpdateCompanyProfile(p *profilemodel.CompanyProfile) error {
	return r.db.Save(p).Error
}
