package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mohspitality/hospitality-management/internal"
	rbacmodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/rbac"
	usermodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/user"
)

// Repository backs both the permission catalog and the role store.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListPermissions() ([]*rbacmodel.Permission, error) {
	var permissions []*rbacmodel.Permission
	err := r.db.Order("id ASC").Find(&permissions).Error
	return permissions, err
}

func (r *Repository) GetPermissionByName(name string) (*rbacmodel.Permission, error) {
	var permission rbacmodel.Permission
	err := r.db.Where("name = ?", name).First(&permission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &permission, nil
}

func (r *Repository) CreatePermission(p *rbacmodel.Permission) error {
	return r.db.Create(p).Error
}

func (r *Repository) CreateRole(role *rbacmodel.Role) error {
	return r.db.Create(role).Error
}

func (r *Repository) GetRoleByName(companyID, name string) (*rbacmodel.Role, error) {
	var role rbacmodel.Role
	err := r.db.Where("company_id = ? AND name = ?", companyID, name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *Repository) GetRoleByID(companyID string, roleID int64) (*rbacmodel.Role, error) {
	var role rbacmodel.Role
	err := r.db.Where("id = ? AND company_id = ?", roleID, companyID).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *Repository) ListRolesByCompany(companyID string) ([]*rbacmodel.Role, error) {
	var roles []*rbacmodel.Role
	err := r.db.Where("company_id = ?", companyID).Order("id ASC").Find(&roles).Error
	return roles, err
}

func (r *Repository) UpdateRolePermissions(roleID int64, permissions rbacmodel.PermissionList) error {
	result := r.db.Model(&rbacmodel.Role{}).Where("id = ?", roleID).Update("user_permissions", permissions)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrRoleNotFound
	}
	return nil
}

func (r *Repository) GetUserByID(userID string) (*usermodel.User, error) {
	var user usermodel.User
	err := r.db.Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) AssignRoleToUser(userID string, roleID int64) error {
	result := r.db.Model(&usermodel.User{}).Where("id = ?", userID).Update("role_id", roleID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}
