package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	profilemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/profile"
	rbacmodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/rbac"
	usermodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/user"
	"github.com/mohspitality/hospitality-management/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

// GetUserWithRole loads one account with its role name and permission
// snapshot resolved, for the /users/me view.
func (r *UserRepository) GetUserWithRole(userID string) (*user.User, error) {
	query := `SELECT u.id, u.email, u.user_type, u.company_id, u.role_id, u.subscription_type, u.is_active,
	                 u.created_at, u.updated_at, r.name, r.user_permissions
	          FROM users u
	          LEFT JOIN roles r ON u.role_id = r.id
	          WHERE u.id = ?`

	row := r.db.Raw(query, userID).Row()

	u, err := scanUserRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(email string) (*usermodel.User, error) {
	var account usermodel.User
	err := r.db.Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// CreateStaffWithProfile writes the account and its profile together so a
// half-created staff member never exists.
func (r *UserRepository) CreateStaffWithProfile(account *usermodel.User, profile *profilemodel.UserProfile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		return tx.Create(profile).Error
	})
}

func (r *UserRepository) ListStaffByCompany(companyID string) ([]*user.User, error) {
	query := `SELECT u.id, u.email, u.user_type, u.company_id, u.role_id, u.subscription_type, u.is_active,
	                 u.created_at, u.updated_at, r.name, r.user_permissions
	          FROM users u
	          LEFT JOIN roles r ON u.role_id = r.id
	          WHERE u.user_type = ? AND u.company_id = ?
	          ORDER BY u.created_at ASC`

	rows, err := r.db.Raw(query, string(usermodel.UserTypeStaff), companyID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staff := make([]*user.User, 0)
	for rows.Next() {
		u, err := scanUserRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		staff = append(staff, u)
	}
	return staff, rows.Err()
}

func scanUserRow(scan func(dest ...interface{}) error) (*user.User, error) {
	var (
		u           user.User
		companyID   sql.NullString
		roleID      sql.NullInt64
		roleName    sql.NullString
		rawSnapshot sql.NullString
	)
	err := scan(&u.ID, &u.Email, &u.UserType, &companyID, &roleID, &u.SubscriptionType, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt, &roleName, &rawSnapshot)
	if err != nil {
		return nil, err
	}

	if companyID.Valid {
		id := companyID.String
		u.CompanyID = &id
	}
	if roleID.Valid {
		id := roleID.Int64
		u.RoleID = &id
	}
	if roleName.Valid {
		u.RoleName = roleName.String
	}
	if rawSnapshot.Valid && rawSnapshot.String != "" {
		var snapshot rbacmodel.PermissionList
		if err := json.Unmarshal([]byte(rawSnapshot.String), &snapshot); err != nil {
			return nil, err
		}
		names := make([]string, 0, len(snapshot))
		for _, p := range snapshot {
			names = append(names, p.Name)
		}
		u.Permissions = names
	}

	return &u, nil
}
