package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	internal "github.com/mohspitality/hospitality-management/internal"
	"github.com/mohspitality/hospitality-management/internal/auth"
	rbacmodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/rbac"
	usermodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetUserByEmail(email string) (*usermodel.User, error) {
	var account usermodel.User
	err := r.db.Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *Repository) GetUserByID(userID string) (*usermodel.User, error) {
	var account usermodel.User
	err := r.db.Where("id = ?", userID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetUserWithPermissions loads the principal in one query, role snapshot
// included. The snapshot becomes the in-memory permission list every
// authorization decision runs against for the rest of the request.
func (r *Repository) GetUserWithPermissions(userID string) (*auth.User, error) {
	query := `SELECT u.id, u.email, u.user_type, u.company_id, u.role_id, u.subscription_type, r.name, r.user_permissions
	          FROM users u
	          LEFT JOIN roles r ON u.role_id = r.id
	          WHERE u.id = ? AND u.is_active = ?`

	row := r.db.Raw(query, userID, true).Row()

	var (
		user        auth.User
		userType    string
		companyID   sql.NullString
		roleID      sql.NullInt64
		roleName    sql.NullString
		rawSnapshot sql.NullString
	)
	if err := row.Scan(&user.ID, &user.Email, &userType, &companyID, &roleID, &user.SubscriptionType, &roleName, &rawSnapshot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	user.UserType = usermodel.UserType(userType)
	if companyID.Valid {
		user.CompanyID = companyID.String
	}
	if roleID.Valid {
		id := roleID.Int64
		user.RoleID = &id
	}
	if roleName.Valid {
		user.RoleName = roleName.String
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
		user.Permissions = names
	}

	return &user, nil
}

func (r *Repository) CreateUser(u *usermodel.User) error {
	return r.db.Create(u).Error
}

func (r *Repository) UpdatePassword(userID, passwordHash string) error {
	result := r.db.Model(&usermodel.User{}).Where("id = ?", userID).Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func (r *Repository) SaveRefreshToken(t *usermodel.RefreshToken) error {
	return r.db.Create(t).Error
}

func (r *Repository) GetRefreshToken(token string) (*usermodel.RefreshToken, error) {
	var stored usermodel.RefreshToken
	err := r.db.Where("token = ?", token).First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInvalidToken
		}
		return nil, err
	}
	return &stored, nil
}

func (r *Repository) RevokeRefreshToken(token string) error {
	return r.db.Model(&usermodel.RefreshToken{}).Where("token = ?", token).Update("is_revoked", true).Error
}

func (r *Repository) RevokeAllRefreshTokens(userID string) error {
	return r.db.Model(&usermodel.RefreshToken{}).Where("user_id = ? AND is_revoked = ?", userID, false).Update("is_revoked", true).Error
}

func (r *Repository) CreatePasswordReset(p *usermodel.PasswordReset) error {
	return r.db.Create(p).Error
}

func (r *Repository) GetPasswordReset(token string) (*usermodel.PasswordReset, error) {
	var reset usermodel.PasswordReset
	err := r.db.Where("token = ?", token).First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInvalidToken
		}
		return nil, err
	}
	return &reset, nil
}

func (r *Repository) MarkPasswordResetUsed(id int64) error {
	return r.db.Model(&usermodel.PasswordReset{}).Where("id = ?", id).Update("is_used", true).Error
}

// DeleteExpiredTokens clears refresh and reset tokens past their expiry,
// called by the maintenance worker.
func (r *Repository) DeleteExpiredTokens(olderThan time.Time) (int64, error) {
	refresh := r.db.Where("expires_at < ?", olderThan).Delete(&usermodel.RefreshToken{})
	if refresh.Error != nil {
		return 0, refresh.Error
	}
	resets := r.db.Where("expires_at < ?", olderThan).Delete(&usermodel.PasswordReset{})
	if resets.Error != nil {
		return refresh.RowsAffected, resets.Error
	}
	return refresh.RowsAffected + resets.RowsAffected, nil
}
