package user

import "time"

type UserType string

const (
	UserTypeCompany UserType = "company"
	UserTypeStaff   UserType = "staff"
	UserTypeGuest   UserType = "guest"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeCompany, UserTypeStaff, UserTypeGuest:
		return true
	}
	return false
}

type SubscriptionType string

const (
	SubscriptionTrial      SubscriptionType = "trial"
	SubscriptionBasic      SubscriptionType = "basic"
	SubscriptionPremium    SubscriptionType = "premium"
	SubscriptionEnterprise SubscriptionType = "enterprise"
)

// User rows hold all three account kinds. Company accounts have no
// company_id (the account is the company); staff and guest accounts point at
// their company through it.
type User struct {
	ID               string    `gorm:"primaryKey;column:id"`
	Email            string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash     string    `gorm:"column:password_hash;not null"`
	UserType         string    `gorm:"column:user_type;not null"`
	CompanyID        *string   `gorm:"column:company_id"`
	RoleID           *int64    `gorm:"column:role_id"`
	SubscriptionType string    `gorm:"column:subscription_type;default:trial"`
	IsActive         bool      `gorm:"column:is_active;default:true"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

type RefreshToken struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    string    `gorm:"column:user_id;not null;index"`
	Token     string    `gorm:"column:token;uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	IsRevoked bool      `gorm:"column:is_revoked;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

type PasswordReset struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    string    `gorm:"column:user_id;not null;index"`
	Token     string    `gorm:"column:token;uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	IsUsed    bool      `gorm:"column:is_used;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
