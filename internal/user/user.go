package user

import (
	"time"

	usermodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/user"
)

type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	UserType         string    `json:"user_type"`
	CompanyID        *string   `json:"company_id,omitempty"`
	RoleID           *int64    `json:"role_id,omitempty"`
	RoleName         string    `json:"role_name,omitempty"`
	SubscriptionType string    `json:"subscription_type,omitempty"`
	IsActive         bool      `json:"is_active"`
	Permissions      []string  `json:"permissions,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (u *User) IsActiveUser() bool {
	return u.IsActive
}

func FromDataModel(m *usermodel.User) *User {
	return &User{
		ID:               m.ID,
		Email:            m.Email,
		UserType:         m.UserType,
		CompanyID:        m.CompanyID,
		RoleID:           m.RoleID,
		SubscriptionType: m.SubscriptionType,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
