package user

import "github.com/mohspitality/hospitality-management/internal/core/common/validation"

type CreateStaffDTO struct {
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	FullName   string `json:"full_name"`
	Department string `json:"department,omitempty"`
}

func (d CreateStaffDTO) Validate() error {
	if err := validation.ValidateEmailAddress(d.Email); err != nil {
		return err
	}
	if err := validation.ValidateResourceName("full_name", d.FullName); err != nil {
		return err
	}
	if d.Password != "" {
		if err := validation.ValidatePassword(d.Password); err != nil {
			return err
		}
	}
	return nil
}

// CreateStaffResponse echoes the account and, when the password was
// generated server-side, hands it back exactly once.
type CreateStaffResponse struct {
	Staff             *User  `json:"staff"`
	TemporaryPassword string `json:"temporary_password,omitempty"`
}

type StaffListResponse struct {
	Staff []*User `json:"staff"`
}
