package rbac

import (
	internal "github.com/mohspitality/hospitality-management/internal"
	"github.com/mohspitality/hospitality-management/internal/core/common/validation"
)

type CreateRoleDTO struct {
	Name string `json:"name"`
}

func (d CreateRoleDTO) Validate() error {
	if err := validation.ValidateResourceName("name", d.Name); err != nil {
		return err
	}
	return nil
}

// SetPermissionsDTO carries the full replacement list. Order is preserved
// into the stored snapshot.
type SetPermissionsDTO struct {
	Permissions []string `json:"permissions"`
}

func (d SetPermissionsDTO) Validate() error {
	if d.Permissions == nil {
		return internal.NewValidationError("permissions list is required", internal.ErrCodeValidationFailed)
	}
	for _, name := range d.Permissions {
		if name == "" {
			return internal.NewValidationError("permission names must not be empty", internal.ErrCodeValidationFailed)
		}
	}
	return nil
}

type AssignRoleDTO struct {
	RoleID int64 `json:"role_id"`
}

func (d AssignRoleDTO) Validate() error {
	if d.RoleID <= 0 {
		return internal.NewValidationError("role_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type PermissionsResponse struct {
	Permissions []*Permission `json:"permissions"`
}

type RolesResponse struct {
	Roles []*Role `json:"roles"`
}
