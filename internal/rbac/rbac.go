package rbac

import (
	"fmt"
	"time"

	rbacmodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/rbac"
)

// Action and Resource span the permission catalog. The catalog is exactly
// their cross-product: every pair exists, nothing else does.
type Action string

const (
	ActionCreate Action = "create"
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Resource string

const (
	ResourceDepartments Resource = "departments"
	ResourceOutlets     Resource = "outlets"
	ResourceNoPostList  Resource = "no_post_list"
	ResourceQRCodes     Resource = "qrcodes"
	ResourceStaff       Resource = "staff"
	ResourceRoles       Resource = "roles"
	ResourceOrders      Resource = "orders"
	ResourceInventory   Resource = "inventory"
)

func AllActions() []Action {
	return []Action{ActionCreate, ActionView, ActionUpdate, ActionDelete}
}

func AllResources() []Resource {
	return []Resource{
		ResourceDepartments,
		ResourceOutlets,
		ResourceNoPostList,
		ResourceQRCodes,
		ResourceStaff,
		ResourceRoles,
		ResourceOrders,
		ResourceInventory,
	}
}

// PermissionName builds the canonical permission identifier.
func PermissionName(action Action, resource Resource) string {
	return fmt.Sprintf("%s_%s", action, resource)
}

// PermissionDescription is the human-readable form stored next to the name.
func PermissionDescription(action Action, resource Resource) string {
	return fmt.Sprintf("%s %s", action, resource)
}

// AllPermissionNames returns the full catalog in enum order.
func AllPermissionNames() []string {
	names := make([]string, 0, len(AllActions())*len(AllResources()))
	for _, action := range AllActions() {
		for _, resource := range AllResources() {
			names = append(names, PermissionName(action, resource))
		}
	}
	return names
}

// Gate names used by services and route middleware. Kept as plain constants
// so call sites read naturally; a test pins them to the generated catalog.
const (
	PermCreateDepartments = "create_departments"
	PermDeleteDepartments = "delete_departments"
	PermCreateOutlets     = "create_outlets"
	PermDeleteOutlets     = "delete_outlets"
	PermDeleteNoPostList  = "delete_no_post_list"
	PermCreateQRCodes     = "create_qrcodes"
)

type Permission struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Role is a company-scoped bundle of permissions. Its snapshot is
// denormalized into the row and replaced wholesale by SetRolePermissions.
type Role struct {
	ID          int64                          `json:"id"`
	Name        string                         `json:"name"`
	CompanyID   string                         `json:"company_id"`
	Permissions []rbacmodel.PermissionSnapshot `json:"permissions"`
	CreatedAt   time.Time                      `json:"created_at"`
	UpdatedAt   time.Time                      `json:"updated_at"`
}

func PermissionFromDataModel(p *rbacmodel.Permission) *Permission {
	return &Permission{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

func RoleFromDataModel(r *rbacmodel.Role) *Role {
	permissions := make([]rbacmodel.PermissionSnapshot, len(r.UserPermissions))
	copy(permissions, r.UserPermissions)
	return &Role{
		ID:          r.ID,
		Name:        r.Name,
		CompanyID:   r.CompanyID,
		Permissions: permissions,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func RoleToDataModel(r *Role) *rbacmodel.Role {
	return &rbacmodel.Role{
		ID:              r.ID,
		Name:            r.Name,
		CompanyID:       r.CompanyID,
		UserPermissions: rbacmodel.PermissionList(r.Permissions),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
