package auth

import (
	"log/slog"

	internal "github.com/mohspitality/hospitality-management/internal"
)

// Authorizer is the single place access decisions are made. Services call it
// before any mutating tenant-scoped write; the route middleware wraps the
// same instance, so both layers agree by construction.
type Authorizer struct {
	logger *slog.Logger
}

func NewAuthorizer(logger *slog.Logger) *Authorizer {
	return &Authorizer{logger: logger}
}

// HasPermission is the pure snapshot predicate: exact membership of the
// permission name in the user's loaded role snapshot. No user-type special
// cases here.
func (a *Authorizer) HasPermission(user *User, permission string) bool {
	if user == nil {
		return false
	}
	return user.HasPermission(permission)
}

// RequirePermission gates mutating operations. Company accounts are the root
// authority of their own tenant and pass without a role; everyone else needs
// the permission in their snapshot. Reads are not gated anywhere.
func (a *Authorizer) RequirePermission(user *User, permission string) error {
	if user == nil {
		return internal.NewPermissionDeniedError(permission)
	}
	if user.IsCompany() {
		return nil
	}
	if !a.HasPermission(user, permission) {
		a.logger.Warn("permission denied",
			"user_id", user.ID,
			"required_permission", permission,
			"role", user.RoleName)
		return internal.NewPermissionDeniedError(permission)
	}
	return nil
}

// RequireCompany restricts operations reserved for company accounts, such as
// role creation and staff provisioning.
func (a *Authorizer) RequireCompany(user *User) error {
	if user == nil || !user.IsCompany() {
		return internal.ErrCompanyAdminOnly
	}
	return nil
}
