package auth

import (
	"log/slog"
	"net/http"
)

// RBACAuthorization adapts the Authorizer to route middleware. Handlers
// behind Middleware(permission) still re-check in the service layer; the
// middleware exists to fail fast and keep denied requests out of handlers.
type RBACAuthorization struct {
	authorizer *Authorizer
	logger     *slog.Logger
}

func NewRBACAuthorization(authorizer *Authorizer, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		authorizer: authorizer,
		logger:     logger,
	}
}

func (ra *RBACAuthorization) Check(next http.HandlerFunc, permission string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user == nil {
			ra.logger.Warn("authorization check failed: user not found in context")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if err := ra.authorizer.RequirePermission(user, permission); err != nil {
			ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
				"user_id", user.ID,
				"required_permission", permission,
				"user_permissions", user.Permissions)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	}
}

func (ra *RBACAuthorization) Middleware(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.Check(next.ServeHTTP, permission)
	}
}

// RequireCompanyAccount guards routes only company accounts may call.
func (ra *RBACAuthorization) RequireCompanyAccount() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if err := ra.authorizer.RequireCompany(user); err != nil {
				ra.logger.WarnContext(r.Context(), "access denied: company account required",
					"user_id", user.ID,
					"user_type", user.UserType)
				http.Error(w, "Forbidden: company account required", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
