package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/mohspitality/hospitality-management/internal/auth"
	"github.com/mohspitality/hospitality-management/internal/department"
	"github.com/mohspitality/hospitality-management/internal/nopost"
	"github.com/mohspitality/hospitality-management/internal/outlet"
	"github.com/mohspitality/hospitality-management/internal/profile"
	"github.com/mohspitality/hospitality-management/internal/qrcode"
	"github.com/mohspitality/hospitality-management/internal/rbac"
	"github.com/mohspitality/hospitality-management/internal/transport/middleware"
	"github.com/mohspitality/hospitality-management/internal/transport/swagger"
	"github.com/mohspitality/hospitality-management/internal/user"
)

// Handlers bundles everything RegisterAllRoutes mounts. Nil entries are
// skipped so tests can register a partial surface.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	RBAC       *rbac.Handler
	Department *department.Handler
	Outlet     *outlet.Handler
	NoPost     *nopost.Handler
	Profile    *profile.Handler
	QRCode     *qrcode.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, rbacAuthz *auth.RBACAuthorization, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/register", h.Auth.Register)
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				sr.Post("/logout", h.Auth.Logout)
				sr.Post("/password-reset/request", h.Auth.RequestPasswordReset)
				sr.Post("/password-reset/confirm", h.Auth.ConfirmPasswordReset)
			})
		}

		// The catalog is reference data, served without auth.
		if h.RBAC != nil {
			r.Get("/permissions", h.RBAC.ListAllPermissions)
		}

		if h.Auth == nil {
			return
		}

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(middleware.UserContext)

			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)
				pr.Get("/users/staff", h.User.ListStaff)
				pr.Group(func(cr chi.Router) {
					cr.Use(rbacAuthz.RequireCompanyAccount())
					cr.Post("/users/staff", h.User.CreateStaff)
				})
			}

			if h.RBAC != nil {
				pr.Put("/users/{userID}/role", h.RBAC.AssignRoleToStaff)

				pr.Route("/roles", func(rr chi.Router) {
					rr.Get("/", h.RBAC.ListCompanyRoles)
					rr.Get("/{roleID}", h.RBAC.GetRole)
					rr.Put("/{roleID}/permissions", h.RBAC.UpdateRolePermissions)

					rr.Group(func(cr chi.Router) {
						cr.Use(rbacAuthz.RequireCompanyAccount())
						cr.Post("/", h.RBAC.CreateStaffRole)
					})
				})
			}

			if h.Department != nil {
				pr.Route("/departments", func(dr chi.Router) {
					dr.Get("/", h.Department.ListDepartments)

					dr.Group(func(gr chi.Router) {
						gr.Use(rbacAuthz.Middleware(rbac.PermCreateDepartments))
						gr.Post("/", h.Department.CreateDepartment)
					})
					dr.Group(func(gr chi.Router) {
						gr.Use(rbacAuthz.Middleware(rbac.PermDeleteDepartments))
						gr.Delete("/{id}", h.Department.DeleteDepartment)
					})
				})
			}

			if h.Outlet != nil {
				pr.Route("/outlets", func(or chi.Router) {
					or.Get("/", h.Outlet.ListOutlets)

					or.Group(func(gr chi.Router) {
						gr.Use(rbacAuthz.Middleware(rbac.PermCreateOutlets))
						gr.Post("/", h.Outlet.CreateOutlet)
					})
					or.Group(func(gr chi.Router) {
						gr.Use(rbacAuthz.Middleware(rbac.PermDeleteOutlets))
						gr.Delete("/{id}", h.Outlet.DeleteOutlet)
					})
				})
			}

			if h.NoPost != nil {
				pr.Route("/no-post-list", func(nr chi.Router) {
					// Upsert carries no permission gate on purpose.
					nr.Put("/", h.NoPost.UpsertNoPostList)
					nr.Get("/", h.NoPost.ListNoPostLists)

					nr.Group(func(gr chi.Router) {
						gr.Use(rbacAuthz.Middleware(rbac.PermDeleteNoPostList))
						gr.Delete("/{id}", h.NoPost.DeleteNoPostList)
					})
				})
			}

			if h.QRCode != nil {
				pr.Route("/qrcodes", func(qr chi.Router) {
					qr.Get("/", h.QRCode.ListBatches)

					qr.Group(func(gr chi.Router) {
						gr.Use(rbacAuthz.Middleware(rbac.PermCreateQRCodes))
						gr.Post("/", h.QRCode.CreateBatch)
					})
				})
			}

			if h.Profile != nil {
				pr.Route("/profiles", func(fr chi.Router) {
					fr.Post("/user", h.Profile.CreateUserProfile)
					fr.Get("/user", h.Profile.GetUserProfile)
					fr.Get("/company", h.Profile.GetCompanyProfile)

					fr.Group(func(cr chi.Router) {
						cr.Use(rbacAuthz.RequireCompanyAccount())
						cr.Post("/company", h.Profile.CreateCompanyProfile)
						cr.Put("/company", h.Profile.UpdateCompanyProfile)
						cr.Put("/company/payment-gateway", h.Profile.UpdatePaymentGateway)
					})
				})
			}
		})
	})
}
