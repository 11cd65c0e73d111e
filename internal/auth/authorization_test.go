package auth_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/mohspitality/hospitality-management/internal"
	"github.com/mohspitality/hospitality-management/internal/auth"
	usermodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/user"
)

var _ = Describe("Authorizer", func() {
	var authorizer *auth.Authorizer

	companyUser := &auth.User{
		ID:       "company-1",
		UserType: usermodel.UserTypeCompany,
	}
	staffWithRole := &auth.User{
		ID:          "staff-1",
		UserType:    usermodel.UserTypeStaff,
		CompanyID:   "company-1",
		RoleName:    "manager",
		Permissions: []string{"create_departments", "view_orders"},
	}
	staffWithoutRole := &auth.User{
		ID:        "staff-2",
		UserType:  usermodel.UserTypeStaff,
		CompanyID: "company-1",
	}

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
		authorizer = auth.NewAuthorizer(logger)
	})

	Describe("HasPermission", func() {
		It("should answer exact snapshot membership", func() {
			Expect(authorizer.HasPermission(staffWithRole, "create_departments")).To(BeTrue())
			Expect(authorizer.HasPermission(staffWithRole, "delete_departments")).To(BeFalse())
		})

		It("should not special-case company accounts", func() {
			Expect(authorizer.HasPermission(companyUser, "create_departments")).To(BeFalse())
		})

		It("should answer false for a nil user", func() {
			Expect(authorizer.HasPermission(nil, "create_departments")).To(BeFalse())
		})

		It("should answer false for a user without a role", func() {
			Expect(authorizer.HasPermission(staffWithoutRole, "view_orders")).To(BeFalse())
		})
	})

	Describe("RequirePermission", func() {
		It("should let a company account through without a snapshot", func() {
			Expect(authorizer.RequirePermission(companyUser, "create_departments")).To(Succeed())
		})

		It("should let staff through on snapshot membership", func() {
			Expect(authorizer.RequirePermission(staffWithRole, "create_departments")).To(Succeed())
		})

		It("should deny staff missing the permission", func() {
			err := authorizer.RequirePermission(staffWithRole, "delete_departments")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodePermissionDenied))
			Expect(appErr.Message).To(ContainSubstring("delete_departments"))
		})

		It("should deny a nil user", func() {
			err := authorizer.RequirePermission(nil, "create_departments")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("RequireCompany", func() {
		It("should admit company accounts only", func() {
			Expect(authorizer.RequireCompany(companyUser)).To(Succeed())
			Expect(authorizer.RequireCompany(staffWithRole)).To(Equal(internal.ErrCompanyAdminOnly))
			Expect(authorizer.RequireCompany(nil)).To(Equal(internal.ErrCompanyAdminOnly))
		})
	})

	Describe("EffectiveCompanyID", func() {
		It("should resolve a company account to itself", func() {
			Expect(companyUser.EffectiveCompanyID()).To(Equal("company-1"))
		})

		It("should resolve staff to their company", func() {
			Expect(staffWithRole.EffectiveCompanyID()).To(Equal("company-1"))
		})
	})
})

var _ = Describe("RBAC Middleware", func() {
	var (
		rbacAuthz *auth.RBACAuthorization
		next      http.HandlerFunc
		reached   bool
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
		rbacAuthz = auth.NewRBACAuthorization(auth.NewAuthorizer(logger), logger)
		reached = false
		next = func(w http.ResponseWriter, r *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		}
	})

	serve := func(user *auth.User, permission string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/departments", nil)
		if user != nil {
			req = req.WithContext(auth.ContextWithUser(req.Context(), user))
		}
		recorder := httptest.NewRecorder()
		rbacAuthz.Check(next, permission)(recorder, req)
		return recorder
	}

	It("should answer 401 when no user is on the context", func() {
		recorder := serve(nil, "create_departments")

		Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		Expect(reached).To(BeFalse())
	})

	It("should answer 403 when the snapshot lacks the permission", func() {
		recorder := serve(&auth.User{
			ID:        "staff-1",
			UserType:  usermodel.UserTypeStaff,
			CompanyID: "company-1",
		}, "create_departments")

		Expect(recorder.Code).To(Equal(http.StatusForbidden))
		Expect(reached).To(BeFalse())
	})

	It("should pass the request through on a granted permission", func() {
		recorder := serve(&auth.User{
			ID:          "staff-1",
			UserType:    usermodel.UserTypeStaff,
			CompanyID:   "company-1",
			Permissions: []string{"create_departments"},
		}, "create_departments")

		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(reached).To(BeTrue())
	})

	It("should pass a company account through any permission gate", func() {
		recorder := serve(&auth.User{
			ID:       "company-1",
			UserType: usermodel.UserTypeCompany,
		}, "delete_no_post_list")

		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(reached).To(BeTrue())
	})

	Describe("RequireCompanyAccount", func() {
		It("should block staff from company-only routes", func() {
			req := httptest.NewRequest(http.MethodPost, "/users/staff", nil)
			req = req.WithContext(auth.ContextWithUser(req.Context(), &auth.User{
				ID:        "staff-1",
				UserType:  usermodel.UserTypeStaff,
				CompanyID: "company-1",
			}))
			recorder := httptest.NewRecorder()

			rbacAuthz.RequireCompanyAccount()(next).ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusForbidden))
			Expect(reached).To(BeFalse())
		})

		It("should admit a company account", func() {
			req := httptest.NewRequest(http.MethodPost, "/users/staff", nil)
			req = req.WithContext(auth.ContextWithUser(req.Context(), &auth.User{
				ID:       "company-1",
				UserType: usermodel.UserTypeCompany,
			}))
			recorder := httptest.NewRecorder()

			rbacAuthz.RequireCompanyAccount()(next).ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(reached).To(BeTrue())
		})
	})
})
