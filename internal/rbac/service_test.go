package rbac_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	internal "github.com/mohspitality/hospitality-management/internal"
	"github.com/mohspitality/hospitality-management/internal/auth"
	rbacmodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/rbac"
	usermodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/user"
	"github.com/mohspitality/hospitality-management/internal/rbac"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockRoleRepository implements rbac.RepositoryAPI for testing
type MockRoleRepository struct {
	roles       map[int64]*rbacmodel.Role
	users       map[string]*usermodel.User
	nextID      int64
	updateCalls int
	shouldFail  bool
	failError   error
}

func NewMockRoleRepository() *MockRoleRepository {
	return &MockRoleRepository{
		roles:  make(map[int64]*rbacmodel.Role),
		users:  make(map[string]*usermodel.User),
		nextID: 1,
	}
}

func (m *MockRoleRepository) CreateRole(role *rbacmodel.Role) error {
	if m.shouldFail {
		return m.failError
	}
	for _, existing := range m.roles {
		if existing.CompanyID == role.CompanyID && existing.Name == role.Name {
			return fmt.Errorf(`duplicate key value violates unique constraint "role_name"`)
		}
	}
	role.ID = m.nextID
	m.nextID++
	m.roles[role.ID] = role
	return nil
}

func (m *MockRoleRepository) GetRoleByName(companyID, name string) (*rbacmodel.Role, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, role := range m.roles {
		if role.CompanyID == companyID && role.Name == name {
			return role, nil
		}
	}
	return nil, nil
}

func (m *MockRoleRepository) GetRoleByID(companyID string, roleID int64) (*rbacmodel.Role, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	role, ok := m.roles[roleID]
	if !ok || role.CompanyID != companyID {
		return nil, nil
	}
	return role, nil
}

func (m *MockRoleRepository) ListRolesByCompany(companyID string) ([]*rbacmodel.Role, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*rbacmodel.Role
	for id := int64(1); id < m.nextID; id++ {
		if role, ok := m.roles[id]; ok && role.CompanyID == companyID {
			result = append(result, role)
		}
	}
	return result, nil
}

func (m *MockRoleRepository) UpdateRolePermissions(roleID int64, permissions rbacmodel.PermissionList) error {
	if m.shouldFail {
		return m.failError
	}
	role, ok := m.roles[roleID]
	if !ok {
		return internal.ErrRoleNotFound
	}
	m.updateCalls++
	role.UserPermissions = permissions
	return nil
}

func (m *MockRoleRepository) GetUserByID(userID string) (*usermodel.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	user, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (m *MockRoleRepository) AssignRoleToUser(userID string, roleID int64) error {
	if m.shouldFail {
		return m.failError
	}
	user, ok := m.users[userID]
	if !ok {
		return internal.ErrUserNotFound
	}
	user.RoleID = &roleID
	return nil
}

func (m *MockRoleRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRoleRepository) AddUser(u *usermodel.User) {
	m.users[u.ID] = u
}

var _ = Describe("Role Service", func() {
	var (
		mockRepo     *MockRoleRepository
		catalogRepo  *MockCatalogRepository
		service      *rbac.Service
		authorizer   *auth.Authorizer
		logger       *slog.Logger
		companyActor *auth.User
		staffActor   *auth.User
	)

	BeforeEach(func() {
		mockRepo = NewMockRoleRepository()
		catalogRepo = NewMockCatalogRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		authorizer = auth.NewAuthorizer(logger)

		catalog := rbac.NewCatalog(catalogRepo, logger)
		_, err := catalog.Reconcile(context.Background())
		Expect(err).NotTo(HaveOccurred())

		service = rbac.NewService(mockRepo, catalog, authorizer, logger)

		companyActor = &auth.User{
			ID:       "company-1",
			Email:    "owner@hotel.test",
			UserType: usermodel.UserTypeCompany,
		}
		staffActor = &auth.User{
			ID:        "staff-1",
			Email:     "staff@hotel.test",
			UserType:  usermodel.UserTypeStaff,
			CompanyID: "company-1",
		}
	})

	Describe("CreateRole", func() {
		Context("when the actor is a company account", func() {
			It("should create an empty role under the actor's own id", func() {
				role, err := service.CreateRole(companyActor, rbac.CreateRoleDTO{Name: "waiter"})
				Expect(err).NotTo(HaveOccurred())
				Expect(role.ID).To(BeNumerically(">", 0))
				Expect(role.Name).To(Equal("waiter"))
				Expect(role.CompanyID).To(Equal("company-1"))
				Expect(role.Permissions).To(BeEmpty())
			})

			It("should trim surrounding whitespace from the name", func() {
				role, err := service.CreateRole(companyActor, rbac.CreateRoleDTO{Name: "  concierge  "})
				Expect(err).NotTo(HaveOccurred())
				Expect(role.Name).To(Equal("concierge"))
			})
		})

		Context("when the actor is a staff account", func() {
			It("should refuse with company-admin-only", func() {
				role, err := service.CreateRole(staffActor, rbac.CreateRoleDTO{Name: "waiter"})
				Expect(role).To(BeNil())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeCompanyAdminOnly))
			})
		})

		Context("when the name is blank", func() {
			It("should fail validation", func() {
				role, err := service.CreateRole(companyActor, rbac.CreateRoleDTO{Name: ""})
				Expect(role).To(BeNil())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
			})
		})

		Context("when the name is already used in the company", func() {
			BeforeEach(func() {
				_, err := service.CreateRole(companyActor, rbac.CreateRoleDTO{Name: "waiter"})
				Expect(err).NotTo(HaveOccurred())
			})

			It("should fail with a role conflict", func() {
				role, err := service.CreateRole(companyActor, rbac.CreateRoleDTO{Name: "waiter"})
				Expect(role).To(BeNil())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeRoleAlreadyExists))
			})

			It("should still allow the same name under another company", func() {
				otherCompany := &auth.User{ID: "company-2", UserType: usermodel.UserTypeCompany}

				role, err := service.CreateRole(otherCompany, rbac.CreateRoleDTO{Name: "waiter"})
				Expect(err).NotTo(HaveOccurred())
				Expect(role.CompanyID).To(Equal("company-2"))
			})
		})

		Context("when the repository fails", func() {
			BeforeEach(func() {
				mockRepo.SetShouldFail(true, errors.New("database error"))
			})

			It("should wrap the failure as an internal error", func() {
				role, err := service.CreateRole(companyActor, rbac.CreateRoleDTO{Name: "waiter"})
				Expect(role).To(BeNil())
				Expect(err).To(HaveOccurred())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(500))
			})
		})
	})

	Describe("SetRolePermissions", func() {
		var roleID int64

		BeforeEach(func() {
			role, err := service.CreateRole(companyActor, rbac.CreateRoleDTO{Name: "waiter"})
			Expect(err).NotTo(HaveOccurred())
			roleID = role.ID
		})

		It("should snapshot id, name and description in caller order", func() {
			updated, err := service.SetRolePermissions(companyActor, roleID, rbac.SetPermissionsDTO{
				Permissions: []string{"view_orders", "create_departments"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Permissions).To(HaveLen(2))

			Expect(updated.Permissions[0].Name).To(Equal("view_orders"))
			Expect(updated.Permissions[0].ID).To(BeNumerically(">", 0))
			Expect(updated.Permissions[0].Description).To(Equal("view orders"))
			Expect(updated.Permissions[1].Name).To(Equal("create_departments"))
		})

		It("should replace the previous snapshot wholesale", func() {
			_, err := service.SetRolePermissions(companyActor, roleID, rbac.SetPermissionsDTO{
				Permissions: []string{"view_orders", "update_orders"},
			})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.SetRolePermissions(companyActor, roleID, rbac.SetPermissionsDTO{
				Permissions: []string{"create_qrcodes"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Permissions).To(HaveLen(1))
			Expect(updated.Permissions[0].Name).To(Equal("create_qrcodes"))
		})

		It("should allow clearing the snapshot with an empty list", func() {
			_, err := service.SetRolePermissions(companyActor, roleID, rbac.SetPermissionsDTO{
				Permissions: []string{"view_orders"},
			})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.SetRolePermissions(companyActor, roleID, rbac.SetPermissionsDTO{
				Permissions: []string{},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Permissions).To(BeEmpty())
		})

		Context("when one name is not in the catalog", func() {
			It("should write nothing and fail with unknown-permission", func() {
				updated, err := service.SetRolePermissions(companyActor, roleID, rbac.SetPermissionsDTO{
					Permissions: []string{"view_orders", "fly_helicopters", "create_departments"},
				})
				Expect(updated).To(BeNil())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeUnknownPermission))
				Expect(appErr.Message).To(ContainSubstring("fly_helicopters"))

				Expect(mockRepo.updateCalls).To(BeZero())

				role, err := service.GetRole(companyActor, roleID)
				Expect(err).NotTo(HaveOccurred())
				Expect(role.Permissions).To(BeEmpty())
			})
		})

		Context("when the role belongs to another company", func() {
			It("should answer not-found without touching the role", func() {
				otherCompany := &auth.User{ID: "company-2", UserType: usermodel.UserTypeCompany}

				updated, err := service.SetRolePermissions(otherCompany, roleID, rbac.SetPermissionsDTO{
					Permissions: []string{"view_orders"},
				})
				Expect(updated).To(BeNil())
				Expect(err).To(Equal(internal.ErrRoleNotFound))
				Expect(mockRepo.updateCalls).To(BeZero())
			})
		})
	})

	Describe("GetRole", func() {
		var roleID int64

		BeforeEach(func() {
			role, err := service.CreateRole(companyActor, rbac.CreateRoleDTO{Name: "chef"})
			Expect(err).NotTo(HaveOccurred())
			roleID = role.ID
		})

		It("should return the company's own role", func() {
			role, err := service.GetRole(companyActor, roleID)
			Expect(err).NotTo(HaveOccurred())
			Expect(role.Name).To(Equal("chef"))
		})

		It("should resolve the staff actor to the same tenant", func() {
			role, err := service.GetRole(staffActor, roleID)
			Expect(err).NotTo(HaveOccurred())
			Expect(role.Name).To(Equal("chef"))
		})

		It("should answer not-found for another tenant's role id", func() {
			otherCompany := &auth.User{ID: "company-2", UserType: usermodel.UserTypeCompany}

			role, err := service.GetRole(otherCompany, roleID)
			Expect(role).To(BeNil())
			Expect(err).To(Equal(internal.ErrRoleNotFound))
		})
	})

	Describe("ListCompanyRoles", func() {
		BeforeEach(func() {
			_, err := service.CreateRole(companyActor, rbac.CreateRoleDTO{Name: "waiter"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CreateRole(companyActor, rbac.CreateRoleDTO{Name: "chef"})
			Expect(err).NotTo(HaveOccurred())

			otherCompany := &auth.User{ID: "company-2", UserType: usermodel.UserTypeCompany}
			_, err = service.CreateRole(otherCompany, rbac.CreateRoleDTO{Name: "barista"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should list only the actor's company roles in creation order", func() {
			roles, err := service.ListCompanyRoles(companyActor)
			Expect(err).NotTo(HaveOccurred())
			Expect(roles).To(HaveLen(2))
			Expect(roles[0].Name).To(Equal("waiter"))
			Expect(roles[1].Name).To(Equal("chef"))
		})
	})

	Describe("AssignRole", func() {
		var roleID int64

		BeforeEach(func() {
			role, err := service.CreateRole(companyActor, rbac.CreateRoleDTO{Name: "waiter"})
			Expect(err).NotTo(HaveOccurred())
			roleID = role.ID

			companyID := "company-1"
			otherCompanyID := "company-2"
			mockRepo.AddUser(&usermodel.User{
				ID:        "staff-1",
				Email:     "staff@hotel.test",
				UserType:  string(usermodel.UserTypeStaff),
				CompanyID: &companyID,
			})
			mockRepo.AddUser(&usermodel.User{
				ID:        "staff-2",
				Email:     "staff@other.test",
				UserType:  string(usermodel.UserTypeStaff),
				CompanyID: &otherCompanyID,
			})
			mockRepo.AddUser(&usermodel.User{
				ID:       "company-1",
				Email:    "owner@hotel.test",
				UserType: string(usermodel.UserTypeCompany),
			})
		})

		It("should point the staff account at the role", func() {
			err := service.AssignRole(companyActor, "staff-1", rbac.AssignRoleDTO{RoleID: roleID})
			Expect(err).NotTo(HaveOccurred())

			Expect(mockRepo.users["staff-1"].RoleID).NotTo(BeNil())
			Expect(*mockRepo.users["staff-1"].RoleID).To(Equal(roleID))
		})

		It("should answer role-not-found when the role is another company's", func() {
			otherCompany := &auth.User{ID: "company-2", UserType: usermodel.UserTypeCompany}

			err := service.AssignRole(otherCompany, "staff-2", rbac.AssignRoleDTO{RoleID: roleID})
			Expect(err).To(Equal(internal.ErrRoleNotFound))
		})

		It("should answer user-not-found when the target belongs to another company", func() {
			err := service.AssignRole(companyActor, "staff-2", rbac.AssignRoleDTO{RoleID: roleID})
			Expect(err).To(Equal(internal.ErrUserNotFound))
			Expect(mockRepo.users["staff-2"].RoleID).To(BeNil())
		})

		It("should answer user-not-found when the target is not a staff account", func() {
			err := service.AssignRole(companyActor, "company-1", rbac.AssignRoleDTO{RoleID: roleID})
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})

		It("should answer user-not-found for an unknown target", func() {
			err := service.AssignRole(companyActor, "ghost", rbac.AssignRoleDTO{RoleID: roleID})
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})

		It("should reject a missing role id", func() {
			err := service.AssignRole(companyActor, "staff-1", rbac.AssignRoleDTO{})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})
	})

	Describe("granting a permission end to end", func() {
		It("should flow from role creation to an authorized staff member", func() {
			companyID := "company-1"
			mockRepo.AddUser(&usermodel.User{
				ID:        "staff-1",
				Email:     "staff@hotel.test",
				UserType:  string(usermodel.UserTypeStaff),
				CompanyID: &companyID,
			})

			role, err := service.CreateRole(companyActor, rbac.CreateRoleDTO{Name: "waiter"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateRole(companyActor, rbac.CreateRoleDTO{Name: "waiter"})
			Expect(err).To(HaveOccurred())

			err = service.AssignRole(companyActor, "staff-1", rbac.AssignRoleDTO{RoleID: role.ID})
			Expect(err).NotTo(HaveOccurred())

			// Principal as the middleware would load it: empty snapshot.
			principal := &auth.User{
				ID:        "staff-1",
				UserType:  usermodel.UserTypeStaff,
				CompanyID: "company-1",
				RoleID:    &role.ID,
				RoleName:  role.Name,
			}
			Expect(authorizer.HasPermission(principal, rbac.PermCreateDepartments)).To(BeFalse())
			Expect(authorizer.RequirePermission(principal, rbac.PermCreateDepartments)).To(HaveOccurred())

			updated, err := service.SetRolePermissions(companyActor, role.ID, rbac.SetPermissionsDTO{
				Permissions: []string{rbac.PermCreateDepartments},
			})
			Expect(err).NotTo(HaveOccurred())

			// Reloaded principal carries the new snapshot.
			names := make([]string, len(updated.Permissions))
			for i, p := range updated.Permissions {
				names[i] = p.Name
			}
			principal.Permissions = names

			Expect(authorizer.HasPermission(principal, rbac.PermCreateDepartments)).To(BeTrue())
			Expect(authorizer.RequirePermission(principal, rbac.PermCreateDepartments)).To(Succeed())
		})

		It("should let a company account pass gates without any role", func() {
			Expect(authorizer.HasPermission(companyActor, rbac.PermCreateDepartments)).To(BeFalse())
			Expect(authorizer.RequirePermission(companyActor, rbac.PermCreateDepartments)).To(Succeed())
		})
	})
})
