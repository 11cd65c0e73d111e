package postgres_test

import (
	"testing"
	"time"

	internal "github.com/mohspitality/hospitality-management/internal"
	rbacmodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/rbac"
	usermodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/user"
	rbacPostgres "github.com/mohspitality/hospitality-management/internal/rbac/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRBACPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RBAC Postgres Suite")
}

// SQLite-compatible models for testing

type SQLitePermission struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (SQLitePermission) TableName() string {
	return "permissions"
}

type SQLiteRole struct {
	ID              int64                    `gorm:"primaryKey"`
	Name            string                   `gorm:"column:name;not null;uniqueIndex:role_name"`
	CompanyID       string                   `gorm:"column:company_id;not null;uniqueIndex:role_name"`
	UserPermissions rbacmodel.PermissionList `gorm:"column:user_permissions;type:text;not null"`
	CreatedAt       time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

func (SQLiteRole) TableName() string {
	return "roles"
}

type SQLiteUser struct {
	ID               string    `gorm:"primaryKey;column:id"`
	Email            string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash     string    `gorm:"column:password_hash"`
	UserType         string    `gorm:"column:user_type;not null"`
	CompanyID        *string   `gorm:"column:company_id"`
	RoleID           *int64    `gorm:"column:role_id"`
	SubscriptionType string    `gorm:"column:subscription_type;default:trial"`
	IsActive         bool      `gorm:"column:is_active;default:true"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (SQLiteUser) TableName() string {
	return "users"
}

var _ = Describe("RBAC PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo *rbacPostgres.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLitePermission{}, &SQLiteRole{}, &SQLiteUser{})
		Expect(err).NotTo(HaveOccurred())

		repo = rbacPostgres.NewRepository(db)
	})

	Describe("permissions", func() {
		It("should create and list in id order", func() {
			Expect(repo.CreatePermission(&rbacmodel.Permission{Name: "create_departments", Description: "create departments"})).To(Succeed())
			Expect(repo.CreatePermission(&rbacmodel.Permission{Name: "view_departments", Description: "view departments"})).To(Succeed())

			permissions, err := repo.ListPermissions()
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(HaveLen(2))
			Expect(permissions[0].Name).To(Equal("create_departments"))
			Expect(permissions[1].Name).To(Equal("view_departments"))
		})

		It("should enforce unique names", func() {
			Expect(repo.CreatePermission(&rbacmodel.Permission{Name: "view_orders"})).To(Succeed())

			err := repo.CreatePermission(&rbacmodel.Permission{Name: "view_orders"})
			Expect(err).To(HaveOccurred())
			Expect(internal.IsDuplicateKey(err)).To(BeTrue())
		})

		It("should answer nil for an absent name", func() {
			perm, err := repo.GetPermissionByName("no_such_permission")
			Expect(err).NotTo(HaveOccurred())
			Expect(perm).To(BeNil())
		})
	})

	Describe("roles", func() {
		It("should create a role with an empty snapshot", func() {
			role := &rbacmodel.Role{
				Name:            "waiter",
				CompanyID:       "company-1",
				UserPermissions: rbacmodel.PermissionList{},
			}

			Expect(repo.CreateRole(role)).To(Succeed())
			Expect(role.ID).To(BeNumerically(">", 0))
		})

		It("should enforce the per-company name constraint", func() {
			Expect(repo.CreateRole(&rbacmodel.Role{
				Name: "waiter", CompanyID: "company-1", UserPermissions: rbacmodel.PermissionList{},
			})).To(Succeed())

			err := repo.CreateRole(&rbacmodel.Role{
				Name: "waiter", CompanyID: "company-1", UserPermissions: rbacmodel.PermissionList{},
			})
			Expect(err).To(HaveOccurred())
			Expect(internal.IsDuplicateKey(err)).To(BeTrue())
		})

		It("should allow the same name under different companies", func() {
			Expect(repo.CreateRole(&rbacmodel.Role{
				Name: "waiter", CompanyID: "company-1", UserPermissions: rbacmodel.PermissionList{},
			})).To(Succeed())
			Expect(repo.CreateRole(&rbacmodel.Role{
				Name: "waiter", CompanyID: "company-2", UserPermissions: rbacmodel.PermissionList{},
			})).To(Succeed())
		})

		It("should scope lookups to the owning company", func() {
			role := &rbacmodel.Role{Name: "chef", CompanyID: "company-1", UserPermissions: rbacmodel.PermissionList{}}
			Expect(repo.CreateRole(role)).To(Succeed())

			found, err := repo.GetRoleByID("company-1", role.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())

			foreign, err := repo.GetRoleByID("company-2", role.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(foreign).To(BeNil())
		})

		It("should persist a replaced snapshot through the json column", func() {
			role := &rbacmodel.Role{Name: "chef", CompanyID: "company-1", UserPermissions: rbacmodel.PermissionList{}}
			Expect(repo.CreateRole(role)).To(Succeed())

			snapshot := rbacmodel.PermissionList{
				{ID: 7, Name: "view_orders", Description: "view orders"},
				{ID: 3, Name: "create_departments", Description: "create departments"},
			}
			Expect(repo.UpdateRolePermissions(role.ID, snapshot)).To(Succeed())

			reloaded, err := repo.GetRoleByID("company-1", role.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.UserPermissions).To(HaveLen(2))
			Expect(reloaded.UserPermissions[0].ID).To(Equal(int64(7)))
			Expect(reloaded.UserPermissions[0].Name).To(Equal("view_orders"))
			Expect(reloaded.UserPermissions[1].Name).To(Equal("create_departments"))
		})

		It("should report not-found when updating an absent role", func() {
			err := repo.UpdateRolePermissions(9999, rbacmodel.PermissionList{})
			Expect(err).To(Equal(internal.ErrRoleNotFound))
		})

		It("should list a company's roles in id order", func() {
			Expect(repo.CreateRole(&rbacmodel.Role{Name: "waiter", CompanyID: "company-1", UserPermissions: rbacmodel.PermissionList{}})).To(Succeed())
			Expect(repo.CreateRole(&rbacmodel.Role{Name: "chef", CompanyID: "company-1", UserPermissions: rbacmodel.PermissionList{}})).To(Succeed())
			Expect(repo.CreateRole(&rbacmodel.Role{Name: "barista", CompanyID: "company-2", UserPermissions: rbacmodel.PermissionList{}})).To(Succeed())

			roles, err := repo.ListRolesByCompany("company-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(roles).To(HaveLen(2))
			Expect(roles[0].Name).To(Equal("waiter"))
			Expect(roles[1].Name).To(Equal("chef"))
		})
	})

	Describe("role assignment", func() {
		BeforeEach(func() {
			companyID := "company-1"
			Expect(db.Create(&SQLiteUser{
				ID:        "staff-1",
				Email:     "staff@hotel.test",
				UserType:  string(usermodel.UserTypeStaff),
				CompanyID: &companyID,
				IsActive:  true,
			}).Error).To(Succeed())
		})

		It("should set the role id on the user row", func() {
			role := &rbacmodel.Role{Name: "waiter", CompanyID: "company-1", UserPermissions: rbacmodel.PermissionList{}}
			Expect(repo.CreateRole(role)).To(Succeed())

			Expect(repo.AssignRoleToUser("staff-1", role.ID)).To(Succeed())

			user, err := repo.GetUserByID("staff-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.RoleID).NotTo(BeNil())
			Expect(*user.RoleID).To(Equal(role.ID))
		})

		It("should report not-found for an absent user", func() {
			err := repo.AssignRoleToUser("ghost", 1)
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})

		It("should answer nil for an absent user lookup", func() {
			user, err := repo.GetUserByID("ghost")
			Expect(err).NotTo(HaveOccurred())
			Expect(user).To(BeNil())
		})
	})
})
