package user_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	internal "github.com/mohspitality/hospitality-management/internal"
	"github.com/mohspitality/hospitality-management/internal/auth"
	profilemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/profile"
	usermodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/user"
	"github.com/mohspitality/hospitality-management/internal/core/events"
	"github.com/mohspitality/hospitality-management/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

// MockUserRepository is an in-memory stand-in for the postgres repository.
type MockUserRepository struct {
	accounts    map[string]*usermodel.User
	profiles    map[string]*profilemodel.UserProfile
	withRole    map[string]*user.User
	dupOnCreate bool
	shouldFail  bool
	failError   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		accounts: make(map[string]*usermodel.User),
		profiles: make(map[string]*profilemodel.UserProfile),
		withRole: make(map[string]*user.User),
	}
}

func (m *MockUserRepository) SetShouldFail(fail bool, err error) {
	m.shouldFail = fail
	m.failError = err
}

func (m *MockUserRepository) GetUserWithRole(userID string) (*user.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	if u, ok := m.withRole[userID]; ok {
		return u, nil
	}
	return nil, nil
}

func (m *MockUserRepository) GetByEmail(email string) (*usermodel.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, u := range m.accounts {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) CreateStaffWithProfile(u *usermodel.User, p *profilemodel.UserProfile) error {
	if m.shouldFail {
		return m.failError
	}
	if m.dupOnCreate {
		return errors.New(`duplicate key value violates unique constraint "users_email_key"`)
	}
	m.accounts[u.ID] = u
	m.profiles[u.ID] = p
	return nil
}

func (m *MockUserRepository) ListStaffByCompany(companyID string) ([]*user.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	staff := make([]*user.User, 0)
	for _, u := range m.withRole {
		if u.CompanyID != nil && *u.CompanyID == companyID && u.UserType == string(usermodel.UserTypeStaff) {
			staff = append(staff, u)
		}
	}
	return staff, nil
}

var _ = Describe("User Service", func() {
	var (
		service  *user.Service
		mockRepo *MockUserRepository
		eventBus *events.EventBus
	)

	companyActor := &auth.User{
		ID:       "company-1",
		UserType: usermodel.UserTypeCompany,
	}
	staffActor := &auth.User{
		ID:        "staff-1",
		UserType:  usermodel.UserTypeStaff,
		CompanyID: "company-1",
	}

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
		mockRepo = NewMockUserRepository()
		eventBus = events.NewEventBus(logger)
		service = user.NewService(mockRepo, auth.NewAuthorizer(logger), eventBus, bcrypt.MinCost, logger)
	})

	Describe("CreateStaff", func() {
		It("should provision a staff account under the acting company", func() {
			resp, err := service.CreateStaff(companyActor, user.CreateStaffDTO{
				Email:    "waiter@demohotel.test",
				Password: "W@iter-Pass1",
				FullName: "Wati Waiter",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Staff.ID).To(HaveLen(32))
			Expect(resp.Staff.UserType).To(Equal("staff"))
			Expect(resp.Staff.CompanyID).NotTo(BeNil())
			Expect(*resp.Staff.CompanyID).To(Equal("company-1"))
			Expect(resp.TemporaryPassword).To(BeEmpty())

			stored := mockRepo.accounts[resp.Staff.ID]
			Expect(auth.VerifyPassword(stored.PasswordHash, "W@iter-Pass1")).To(Succeed())
			Expect(mockRepo.profiles[resp.Staff.ID].FullName).To(Equal("Wati Waiter"))
		})

		It("should generate a temporary password when none is given", func() {
			resp, err := service.CreateStaff(companyActor, user.CreateStaffDTO{
				Email:    "waiter@demohotel.test",
				FullName: "Wati Waiter",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.TemporaryPassword).To(HavePrefix("Tmp1!"))
			Expect(len(resp.TemporaryPassword)).To(BeNumerically(">=", 12))

			stored := mockRepo.accounts[resp.Staff.ID]
			Expect(auth.VerifyPassword(stored.PasswordHash, resp.TemporaryPassword)).To(Succeed())
		})

		It("should lowercase the email", func() {
			resp, err := service.CreateStaff(companyActor, user.CreateStaffDTO{
				Email:    " Waiter@DemoHotel.Test ",
				FullName: "Wati Waiter",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Staff.Email).To(Equal("waiter@demohotel.test"))
		})

		It("should be reserved for company accounts", func() {
			_, err := service.CreateStaff(staffActor, user.CreateStaffDTO{
				Email:    "waiter@demohotel.test",
				FullName: "Wati Waiter",
			})

			Expect(err).To(Equal(internal.ErrCompanyAdminOnly))
			Expect(mockRepo.accounts).To(BeEmpty())
		})

		It("should reject an email that is already registered", func() {
			_, err := service.CreateStaff(companyActor, user.CreateStaffDTO{
				Email:    "waiter@demohotel.test",
				FullName: "Wati Waiter",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateStaff(companyActor, user.CreateStaffDTO{
				Email:    "waiter@demohotel.test",
				FullName: "Second Waiter",
			})
			Expect(err).To(Equal(internal.ErrEmailTaken))
		})

		It("should map a duplicate key race to the email conflict", func() {
			mockRepo.dupOnCreate = true

			_, err := service.CreateStaff(companyActor, user.CreateStaffDTO{
				Email:    "waiter@demohotel.test",
				FullName: "Wati Waiter",
			})
			Expect(err).To(Equal(internal.ErrEmailTaken))
		})

		It("should reject a weak explicit password", func() {
			_, err := service.CreateStaff(companyActor, user.CreateStaffDTO{
				Email:    "waiter@demohotel.test",
				Password: "weakpassword",
				FullName: "Wati Waiter",
			})

			Expect(err).To(HaveOccurred())
			Expect(mockRepo.accounts).To(BeEmpty())
		})

		It("should reject a malformed email", func() {
			_, err := service.CreateStaff(companyActor, user.CreateStaffDTO{
				Email:    "not-an-email",
				FullName: "Wati Waiter",
			})

			Expect(err).To(HaveOccurred())
		})

		It("should publish the staff-created event", func() {
			received := make(chan events.Event, 1)
			eventBus.Subscribe(events.EventTypeStaffCreated, func(ctx context.Context, event events.Event) error {
				received <- event
				return nil
			})

			resp, err := service.CreateStaff(companyActor, user.CreateStaffDTO{
				Email:    "waiter@demohotel.test",
				FullName: "Wati Waiter",
			})
			Expect(err).NotTo(HaveOccurred())

			var event events.Event
			Eventually(received).Should(Receive(&event))
			payload, ok := event.Payload().(map[string]interface{})
			Expect(ok).To(BeTrue())
			Expect(payload["user_id"]).To(Equal(resp.Staff.ID))
			Expect(payload["company_id"]).To(Equal("company-1"))
		})
	})

	Describe("GetCurrentUser", func() {
		It("should answer the enriched account", func() {
			companyID := "company-1"
			roleID := int64(3)
			mockRepo.withRole["staff-1"] = &user.User{
				ID:          "staff-1",
				Email:       "waiter@demohotel.test",
				UserType:    "staff",
				CompanyID:   &companyID,
				RoleID:      &roleID,
				RoleName:    "waiter",
				Permissions: []string{"view_orders"},
				IsActive:    true,
			}

			current, err := service.GetCurrentUser("staff-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(current.RoleName).To(Equal("waiter"))
			Expect(current.Permissions).To(ContainElement("view_orders"))
		})

		It("should answer not-found for an unknown id", func() {
			_, err := service.GetCurrentUser("ghost")
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("ListStaff", func() {
		It("should list only the company's staff", func() {
			companyID := "company-1"
			otherID := "company-2"
			mockRepo.withRole["staff-1"] = &user.User{
				ID: "staff-1", UserType: "staff", CompanyID: &companyID,
			}
			mockRepo.withRole["staff-9"] = &user.User{
				ID: "staff-9", UserType: "staff", CompanyID: &otherID,
			}

			staff, err := service.ListStaff(companyActor)
			Expect(err).NotTo(HaveOccurred())
			Expect(staff).To(HaveLen(1))
			Expect(staff[0].ID).To(Equal("staff-1"))
		})

		It("should resolve the tenant for a staff caller", func() {
			companyID := "company-1"
			mockRepo.withRole["staff-1"] = &user.User{
				ID: "staff-1", UserType: "staff", CompanyID: &companyID,
			}

			staff, err := service.ListStaff(staffActor)
			Expect(err).NotTo(HaveOccurred())
			Expect(staff).To(HaveLen(1))
		})
	})
})

var _ = Describe("CreateStaffDTO", func() {
	It("should accept an omitted password", func() {
		dto := user.CreateStaffDTO{
			Email:    "waiter@demohotel.test",
			FullName: "Wati Waiter",
		}
		Expect(dto.Validate()).To(Succeed())
	})

	It("should require a plausible email", func() {
		dto := user.CreateStaffDTO{
			Email:    strings.Repeat("x", 10),
			FullName: "Wati Waiter",
		}
		Expect(dto.Validate()).NotTo(Succeed())
	})
})
