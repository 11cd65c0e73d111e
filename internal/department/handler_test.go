package department_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mohspitality/hospitality-management/internal/auth"
	usermodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/user"
	"github.com/mohspitality/hospitality-management/internal/department"
	departmentPostgres "github.com/mohspitality/hospitality-management/internal/department/postgres"
)

var _ = Describe("Department Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    department.RepositoryAPI
		service *department.Service
		handler *department.Handler
		router  *chi.Mux
	)

	companyActor := &auth.User{
		ID:       "company-1",
		UserType: usermodel.UserTypeCompany,
	}
	staffWithoutRole := &auth.User{
		ID:        "staff-1",
		UserType:  usermodel.UserTypeStaff,
		CompanyID: "company-1",
	}

	seedDepartment := func(name, companyID string) int64 {
		model := department.ToDataModel(&department.Department{
			Name:      name,
			CompanyID: companyID,
		})
		Expect(repo.Create(model)).To(Succeed())
		return model.ID
	}

	serve := func(user *auth.User, method, target string, body []byte) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, bytes.NewBuffer(body))
		if user != nil {
			req = req.WithContext(auth.ContextWithUser(req.Context(), user))
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		return recorder
	}

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&department.Department{})
		Expect(err).NotTo(HaveOccurred())

		repo = departmentPostgres.NewDepartmentRepository(db)
		service = department.NewService(repo, auth.NewAuthorizer(slogger), slogger)
		handler = department.NewHandler(service)

		router = chi.NewRouter()
		router.Post("/departments", handler.CreateDepartment)
		router.Get("/departments", handler.ListDepartments)
		router.Delete("/departments/{id}", handler.DeleteDepartment)
	})

	It("should answer 401 when no user is on the context", func() {
		recorder := serve(nil, http.MethodGet, "/departments", nil)
		Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
	})

	Describe("POST /departments", func() {
		It("should create the department lowercased under the actor's company", func() {
			recorder := serve(companyActor, http.MethodPost, "/departments",
				[]byte(`{"name":"  Housekeeping "}`))

			Expect(recorder.Code).To(Equal(http.StatusCreated))
			Expect(recorder.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var created department.Department
			Expect(json.NewDecoder(recorder.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Name).To(Equal("housekeeping"))
			Expect(created.CompanyID).To(Equal("company-1"))
		})

		It("should answer 409 for a name the company already uses", func() {
			seedDepartment("housekeeping", "company-1")

			recorder := serve(companyActor, http.MethodPost, "/departments",
				[]byte(`{"name":"Housekeeping"}`))

			Expect(recorder.Code).To(Equal(http.StatusConflict))
		})

		It("should answer 403 for staff without the create permission", func() {
			recorder := serve(staffWithoutRole, http.MethodPost, "/departments",
				[]byte(`{"name":"housekeeping"}`))

			Expect(recorder.Code).To(Equal(http.StatusForbidden))
		})

		It("should answer 400 for a malformed body", func() {
			recorder := serve(companyActor, http.MethodPost, "/departments",
				[]byte(`{"name:`))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /departments", func() {
		BeforeEach(func() {
			seedDepartment("front office", "company-1")
			seedDepartment("housekeeping", "company-1")
			seedDepartment("spa", "company-2")
		})

		It("should list only the actor's company departments", func() {
			recorder := serve(companyActor, http.MethodGet, "/departments", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var response department.DepartmentsResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&response)).To(Succeed())
			Expect(response.Departments).To(HaveLen(2))

			names := make([]string, len(response.Departments))
			for i, d := range response.Departments {
				names[i] = d.Name
				Expect(d.CompanyID).To(Equal("company-1"))
			}
			Expect(names).To(ConsistOf("front office", "housekeeping"))
		})

		It("should let ungated staff read the list", func() {
			recorder := serve(staffWithoutRole, http.MethodGet, "/departments", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var response department.DepartmentsResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&response)).To(Succeed())
			Expect(response.Departments).To(HaveLen(2))
		})
	})

	Describe("DELETE /departments/{id}", func() {
		var housekeepingID int64

		BeforeEach(func() {
			housekeepingID = seedDepartment("housekeeping", "company-1")
			seedDepartment("spa", "company-2")
		})

		It("should delete the company's own department", func() {
			target := "/departments/" + strconv.FormatInt(housekeepingID, 10)
			recorder := serve(companyActor, http.MethodDelete, target, nil)

			Expect(recorder.Code).To(Equal(http.StatusNoContent))

			gone, err := repo.GetByName("company-1", "housekeeping")
			Expect(err).NotTo(HaveOccurred())
			Expect(gone).To(BeNil())
		})

		It("should answer 404 for another tenant's department id", func() {
			foreign, err := repo.GetByName("company-2", "spa")
			Expect(err).NotTo(HaveOccurred())

			target := "/departments/" + strconv.FormatInt(foreign.ID, 10)
			recorder := serve(companyActor, http.MethodDelete, target, nil)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))

			still, err := repo.GetByName("company-2", "spa")
			Expect(err).NotTo(HaveOccurred())
			Expect(still).NotTo(BeNil())
		})

		It("should answer 400 for a non-numeric id", func() {
			recorder := serve(companyActor, http.MethodDelete, "/departments/abc", nil)
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
