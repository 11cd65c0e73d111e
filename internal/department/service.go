package department

import (
	"log/slog"
	"strings"

	internal "github.com/mohspitality/hospitality-management/internal"
	"github.com/mohspitality/hospitality-management/internal/auth"
	resourcemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/resource"
	"github.com/mohspitality/hospitality-management/internal/rbac"
)

type RepositoryAPI interface {
	Create(department *resourcemodel.Department) error
	GetByName(companyID, name string) (*resourcemodel.Department, error)
	ListByCompany(companyID string) ([]*resourcemodel.Department, error)
	Delete(companyID string, id int64) (int64, error)
}

type Service struct {
	repo       RepositoryAPI
	authorizer *auth.Authorizer
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, authorizer *auth.Authorizer, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		authorizer: authorizer,
		logger:     logger,
	}
}

func (s *Service) CreateDepartment(actor *auth.User, dto CreateDepartmentDTO) (*Department, error) {
	if err := s.authorizer.RequirePermission(actor, rbac.PermCreateDepartments); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	name := strings.ToLower(strings.TrimSpace(dto.Name))
	companyID := actor.EffectiveCompanyID()

	existing, err := s.repo.GetByName(companyID, name)
	if err != nil {
		s.logger.Error("CreateDepartment: lookup failed", "name", name, "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewDuplicateDepartmentError(name)
	}

	model := &resourcemodel.Department{
		Name:      name,
		CompanyID: companyID,
	}
	if err := s.repo.Create(model); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewDuplicateDepartmentError(name)
		}
		s.logger.Error("CreateDepartment: create failed", "name", name, "error", err)
		return nil, err
	}

	s.logger.Info("department created", "department_id", model.ID, "company_id", companyID)
	return FromDataModel(model), nil
}

func (s *Service) ListDepartments(actor *auth.User) ([]*Department, error) {
	companyID := actor.EffectiveCompanyID()

	models, err := s.repo.ListByCompany(companyID)
	if err != nil {
		s.logger.Error("ListDepartments: query failed", "company_id", companyID, "error", err)
		return nil, err
	}

	departments := make([]*Department, 0, len(models))
	for _, m := range models {
		departments = append(departments, FromDataModel(m))
	}
	return departments, nil
}

func (s *Service) DeleteDepartment(actor *auth.User, id int64) error {
	if err := s.authorizer.RequirePermission(actor, rbac.PermDeleteDepartments); err != nil {
		return err
	}

	companyID := actor.EffectiveCompanyID()

	affected, err := s.repo.Delete(companyID, id)
	if err != nil {
		s.logger.Error("DeleteDepartment: delete failed", "department_id", id, "error", err)
		return err
	}
	if affected == 0 {
		return internal.ErrDepartmentNotFound
	}

	s.logger.Info("department deleted", "department_id", id, "company_id", companyID)
	return nil
}
