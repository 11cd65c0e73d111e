package outlet

import (
	"log/slog"
	"strings"

	internal "github.com/mohspitality/hospitality-management/internal"
	"github.com/mohspitality/hospitality-management/internal/auth"
	resourcemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/resource"
	"github.com/mohspitality/hospitality-management/internal/rbac"
)

type RepositoryAPI interface {
	Create(outlet *resourcemodel.Outlet) error
	GetByName(companyID, name string) (*resourcemodel.Outlet, error)
	ListByCompany(companyID string) ([]*resourcemodel.Outlet, error)
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

func (s *Service) CreateOutlet(actor *auth.User, dto CreateOutletDTO) (*Outlet, error) {
	if err := s.authorizer.RequirePermission(actor, rbac.PermCreateOutlets); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	name := strings.ToLower(strings.TrimSpace(dto.Name))
	companyID := actor.EffectiveCompanyID()

	existing, err := s.repo.GetByName(companyID, name)
	if err != nil {
		s.logger.Error("CreateOutlet: lookup failed", "name", name, "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewDuplicateOutletError(name)
	}

	model := &resourcemodel.Outlet{
		Name:       name,
		CompanyID:  companyID,
		OutletType: dto.OutletType,
	}
	if err := s.repo.Create(model); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewDuplicateOutletError(name)
		}
		s.logger.Error("CreateOutlet: create failed", "name", name, "error", err)
		return nil, err
	}

	s.logger.Info("outlet created", "outlet_id", model.ID, "company_id", companyID, "outlet_type", model.OutletType)
	return FromDataModel(model), nil
}

func (s *Service) ListOutlets(actor *auth.User) ([]*Outlet, error) {
	companyID := actor.EffectiveCompanyID()

	models, err := s.repo.ListByCompany(companyID)
	if err != nil {
		s.logger.Error("ListOutlets: query failed", "company_id", companyID, "error", err)
		return nil, err
	}

	outlets := make([]*Outlet, 0, len(models))
	for _, m := range models {
		outlets = append(outlets, FromDataModel(m))
	}
	return outlets, nil
}

func (s *Service) DeleteOutlet(actor *auth.User, id int64) error {
	if err := s.authorizer.RequirePermission(actor, rbac.PermDeleteOutlets); err != nil {
		return err
	}

	companyID := actor.EffectiveCompanyID()

	affected, err := s.repo.Delete(companyID, id)
	if err != nil {
		s.logger.Error("DeleteOutlet: delete failed", "outlet_id", id, "error", err)
		return err
	}
	if affected == 0 {
		return internal.ErrOutletNotFound
	}

	s.logger.Info("outlet deleted", "outlet_id", id, "company_id", companyID)
	return nil
}
