package nopost

import (
	"log/slog"

	internal "github.com/mohspitality/hospitality-management/internal"
	"github.com/mohspitality/hospitality-management/internal/auth"
	resourcemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/resource"
	"github.com/mohspitality/hospitality-management/internal/rbac"
)

type RepositoryAPI interface {
	Upsert(companyID, items string) (*resourcemodel.NoPostList, error)
	ListByCompany(companyID string) ([]*resourcemodel.NoPostList, error)
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

// UpsertNoPostList writes the company's single no-post-list row, creating it
// on first use. Carries no permission gate; any authenticated member of the
// company may update the list.
func (s *Service) UpsertNoPostList(actor *auth.User, dto UpsertNoPostListDTO) (*NoPostList, error) {
	companyID := actor.EffectiveCompanyID()
	items := NormalizeItems(dto.Items)

	model, err := s.repo.Upsert(companyID, items)
	if err != nil {
		s.logger.Error("UpsertNoPostList: upsert failed", "company_id", companyID, "error", err)
		return nil, err
	}

	s.logger.Info("no-post list updated", "company_id", companyID, "item_count", len(SplitItems(items)))
	return FromDataModel(model), nil
}

func (s *Service) ListNoPostLists(actor *auth.User) ([]*NoPostList, error) {
	companyID := actor.EffectiveCompanyID()

	models, err := s.repo.ListByCompany(companyID)
	if err != nil {
		s.logger.Error("ListNoPostLists: query failed", "company_id", companyID, "error", err)
		return nil, err
	}

	lists := make([]*NoPostList, 0, len(models))
	for _, m := range models {
		lists = append(lists, FromDataModel(m))
	}
	return lists, nil
}

func (s *Service) DeleteNoPostList(actor *auth.User, id int64) error {
	if err := s.authorizer.RequirePermission(actor, rbac.PermDeleteNoPostList); err != nil {
		return err
	}

	companyID := actor.EffectiveCompanyID()

	affected, err := s.repo.Delete(companyID, id)
	if err != nil {
		s.logger.Error("DeleteNoPostList: delete failed", "no_post_list_id", id, "error", err)
		return err
	}
	if affected == 0 {
		return internal.ErrNoPostListNotFound
	}

	s.logger.Info("no-post list deleted", "no_post_list_id", id, "company_id", companyID)
	return nil
}
