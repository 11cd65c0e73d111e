package rbac

import (
	"log/slog"
	"strings"

	internal "github.com/mohspitality/hospitality-management/internal"
	"github.com/mohspitality/hospitality-management/internal/auth"
	rbacmodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/rbac"
	usermodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	CreateRole(role *rbacmodel.Role) error
	GetRoleByName(companyID, name string) (*rbacmodel.Role, error)
	GetRoleByID(companyID string, roleID int64) (*rbacmodel.Role, error)
	ListRolesByCompany(companyID string) ([]*rbacmodel.Role, error)
	UpdateRolePermissions(roleID int64, permissions rbacmodel.PermissionList) error
	GetUserByID(userID string) (*usermodel.User, error)
	AssignRoleToUser(userID string, roleID int64) error
}

type Service struct {
	repo       RepositoryAPI
	catalog    CatalogAPI
	authorizer *auth.Authorizer
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, catalog CatalogAPI, authorizer *auth.Authorizer, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		catalog:    catalog,
		authorizer: authorizer,
		logger:     logger,
	}
}

// CreateRole makes an empty role under the actor's company. Company accounts
// only; this is a user-type rule, not a catalog permission.
func (s *Service) CreateRole(actor *auth.User, dto CreateRoleDTO) (*Role, error) {
	if err := s.authorizer.RequireCompany(actor); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	companyID := actor.EffectiveCompanyID()

	existing, err := s.repo.GetRoleByName(companyID, name)
	if err != nil {
		return nil, internal.NewInternalError("failed to check role name", err)
	}
	if existing != nil {
		return nil, internal.NewDuplicateRoleError(name)
	}

	role := &rbacmodel.Role{
		Name:            name,
		CompanyID:       companyID,
		UserPermissions: rbacmodel.PermissionList{},
	}
	if err := s.repo.CreateRole(role); err != nil {
		// The (name, company) constraint is the backstop for races.
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewDuplicateRoleError(name)
		}
		return nil, internal.NewInternalError("failed to create role", err)
	}

	s.logger.Info("role created", "role_id", role.ID, "name", role.Name, "company_id", companyID)
	return RoleFromDataModel(role), nil
}

// SetRolePermissions replaces the snapshot wholesale. Every name must
// resolve through the catalog before anything is written; one unknown name
// fails the whole call.
func (s *Service) SetRolePermissions(actor *auth.User, roleID int64, dto SetPermissionsDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	companyID := actor.EffectiveCompanyID()
	role, err := s.repo.GetRoleByID(companyID, roleID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load role", err)
	}
	if role == nil {
		return nil, internal.ErrRoleNotFound
	}

	snapshot := make(rbacmodel.PermissionList, 0, len(dto.Permissions))
	for _, name := range dto.Permissions {
		perm, err := s.catalog.Lookup(name)
		if err != nil {
			return nil, err
		}
		snapshot = append(snapshot, rbacmodel.PermissionSnapshot{
			ID:          perm.ID,
			Name:        perm.Name,
			Description: perm.Description,
		})
	}

	if err := s.repo.UpdateRolePermissions(role.ID, snapshot); err != nil {
		return nil, internal.NewInternalError("failed to update role permissions", err)
	}

	role.UserPermissions = snapshot
	s.logger.Info("role permissions replaced",
		"role_id", role.ID,
		"company_id", companyID,
		"permission_count", len(snapshot))
	return RoleFromDataModel(role), nil
}

// GetRole is company-scoped: a valid id belonging to another tenant reads as
// absent.
func (s *Service) GetRole(actor *auth.User, roleID int64) (*Role, error) {
	role, err := s.repo.GetRoleByID(actor.EffectiveCompanyID(), roleID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load role", err)
	}
	if role == nil {
		return nil, internal.ErrRoleNotFound
	}
	return RoleFromDataModel(role), nil
}

func (s *Service) ListCompanyRoles(actor *auth.User) ([]*Role, error) {
	rows, err := s.repo.ListRolesByCompany(actor.EffectiveCompanyID())
	if err != nil {
		return nil, internal.NewInternalError("failed to list roles", err)
	}
	roles := make([]*Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, RoleFromDataModel(row))
	}
	return roles, nil
}

// AssignRole points a staff account at a role. Both the role and the target
// must live under the actor's company; a foreign role or foreign staff
// answers as not-found so ids never leak across tenants.
func (s *Service) AssignRole(actor *auth.User, targetUserID string, dto AssignRoleDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	companyID := actor.EffectiveCompanyID()

	role, err := s.repo.GetRoleByID(companyID, dto.RoleID)
	if err != nil {
		return internal.NewInternalError("failed to load role", err)
	}
	if role == nil {
		return internal.ErrRoleNotFound
	}

	target, err := s.repo.GetUserByID(targetUserID)
	if err != nil {
		return internal.NewInternalError("failed to load user", err)
	}
	if target == nil || target.UserType != string(usermodel.UserTypeStaff) {
		return internal.ErrUserNotFound
	}
	if target.CompanyID == nil || *target.CompanyID != companyID {
		return internal.ErrUserNotFound
	}

	if err := s.repo.AssignRoleToUser(target.ID, role.ID); err != nil {
		return internal.NewInternalError("failed to assign role", err)
	}

	s.logger.Info("role assigned",
		"role_id", role.ID,
		"user_id", target.ID,
		"company_id", companyID)
	return nil
}

// ListAllPermissions exposes the catalog. Global, not tenant-scoped.
func (s *Service) ListAllPermissions() ([]*Permission, error) {
	return s.catalog.ListAll()
}
