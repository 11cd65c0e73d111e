package rbac

import (
	"context"
	"log/slog"

	internal "github.com/mohspitality/hospitality-management/internal"
	rbacmodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/rbac"
)

type CatalogRepositoryAPI interface {
	ListPermissions() ([]*rbacmodel.Permission, error)
	GetPermissionByName(name string) (*rbacmodel.Permission, error)
	CreatePermission(p *rbacmodel.Permission) error
}

// CatalogAPI is what the role store and the permissions endpoint consume.
type CatalogAPI interface {
	Reconcile(ctx context.Context) (int, error)
	Lookup(name string) (*Permission, error)
	ListAll() ([]*Permission, error)
}

// Catalog keeps the permissions table in line with the action/resource
// cross-product. It only ever adds rows; removing an enum value must not
// invalidate snapshots already referencing it.
type Catalog struct {
	repo   CatalogRepositoryAPI
	logger *slog.Logger
}

func NewCatalog(repo CatalogRepositoryAPI, logger *slog.Logger) *Catalog {
	return &Catalog{
		repo:   repo,
		logger: logger,
	}
}

// Reconcile inserts every missing catalog entry and reports how many were
// created. Runs before the server accepts traffic and again from the seed
// command; both paths are idempotent. A duplicate insert means a concurrent
// instance won the race, which is fine.
func (c *Catalog) Reconcile(ctx context.Context) (int, error) {
	existing, err := c.repo.ListPermissions()
	if err != nil {
		return 0, err
	}

	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[p.Name] = true
	}

	created := 0
	for _, action := range AllActions() {
		for _, resource := range AllResources() {
			if err := ctx.Err(); err != nil {
				return created, err
			}

			name := PermissionName(action, resource)
			if known[name] {
				continue
			}

			perm := &rbacmodel.Permission{
				Name:        name,
				Description: PermissionDescription(action, resource),
			}
			if err := c.repo.CreatePermission(perm); err != nil {
				if internal.IsDuplicateKey(err) {
					continue
				}
				return created, err
			}
			created++
		}
	}

	if created > 0 {
		c.logger.Info("permission catalog reconciled", "created", created)
	}
	return created, nil
}

// Lookup resolves a permission name or fails with the unknown-permission
// error that aborts any operation referencing it.
func (c *Catalog) Lookup(name string) (*Permission, error) {
	perm, err := c.repo.GetPermissionByName(name)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, internal.NewUnknownPermissionError(name)
	}
	return PermissionFromDataModel(perm), nil
}

func (c *Catalog) ListAll() ([]*Permission, error) {
	rows, err := c.repo.ListPermissions()
	if err != nil {
		return nil, err
	}
	permissions := make([]*Permission, 0, len(rows))
	for _, row := range rows {
		permissions = append(permissions, PermissionFromDataModel(row))
	}
	return permissions, nil
}
