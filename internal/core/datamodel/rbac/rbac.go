package rbac

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PermissionSnapshot is one denormalized entry of a role's permission list.
// The snapshot is the authorization source of truth for every user holding
// the role; it is replaced wholesale, never patched.
type PermissionSnapshot struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PermissionList stores the ordered snapshot as a JSON column.
type PermissionList []PermissionSnapshot

func (l PermissionList) Value() (driver.Value, error) {
	if l == nil {
		l = PermissionList{}
	}
	return json.Marshal(l)
}

func (l *PermissionList) Scan(value interface{}) error {
	if value == nil {
		*l = PermissionList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported type %T for permission list", value)
}

type Role struct {
	ID              int64          `gorm:"primaryKey"`
	Name            string         `gorm:"column:name;not null;uniqueIndex:role_name"`
	CompanyID       string         `gorm:"column:company_id;not null;uniqueIndex:role_name"`
	UserPermissions PermissionList `gorm:"column:user_permissions;type:jsonb;not null"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

type Permission struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
