package resource

import "time"

type OutletType string

const (
	OutletTypeRestaurant  OutletType = "restaurant"
	OutletTypeRoomService OutletType = "room_service"
)

func (t OutletType) Valid() bool {
	return t == OutletTypeRestaurant || t == OutletTypeRoomService
}

type Department struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex:department_name"`
	CompanyID string    `gorm:"column:company_id;not null;uniqueIndex:department_name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

type Outlet struct {
	ID         int64     `gorm:"primaryKey"`
	Name       string    `gorm:"column:name;not null;uniqueIndex:outlet_name"`
	CompanyID  string    `gorm:"column:company_id;not null;uniqueIndex:outlet_name"`
	OutletType string    `gorm:"column:outlet_type;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// NoPostList holds the comma-joined, sorted, deduplicated room list a
// company has blocked from posting charges. One row per company.
type NoPostList struct {
	ID        int64     `gorm:"primaryKey"`
	CompanyID string    `gorm:"column:company_id;uniqueIndex;not null"`
	Items     string    `gorm:"column:items"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (NoPostList) TableName() string {
	return "no_post_list"
}
