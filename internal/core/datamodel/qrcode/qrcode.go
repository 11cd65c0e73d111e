package qrcode

import "time"

type QRCodeBatch struct {
	ID          int64     `gorm:"primaryKey"`
	CompanyID   string    `gorm:"column:company_id;not null;index"`
	OutletType  string    `gorm:"column:outlet_type;not null"`
	Rooms       string    `gorm:"column:rooms;not null"`
	ArchiveName string    `gorm:"column:archive_name;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (QRCodeBatch) TableName() string {
	return "qrcode_batches"
}

// QRCodeLimit caps how many batches a company may generate per subscription
// tier. Tiers without a row are uncapped.
type QRCodeLimit struct {
	ID               int64  `gorm:"primaryKey"`
	SubscriptionType string `gorm:"column:subscription_type;uniqueIndex;not null"`
	MaxBatches       int    `gorm:"column:max_batches;not null"`
}

func (QRCodeLimit) TableName() string {
	return "qrcode_limits"
}
