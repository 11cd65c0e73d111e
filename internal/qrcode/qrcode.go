package qrcode

import (
	"strings"
	"time"

	qrcodemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/qrcode"
)

type Batch struct {
	ID          int64     `json:"id"`
	CompanyID   string    `json:"company_id"`
	OutletType  string    `json:"outlet_type"`
	Rooms       []string  `json:"rooms"`
	ArchiveName string    `json:"archive_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// BatchArchive pairs the persisted batch with the rendered zip so the
// handler can stream the download.
type BatchArchive struct {
	Batch   *Batch
	Name    string
	Content []byte
}

func FromDataModel(b *qrcodemodel.QRCodeBatch) *Batch {
	rooms := make([]string, 0)
	for _, r := range strings.Split(b.Rooms, ",") {
		if t := strings.TrimSpace(r); t != "" {
			rooms = append(rooms, t)
		}
	}
	return &Batch{
		ID:          b.ID,
		CompanyID:   b.CompanyID,
		OutletType:  b.OutletType,
		Rooms:       rooms,
		ArchiveName: b.ArchiveName,
		CreatedAt:   b.CreatedAt,
	}
}
