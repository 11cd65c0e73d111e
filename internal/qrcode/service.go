package qrcode

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image/color"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	internal "github.com/mohspitality/hospitality-management/internal"
	"github.com/mohspitality/hospitality-management/internal/auth"
	qrcodemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/qrcode"
	resourcemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/resource"
	"github.com/mohspitality/hospitality-management/internal/rbac"
)

const defaultSize = 256

type RepositoryAPI interface {
	CreateBatch(b *qrcodemodel.QRCodeBatch) error
	CountBatchesByCompany(companyID string) (int64, error)
	ListBatchesByCompany(companyID string) ([]*qrcodemodel.QRCodeBatch, error)
	GetLimitForSubscription(subscriptionType string) (*qrcodemodel.QRCodeLimit, error)
}

type Service struct {
	repo       RepositoryAPI
	renderer   Renderer
	authorizer *auth.Authorizer
	baseURL    string
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, renderer Renderer, authorizer *auth.Authorizer, baseURL string, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		renderer:   renderer,
		authorizer: authorizer,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// CreateBatch renders one QR code per room and returns them zipped. The
// batch row is persisted only after every room rendered, so a failed render
// never counts against the subscription limit.
func (s *Service) CreateBatch(actor *auth.User, dto CreateBatchDTO) (*BatchArchive, error) {
	if err := s.authorizer.RequirePermission(actor, rbac.PermCreateQRCodes); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	rooms := normalizeRooms(dto.Rooms)
	if len(rooms) == 0 {
		return nil, internal.NewValidationError("rooms must contain at least one entry", internal.ErrCodeInvalidRooms)
	}

	companyID := actor.EffectiveCompanyID()
	if err := s.checkBatchLimit(companyID, actor.SubscriptionType); err != nil {
		return nil, err
	}

	fill, err := ParseColor(dto.FillColor, color.Black)
	if err != nil {
		return nil, err
	}
	back, err := ParseColor(dto.BackColor, color.White)
	if err != nil {
		return nil, err
	}
	size := dto.Size
	if size == 0 {
		size = defaultSize
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, room := range rooms {
		png, err := s.renderer.RenderPNG(s.roomURL(dto.OutletType, room), size, fill, back)
		if err != nil {
			s.logger.Error("CreateBatch: render failed", "room", room, "error", err)
			return nil, internal.NewInternalError("failed to render QR code", err)
		}
		entry, err := zw.Create(fmt.Sprintf("room_%s.png", room))
		if err != nil {
			return nil, internal.NewInternalError("failed to build archive", err)
		}
		if _, err := entry.Write(png); err != nil {
			return nil, internal.NewInternalError("failed to build archive", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, internal.NewInternalError("failed to build archive", err)
	}

	model := &qrcodemodel.QRCodeBatch{
		CompanyID:   companyID,
		OutletType:  dto.OutletType,
		Rooms:       strings.Join(rooms, ","),
		ArchiveName: fmt.Sprintf("qrcodes-%s.zip", companyID),
	}
	if err := s.repo.CreateBatch(model); err != nil {
		s.logger.Error("CreateBatch: persist failed", "company_id", companyID, "error", err)
		return nil, err
	}

	s.logger.Info("qr code batch created", "batch_id", model.ID, "company_id", companyID, "rooms", len(rooms))
	return &BatchArchive{
		Batch:   FromDataModel(model),
		Name:    model.ArchiveName,
		Content: buf.Bytes(),
	}, nil
}

func (s *Service) ListBatches(actor *auth.User) ([]*Batch, error) {
	companyID := actor.EffectiveCompanyID()

	models, err := s.repo.ListBatchesByCompany(companyID)
	if err != nil {
		s.logger.Error("ListBatches: query failed", "company_id", companyID, "error", err)
		return nil, err
	}

	batches := make([]*Batch, 0, len(models))
	for _, m := range models {
		batches = append(batches, FromDataModel(m))
	}
	return batches, nil
}

// checkBatchLimit enforces the per-subscription cap. Tiers without a limit
// row are uncapped.
func (s *Service) checkBatchLimit(companyID, subscriptionType string) error {
	limit, err := s.repo.GetLimitForSubscription(subscriptionType)
	if err != nil {
		s.logger.Error("checkBatchLimit: limit lookup failed", "subscription", subscriptionType, "error", err)
		return err
	}
	if limit == nil {
		return nil
	}

	count, err := s.repo.CountBatchesByCompany(companyID)
	if err != nil {
		s.logger.Error("checkBatchLimit: count failed", "company_id", companyID, "error", err)
		return err
	}
	if count >= int64(limit.MaxBatches) {
		return internal.ErrQRCodeLimitReached
	}
	return nil
}

func (s *Service) roomURL(outletType, room string) string {
	param := "table"
	if outletType == string(resourcemodel.OutletTypeRoomService) {
		param = "room"
	}
	return fmt.Sprintf("%s?%s=%s", s.baseURL, param, url.QueryEscape(room))
}

func normalizeRooms(raw string) []string {
	seen := make(map[string]struct{})
	rooms := make([]string, 0)
	for _, p := range strings.Split(raw, ",") {
		t := strings.TrimSpace(p)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		rooms = append(rooms, t)
	}
	sort.Strings(rooms)
	return rooms
}
