package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"

	internal "github.com/mohspitality/hospitality-management/internal"
	"github.com/mohspitality/hospitality-management/internal/auth"
	profilemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/profile"
	usermodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/user"
	"github.com/mohspitality/hospitality-management/internal/core/events"
)

type RepositoryAPI interface {
	GetUserWithRole(userID string) (*User, error)
	GetByEmail(email string) (*usermodel.User, error)
	CreateStaffWithProfile(user *usermodel.User, profile *profilemodel.UserProfile) error
	ListStaffByCompany(companyID string) ([]*User, error)
}

type Service struct {
	repo       RepositoryAPI
	authorizer *auth.Authorizer
	eventBus   *events.EventBus
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, authorizer *auth.Authorizer, eventBus *events.EventBus, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		authorizer: authorizer,
		eventBus:   eventBus,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) GetCurrentUser(userID string) (*User, error) {
	u, err := s.repo.GetUserWithRole(userID)
	if err != nil {
		s.logger.Error("GetCurrentUser: lookup failed", "user_id", userID, "error", err)
		return nil, err
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

// CreateStaff provisions a staff account under the acting company. The
// account and its profile are written together; the welcome mail rides the
// event bus so a send failure never rolls back the account.
func (s *Service) CreateStaff(actor *auth.User, dto CreateStaffDTO) (*CreateStaffResponse, error) {
	if err := s.authorizer.RequireCompany(actor); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(dto.Email))

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		s.logger.Error("CreateStaff: email lookup failed", "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, internal.ErrEmailTaken
	}

	password := dto.Password
	tempPassword := ""
	if password == "" {
		tempPassword, err = generateTempPassword()
		if err != nil {
			return nil, internal.NewInternalError("failed to generate password", err)
		}
		password = tempPassword
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	companyID := actor.EffectiveCompanyID()
	model := &usermodel.User{
		ID:           auth.NewUserID(),
		Email:        email,
		PasswordHash: hash,
		UserType:     string(usermodel.UserTypeStaff),
		CompanyID:    &companyID,
		IsActive:     true,
	}
	profile := &profilemodel.UserProfile{
		UserID:     model.ID,
		FullName:   strings.TrimSpace(dto.FullName),
		Department: strings.TrimSpace(dto.Department),
	}

	if err := s.repo.CreateStaffWithProfile(model, profile); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.ErrEmailTaken
		}
		s.logger.Error("CreateStaff: create failed", "email", email, "error", err)
		return nil, err
	}

	s.eventBus.Publish(context.Background(), events.NewStaffCreatedEvent(model.ID, email, profile.FullName, companyID))

	s.logger.Info("staff account created", "user_id", model.ID, "company_id", companyID)
	return &CreateStaffResponse{
		Staff:             FromDataModel(model),
		TemporaryPassword: tempPassword,
	}, nil
}

func (s *Service) ListStaff(actor *auth.User) ([]*User, error) {
	companyID := actor.EffectiveCompanyID()

	staff, err := s.repo.ListStaffByCompany(companyID)
	if err != nil {
		s.logger.Error("ListStaff: query failed", "company_id", companyID, "error", err)
		return nil, err
	}
	return staff, nil
}

// generateTempPassword returns a random password. The fixed prefix keeps the
// generated value inside the account password policy.
func generateTempPassword() (string, error) {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "Tmp1!" + hex.EncodeToString(buf), nil
}
