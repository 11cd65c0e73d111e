package profile

import (
	"log/slog"
	"strings"

	internal "github.com/mohspitality/hospitality-management/internal"
	"github.com/mohspitality/hospitality-management/internal/auth"
	profilemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/profile"
)

type RepositoryAPI interface {
	GetUserProfile(userID string) (*profilemodel.UserProfile, error)
	CreateUserProfile(p *profilemodel.UserProfile) error
	GetCompanyProfile(userID string) (*profilemodel.CompanyProfile, error)
	GetCompanyProfileByName(companyName string) (*profilemodel.CompanyProfile, error)
	GetCompanyProfileByPhone(phoneNumber string) (*profilemodel.CompanyProfile, error)
	CreateCompanyProfile(p *profilemodel.CompanyProfile) error
	UpdateCompanyProfile(p *profilemodel.CompanyProfile) error
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

func (s *Service) CreateUserProfile(actor *auth.User, dto CreateUserProfileDTO) (*UserProfile, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetUserProfile(actor.ID)
	if err != nil {
		s.logger.Error("CreateUserProfile: lookup failed", "user_id", actor.ID, "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError("profile already exists for this user", internal.ErrCodeProfileAlreadyExists)
	}

	model := &profilemodel.UserProfile{
		UserID:         actor.ID,
		FullName:       strings.TrimSpace(dto.FullName),
		PhoneNumber:    strings.TrimSpace(dto.PhoneNumber),
		Department:     strings.TrimSpace(dto.Department),
		JobTitle:       strings.TrimSpace(dto.JobTitle),
		ProfilePicture: dto.ProfilePicture,
	}
	if err := s.repo.CreateUserProfile(model); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("profile already exists for this user", internal.ErrCodeProfileAlreadyExists)
		}
		s.logger.Error("CreateUserProfile: create failed", "user_id", actor.ID, "error", err)
		return nil, err
	}

	s.logger.Info("user profile created", "user_id", actor.ID)
	return UserProfileFromDataModel(model), nil
}

func (s *Service) GetUserProfile(actor *auth.User) (*UserProfile, error) {
	model, err := s.repo.GetUserProfile(actor.ID)
	if err != nil {
		s.logger.Error("GetUserProfile: lookup failed", "user_id", actor.ID, "error", err)
		return nil, err
	}
	if model == nil {
		return nil, internal.ErrProfileNotFound
	}
	return UserProfileFromDataModel(model), nil
}

func (s *Service) CreateCompanyProfile(actor *auth.User, dto CreateCompanyProfileDTO) (*CompanyProfile, error) {
	if err := s.authorizer.RequireCompany(actor); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetCompanyProfile(actor.ID)
	if err != nil {
		s.logger.Error("CreateCompanyProfile: lookup failed", "user_id", actor.ID, "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError("profile already exists for this company", internal.ErrCodeProfileAlreadyExists)
	}

	companyName := strings.TrimSpace(dto.CompanyName)
	phoneNumber := strings.TrimSpace(dto.PhoneNumber)
	if err := s.checkCompanyUniqueness(actor.ID, companyName, phoneNumber); err != nil {
		return nil, err
	}

	model := &profilemodel.CompanyProfile{
		UserID:      actor.ID,
		CompanyName: companyName,
		PhoneNumber: phoneNumber,
		Address:     strings.TrimSpace(dto.Address),
		Logo:        dto.Logo,
	}
	if err := s.repo.CreateCompanyProfile(model); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("company name or phone number already in use", internal.ErrCodeCompanyNameTaken)
		}
		s.logger.Error("CreateCompanyProfile: create failed", "user_id", actor.ID, "error", err)
		return nil, err
	}

	s.logger.Info("company profile created", "user_id", actor.ID, "company_name", companyName)
	return CompanyProfileFromDataModel(model), nil
}

func (s *Service) GetCompanyProfile(actor *auth.User) (*CompanyProfile, error) {
	model, err := s.repo.GetCompanyProfile(actor.EffectiveCompanyID())
	if err != nil {
		s.logger.Error("GetCompanyProfile: lookup failed", "user_id", actor.ID, "error", err)
		return nil, err
	}
	if model == nil {
		return nil, internal.ErrProfileNotFound
	}
	return CompanyProfileFromDataModel(model), nil
}

func (s *Service) UpdateCompanyProfile(actor *auth.User, dto UpdateCompanyProfileDTO) (*CompanyProfile, error) {
	if err := s.authorizer.RequireCompany(actor); err != nil {
		return nil, err
	}

	model, err := s.repo.GetCompanyProfile(actor.ID)
	if err != nil {
		s.logger.Error("UpdateCompanyProfile: lookup failed", "user_id", actor.ID, "error", err)
		return nil, err
	}
	if model == nil {
		return nil, internal.ErrProfileNotFound
	}

	companyName := strings.TrimSpace(dto.CompanyName)
	phoneNumber := strings.TrimSpace(dto.PhoneNumber)
	if err := s.checkCompanyUniqueness(actor.ID, companyName, phoneNumber); err != nil {
		return nil, err
	}

	if companyName != "" {
		model.CompanyName = companyName
	}
	if phoneNumber != "" {
		model.PhoneNumber = phoneNumber
	}
	if addr := strings.TrimSpace(dto.Address); addr != "" {
		model.Address = addr
	}
	if dto.Logo != "" {
		model.Logo = dto.Logo
	}

	if err := s.repo.UpdateCompanyProfile(model); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("company name or phone number already in use", internal.ErrCodeCompanyNameTaken)
		}
		s.logger.Error("UpdateCompanyProfile: update failed", "user_id", actor.ID, "error", err)
		return nil, err
	}

	s.logger.Info("company profile updated", "user_id", actor.ID)
	return CompanyProfileFromDataModel(model), nil
}

func (s *Service) UpdatePaymentGateway(actor *auth.User, dto UpdatePaymentGatewayDTO) (*CompanyProfile, error) {
	if err := s.authorizer.RequireCompany(actor); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetCompanyProfile(actor.ID)
	if err != nil {
		s.logger.Error("UpdatePaymentGateway: lookup failed", "user_id", actor.ID, "error", err)
		return nil, err
	}
	if model == nil {
		return nil, internal.ErrProfileNotFound
	}

	model.PaymentGateway = dto.PaymentGateway
	model.APIKey = dto.APIKey
	model.APISecret = dto.APISecret
	if dto.Currency != "" {
		model.Currency = strings.ToUpper(strings.TrimSpace(dto.Currency))
	}

	if err := s.repo.UpdateCompanyProfile(model); err != nil {
		s.logger.Error("UpdatePaymentGateway: update failed", "user_id", actor.ID, "error", err)
		return nil, err
	}

	s.logger.Info("payment gateway updated", "user_id", actor.ID, "gateway", dto.PaymentGateway)
	return CompanyProfileFromDataModel(model), nil
}

// checkCompanyUniqueness rejects a name or phone already claimed by another
// tenant. Empty values are skipped so partial updates stay cheap.
func (s *Service) checkCompanyUniqueness(userID, companyName, phoneNumber string) error {
	if companyName != "" {
		byName, err := s.repo.GetCompanyProfileByName(companyName)
		if err != nil {
			return err
		}
		if byName != nil && byName.UserID != userID {
			return internal.NewConflictError("company name already in use", internal.ErrCodeCompanyNameTaken)
		}
	}
	if phoneNumber != "" {
		byPhone, err := s.repo.GetCompanyProfileByPhone(phoneNumber)
		if err != nil {
			return err
		}
		if byPhone != nil && byPhone.UserID != userID {
			return internal.NewConflictError("phone number already in use", internal.ErrCodePhoneNumberTaken)
		}
	}
	return nil
}
