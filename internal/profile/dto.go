package profile

import (
	internal "github.com/mohspitality/hospitality-management/internal"
	"github.com/mohspitality/hospitality-management/internal/core/common/validation"
	profilemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/profile"
)

type CreateUserProfileDTO struct {
	FullName       string `json:"full_name"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	Department     string `json:"department,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

func (d CreateUserProfileDTO) Validate() error {
	if err := validation.ValidateResourceName("full_name", d.FullName); err != nil {
		return err
	}
	return nil
}

type CreateCompanyProfileDTO struct {
	CompanyName string `json:"company_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

func (d CreateCompanyProfileDTO) Validate() error {
	if err := validation.ValidateResourceName("company_name", d.CompanyName); err != nil {
		return err
	}
	return nil
}

// UpdateCompanyProfileDTO applies non-empty fields only.
type UpdateCompanyProfileDTO struct {
	CompanyName string `json:"company_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

type UpdatePaymentGatewayDTO struct {
	PaymentGateway string `json:"payment_gateway"`
	APIKey         string `json:"api_key"`
	APISecret      string `json:"api_secret"`
	Currency       string `json:"currency,omitempty"`
}

func (d UpdatePaymentGatewayDTO) Validate() error {
	if !profilemodel.PaymentGateway(d.PaymentGateway).Valid() {
		return internal.NewValidationError("payment_gateway must be one of flutterwave, paystack, stripe, paypal", internal.ErrCodeInvalidGateway)
	}
	validator := validation.NewValidator()
	validator.Field("api_key", d.APIKey).Required()
	validator.Field("api_secret", d.APISecret).Required()
	if err := validator.Validate(); err != nil {
		return err
	}
	return nil
}
