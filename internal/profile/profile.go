package profile

import (
	"time"

	profilemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/profile"
)

type UserProfile struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	FullName       string    `json:"full_name"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	Department     string    `json:"department,omitempty"`
	JobTitle       string    `json:"job_title,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CompanyProfile is the tenant's public face plus its payment gateway
// configuration. The gateway secret never leaves the server.
type CompanyProfile struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	CompanyName    string    `json:"company_name"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	Address        string    `json:"address,omitempty"`
	Logo           string    `json:"logo,omitempty"`
	PaymentGateway string    `json:"payment_gateway,omitempty"`
	Currency       string    `json:"currency,omitempty"`
	APIKey         string    `json:"api_key,omitempty"`
	APISecret      string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func UserProfileFromDataModel(p *profilemodel.UserProfile) *UserProfile {
	return &UserProfile{
		ID:             p.ID,
		UserID:         p.UserID,
		FullName:       p.FullName,
		PhoneNumber:    p.PhoneNumber,
		Department:     p.Department,
		JobTitle:       p.JobTitle,
		ProfilePicture: p.ProfilePicture,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func CompanyProfileFromDataModel(p *profilemodel.CompanyProfile) *CompanyProfile {
	return &CompanyProfile{
		ID:             p.ID,
		UserID:         p.UserID,
		CompanyName:    p.CompanyName,
		PhoneNumber:    p.PhoneNumber,
		Address:        p.Address,
		Logo:           p.Logo,
		PaymentGateway: p.PaymentGateway,
		Currency:       p.Currency,
		APIKey:         p.APIKey,
		APISecret:      p.APISecret,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
