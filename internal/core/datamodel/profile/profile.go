package profile

import "time"

type PaymentGateway string

const (
	GatewayFlutterwave PaymentGateway = "flutterwave"
	GatewayPaystack    PaymentGateway = "paystack"
	GatewayStripe      PaymentGateway = "stripe"
	GatewayPaypal      PaymentGateway = "paypal"
)

func (g PaymentGateway) Valid() bool {
	switch g {
	case GatewayFlutterwave, GatewayPaystack, GatewayStripe, GatewayPaypal:
		return true
	}
	return false
}

type UserProfile struct {
	ID             int64     `gorm:"primaryKey"`
	UserID         string    `gorm:"column:user_id;uniqueIndex;not null"`
	FullName       string    `gorm:"column:full_name;not null"`
	PhoneNumber    string    `gorm:"column:phone_number"`
	Department     string    `gorm:"column:department"`
	JobTitle       string    `gorm:"column:job_title"`
	ProfilePicture string    `gorm:"column:profile_picture"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

type CompanyProfile struct {
	ID             int64     `gorm:"primaryKey"`
	UserID         string    `gorm:"column:user_id;uniqueIndex;not null"`
	CompanyName    string    `gorm:"column:company_name;uniqueIndex;not null"`
	PhoneNumber    string    `gorm:"column:phone_number;uniqueIndex"`
	Address        string    `gorm:"column:address"`
	Logo           string    `gorm:"column:logo"`
	APIKey         string    `gorm:"column:api_key"`
	APISecret      string    `gorm:"column:api_secret"`
	PaymentGateway string    `gorm:"column:payment_gateway"`
	Currency       string    `gorm:"column:currency"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
