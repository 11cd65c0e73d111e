package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	usermodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/user"
)

type ctxKey string

// ContextUserKey holds the authenticated *User for the request.
const ContextUserKey ctxKey = "authUser"

// User is the authenticated principal as loaded by the middleware: account
// fields plus the role's permission snapshot. Authorization never touches the
// store again after this is built.
type User struct {
	ID               string             `json:"id"`
	Email            string             `json:"email"`
	UserType         usermodel.UserType `json:"user_type"`
	CompanyID        string             `json:"company_id,omitempty"`
	RoleID           *int64             `json:"role_id,omitempty"`
	RoleName         string             `json:"role_name,omitempty"`
	SubscriptionType string             `json:"subscription_type,omitempty"`
	Permissions      []string           `json:"permissions,omitempty"`
}

// EffectiveCompanyID resolves the tenant an operation acts on: a company
// account is its own tenant, staff and guests belong to theirs.
func (u *User) EffectiveCompanyID() string {
	if u.UserType == usermodel.UserTypeCompany {
		return u.ID
	}
	return u.CompanyID
}

func (u *User) IsCompany() bool {
	return u.UserType == usermodel.UserTypeCompany
}

// HasPermission reports snapshot membership. A user without a role, or with
// a role whose snapshot is empty, holds nothing.
func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (u *User) HasAnyPermission(permissions []string) bool {
	for _, userPerm := range u.Permissions {
		for _, requiredPerm := range permissions {
			if userPerm == requiredPerm {
				return true
			}
		}
	}
	return false
}

func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(ContextUserKey).(*User)
	return user, ok
}

func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims carried by access tokens. Refresh tokens are opaque and live in the
// store so they can be revoked.
type Claims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
	jwt.RegisteredClaims
}

type TokenGenerator interface {
	GenerateAccessToken(userID, email, userType string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type ServiceAPI interface {
	Register(dto RegisterDTO) (*User, error)
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	Logout(refreshToken string) error
	RequestPasswordReset(dto PasswordResetRequestDTO) error
	ConfirmPasswordReset(dto PasswordResetConfirmDTO) error
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserWithPermissions(userID string) (*User, error)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// NewUserID mints the dashless uuid used as a user primary key.
func NewUserID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenerateRandomToken generates a cryptographically secure random token,
// used for refresh and password-reset tokens.
func GenerateRandomToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, accessTTL time.Duration) *JWTTokenGenerator {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		AccessTokenTTL: accessTTL,
	}
}
