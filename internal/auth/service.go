package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	internal "github.com/mohspitality/hospitality-management/internal"
	"github.com/mohspitality/hospitality-management/internal/core/common/validation"
	usermodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/user"
	"github.com/mohspitality/hospitality-management/internal/core/events"
)

type RepositoryAPI interface {
	GetUserByEmail(email string) (*usermodel.User, error)
	GetUserByID(userID string) (*usermodel.User, error)
	GetUserWithPermissions(userID string) (*User, error)
	CreateUser(u *usermodel.User) error
	UpdatePassword(userID, passwordHash string) error
	SaveRefreshToken(t *usermodel.RefreshToken) error
	GetRefreshToken(token string) (*usermodel.RefreshToken, error)
	RevokeRefreshToken(token string) error
	RevokeAllRefreshTokens(userID string) error
	CreatePasswordReset(p *usermodel.PasswordReset) error
	GetPasswordReset(token string) (*usermodel.PasswordReset, error)
	MarkPasswordResetUsed(id int64) error
}

type Service struct {
	repo            RepositoryAPI
	tokenGenerator  TokenGenerator
	eventBus        *events.EventBus
	logger          *slog.Logger
	bcryptCost      int
	refreshTokenTTL time.Duration
	resetTokenTTL   time.Duration
}

func NewService(repo RepositoryAPI, tokenGen TokenGenerator, eventBus *events.EventBus, logger *slog.Logger, bcryptCost int, refreshTTL, resetTTL time.Duration) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	if resetTTL <= 0 {
		resetTTL = 24 * time.Hour
	}
	return &Service{
		repo:            repo,
		tokenGenerator:  tokenGen,
		eventBus:        eventBus,
		logger:          logger,
		bcryptCost:      bcryptCost,
		refreshTokenTTL: refreshTTL,
		resetTokenTTL:   resetTTL,
	}
}

// Register creates a company or guest account. Staff accounts are created by
// their company through the user service.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(dto.Password); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetUserByEmail(dto.Email)
	if err != nil && !errors.Is(err, internal.ErrUserNotFound) {
		return nil, internal.NewInternalError("failed to check existing email", err)
	}
	if existing != nil {
		return nil, internal.ErrEmailTaken
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	account := &usermodel.User{
		ID:           NewUserID(),
		Email:        dto.Email,
		PasswordHash: hash,
		UserType:     dto.UserType,
		IsActive:     true,
	}
	if err := s.repo.CreateUser(account); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.ErrEmailTaken
		}
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", account.ID, "user_type", account.UserType)

	return &User{
		ID:               account.ID,
		Email:            account.Email,
		UserType:         usermodel.UserType(account.UserType),
		SubscriptionType: account.SubscriptionType,
	}, nil
}

func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	account, err := s.repo.GetUserByEmail(dto.Email)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}
	if !account.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	if err := VerifyPassword(account.PasswordHash, dto.Password); err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	return s.issueTokens(account)
}

// RefreshTokens rotates the presented refresh token: the old one is revoked
// and a fresh pair is issued.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	stored, err := s.repo.GetRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}
	if stored.IsRevoked {
		return AuthTokens{}, internal.ErrTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return AuthTokens{}, internal.ErrTokenExpired
	}

	account, err := s.repo.GetUserByID(stored.UserID)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}
	if !account.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	if err := s.repo.RevokeRefreshToken(refreshToken); err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to rotate refresh token", err)
	}

	return s.issueTokens(account)
}

func (s *Service) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.repo.RevokeRefreshToken(refreshToken); err != nil {
		s.logger.Warn("logout: failed to revoke refresh token", "error", err)
	}
	return nil
}

// RequestPasswordReset never reveals whether the email exists; callers
// always get an accepted response.
func (s *Service) RequestPasswordReset(dto PasswordResetRequestDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	account, err := s.repo.GetUserByEmail(dto.Email)
	if err != nil {
		s.logger.Info("password reset requested for unknown email")
		return nil
	}

	token, err := GenerateRandomToken()
	if err != nil {
		return internal.NewInternalError("failed to generate reset token", err)
	}

	reset := &usermodel.PasswordReset{
		UserID:    account.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.resetTokenTTL),
	}
	if err := s.repo.CreatePasswordReset(reset); err != nil {
		return internal.NewInternalError("failed to store reset token", err)
	}

	if s.eventBus != nil {
		event := events.NewPasswordResetRequestedEvent(account.ID, account.Email, token)
		if err := s.eventBus.Publish(context.Background(), event); err != nil {
			s.logger.Error("failed to publish password reset event", "error", err)
		}
	}

	s.logger.Info("password reset requested", "user_id", account.ID)
	return nil
}

func (s *Service) ConfirmPasswordReset(dto PasswordResetConfirmDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if err := validation.ValidatePassword(dto.NewPassword); err != nil {
		return err
	}

	reset, err := s.repo.GetPasswordReset(dto.Token)
	if err != nil {
		return internal.ErrInvalidToken
	}
	if reset.IsUsed {
		return internal.ErrInvalidToken
	}
	if time.Now().After(reset.ExpiresAt) {
		return internal.ErrTokenExpired
	}

	hash, err := HashPassword(dto.NewPassword, s.bcryptCost)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}
	if err := s.repo.UpdatePassword(reset.UserID, hash); err != nil {
		return internal.NewInternalError("failed to update password", err)
	}
	if err := s.repo.MarkPasswordResetUsed(reset.ID); err != nil {
		return internal.NewInternalError("failed to consume reset token", err)
	}

	// Every session dies with the old password.
	if err := s.repo.RevokeAllRefreshTokens(reset.UserID); err != nil {
		s.logger.Error("failed to revoke refresh tokens after password reset", "user_id", reset.UserID, "error", err)
	}

	s.logger.Info("password reset completed", "user_id", reset.UserID)
	return nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

func (s *Service) GetUserWithPermissions(userID string) (*User, error) {
	return s.repo.GetUserWithPermissions(userID)
}

func (s *Service) issueTokens(account *usermodel.User) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(account.ID, account.Email, account.UserType)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to sign access token", err)
	}

	refreshToken, err := GenerateRandomToken()
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to generate refresh token", err)
	}
	if err := s.repo.SaveRefreshToken(&usermodel.RefreshToken{
		UserID:    account.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	}); err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to store refresh token", err)
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID, email, userType string) (string, error) {
	expiresAt := time.Now().Add(j.AccessTokenTTL)

	claims := &Claims{
		UserID:   userID,
		Email:    email,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, internal.ErrInvalidToken
}
