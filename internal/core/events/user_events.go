package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePasswordResetRequested = "auth.password_reset_requested"
	EventTypeStaffCreated           = "user.staff_created"
)

type PasswordResetRequestedEvent struct {
	BaseEvent
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	ResetToken string `json:"reset_token"`
}

func NewPasswordResetRequestedEvent(userID, email, resetToken string) *PasswordResetRequestedEvent {
	return &PasswordResetRequestedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePasswordResetRequested,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id": userID,
				"email":   email,
			},
		},
		UserID:     userID,
		Email:      email,
		ResetToken: resetToken,
	}
}

type StaffCreatedEvent struct {
	BaseEvent
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CompanyID string `json:"company_id"`
}

func NewStaffCreatedEvent(userID, email, fullName, companyID string) *StaffCreatedEvent {
	return &StaffCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeStaffCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":    userID,
				"email":      email,
				"full_name":  fullName,
				"company_id": companyID,
			},
		},
		UserID:    userID,
		Email:     email,
		FullName:  fullName,
		CompanyID: companyID,
	}
}
