package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mohspitality/hospitality-management/internal/core/events"
)

type EventHandler struct {
	mailer *Mailer
	logger *slog.Logger
}

func NewEventHandler(mailer *Mailer, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		mailer: mailer,
		logger: logger,
	}
}

func (h *EventHandler) HandlePasswordResetRequested(ctx context.Context, event events.Event) error {
	resetEvent, ok := event.(*events.PasswordResetRequestedEvent)
	if !ok {
		h.logger.Error("invalid event type for password reset handler", "event_type", event.EventType())
		return fmt.Errorf("expected PasswordResetRequestedEvent, got %T", event)
	}

	if err := h.mailer.SendPasswordResetEmail(resetEvent.Email, resetEvent.ResetToken); err != nil {
		h.logger.Error("failed to send password reset email",
			"user_id", resetEvent.UserID,
			"event_id", resetEvent.EventID(),
			"error", err)
		return err
	}

	return nil
}

func (h *EventHandler) HandleStaffCreated(ctx context.Context, event events.Event) error {
	staffEvent, ok := event.(*events.StaffCreatedEvent)
	if !ok {
		h.logger.Error("invalid event type for staff created handler", "event_type", event.EventType())
		return fmt.Errorf("expected StaffCreatedEvent, got %T", event)
	}

	if err := h.mailer.SendStaffWelcomeEmail(staffEvent.Email, staffEvent.FullName); err != nil {
		h.logger.Error("failed to send staff welcome email",
			"user_id", staffEvent.UserID,
			"event_id", staffEvent.EventID(),
			"error", err)
		return err
	}

	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypePasswordResetRequested, h.HandlePasswordResetRequested)
	eventBus.Subscribe(events.EventTypeStaffCreated, h.HandleStaffCreated)

	h.logger.Info("mailer event handlers registered",
		"handlers", []string{events.EventTypePasswordResetRequested, events.EventTypeStaffCreated})
}
