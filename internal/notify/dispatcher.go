// Package notify records notifications for recipients of state-changing
// ticket actions. Dispatch is synchronous: the record is written through the
// caller's transaction, so a failed notification fails the whole operation.
package notify

import (
	"context"
	"strings"

	"github.com/sparksupport/helpdesk/internal/domain"
	"github.com/sparksupport/helpdesk/internal/repository"
	apperrors "github.com/sparksupport/helpdesk/pkg/util"
)

// Dispatcher writes notification records.
type Dispatcher struct {
	notifications repository.NotificationRepository
}

// NewDispatcher binds the dispatcher to a notification store, which may be
// transaction-scoped.
func NewDispatcher(notifications repository.NotificationRepository) *Dispatcher {
	return &Dispatcher{notifications: notifications}
}

// Notify records a notification for recipient. Ticket may be nil for
// notifications not tied to a ticket. Malformed input is rejected, never
// silently swallowed.
func (d *Dispatcher) Notify(ctx context.Context, recipient *domain.User, ticket *domain.Ticket, typ domain.NotificationType, message string) (*domain.Notification, error) {
	if recipient == nil {
		return nil, apperrors.NewValidationError("notification recipient is required", nil)
	}
	if typ == "" {
		return nil, apperrors.NewValidationError("notification type is required", nil)
	}
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.NewValidationError("notification message cannot be blank", nil)
	}

	n := &domain.Notification{
		RecipientID: recipient.ID,
		Type:        typ,
		Message:     message,
	}
	if ticket != nil {
		ticketID := ticket.ID
		n.TicketID = &ticketID
	}
	if err := d.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}
