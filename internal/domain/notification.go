package domain

import "time"

// NotificationType enumerates the events a user can be notified about.
type NotificationType string

const (
	NotificationNewTicket    NotificationType = "NEW_TICKET"
	NotificationStatusChange NotificationType = "STATUS_CHANGE"
	NotificationReply        NotificationType = "REPLY"
)

// Notification is a durable per-recipient record written by the dispatcher.
// Never mutated after creation.
type Notification struct {
	ID          string
	RecipientID string
	TicketID    *string
	Type        NotificationType
	Message     string
	SentAt      time.Time
}
