package events

import (
	"time"

	"github.com/sparksupport/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketReplied       EventType = "ticket_replied"
	EventCSATRecorded        EventType = "csat_recorded"
)

// Event represents a domain event emitted by services after commit. The relay
// is best-effort; durable notifications are written inside the transaction.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	CategoryID string `json:"category_id"`
	PriorityID string `json:"priority_id"`
	Subject    string `json:"subject"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	StaffID string `json:"staff_id"`
}

// TicketRepliedPayload payload.
type TicketRepliedPayload struct {
	MessageID   string `json:"message_id"`
	SenderID    string `json:"sender_id"`
	BodyPreview string `json:"body_preview"`
}

// CSATRecordedPayload payload.
type CSATRecordedPayload struct {
	SpeedScore   int `json:"speed_score"`
	QualityScore int `json:"quality_score"`
	OverallScore int `json:"overall_score"`
}
