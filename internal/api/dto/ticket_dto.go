package dto

import (
	"time"

	"github.com/sparksupport/helpdesk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	CategoryID  string `json:"category_id"`
	PriorityID  string `json:"priority_id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// ReplyRequest payload for JSON replies (no attachment).
type ReplyRequest struct {
	Content string `json:"content"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	StaffID string `json:"staff_id"`
}

// CSATRequest carries satisfaction scores. Pointers distinguish absent from
// zero; absent scores are rejected.
type CSATRequest struct {
	SpeedScore   *int   `json:"speed_score"`
	QualityScore *int   `json:"quality_score"`
	OverallScore *int   `json:"overall_score"`
	Comment      string `json:"comment"`
}

// TicketResponse is the wire view of a ticket.
type TicketResponse struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customer_id"`
	AssignedStaffID *string             `json:"assigned_staff_id,omitempty"`
	CategoryID      string              `json:"category_id"`
	PriorityID      string              `json:"priority_id"`
	Subject         string              `json:"subject"`
	Description     string              `json:"description"`
	Status          domain.TicketStatus `json:"status"`
	CSAT            *CSATResponse       `json:"csat,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// CSATResponse is present once a score has been submitted.
type CSATResponse struct {
	SpeedScore   int       `json:"speed_score"`
	QualityScore int       `json:"quality_score"`
	OverallScore int       `json:"overall_score"`
	Comment      string    `json:"comment"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// MessageResponse represents one thread entry.
type MessageResponse struct {
	ID            string    `json:"id"`
	TicketID      string    `json:"ticket_id"`
	SenderID      string    `json:"sender_id"`
	Content       string    `json:"content"`
	AttachmentURL *string   `json:"attachment_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NotificationResponse represents an inbox entry.
type NotificationResponse struct {
	ID       string                  `json:"id"`
	TicketID *string                 `json:"ticket_id,omitempty"`
	Type     domain.NotificationType `json:"type"`
	Message  string                  `json:"message"`
	SentAt   time.Time               `json:"sent_at"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:              ticket.ID,
		CustomerID:      ticket.CustomerID,
		AssignedStaffID: ticket.AssignedStaffID,
		CategoryID:      ticket.CategoryID,
		PriorityID:      ticket.PriorityID,
		Subject:         ticket.Subject,
		Description:     ticket.Description,
		Status:          ticket.Status,
		CreatedAt:       ticket.CreatedAt,
		UpdatedAt:       ticket.UpdatedAt,
	}
	if ticket.CSAT.Submitted() {
		comment := ""
		if ticket.CSAT.Comment != nil {
			comment = *ticket.CSAT.Comment
		}
		resp.CSAT = &CSATResponse{
			SpeedScore:   *ticket.CSAT.SpeedScore,
			QualityScore: *ticket.CSAT.QualityScore,
			OverallScore: *ticket.CSAT.OverallScore,
			Comment:      comment,
			SubmittedAt:  *ticket.CSAT.SubmittedAt,
		}
	}
	return resp
}

// NewMessageResponse maps a domain message.
func NewMessageResponse(msg *domain.Message) MessageResponse {
	return MessageResponse{
		ID:            msg.ID,
		TicketID:      msg.TicketID,
		SenderID:      msg.SenderID,
		Content:       msg.Content,
		AttachmentURL: msg.AttachmentURL,
		CreatedAt:     msg.CreatedAt,
	}
}

// NewNotificationResponse maps a domain notification.
func NewNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:       n.ID,
		TicketID: n.TicketID,
		Type:     n.Type,
		Message:  n.Message,
		SentAt:   n.SentAt,
	}
}
