package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// ValidStatus reports whether s is one of the four lifecycle states.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// CSAT holds customer-satisfaction scores for a resolved ticket. All three
// scores run 1-5. The whole block is overwritten as a unit on each submission.
type CSAT struct {
	SpeedScore   *int
	QualityScore *int
	OverallScore *int
	Comment      *string
	SubmittedAt  *time.Time
}

// Submitted reports whether a CSAT record has been captured.
func (c CSAT) Submitted() bool {
	return c.SubmittedAt != nil
}

// Ticket is the aggregate for support requests. CustomerID, CategoryID and
// PriorityID are required and immutable after creation; AssignedStaffID is
// nil only while the ticket is unassigned.
type Ticket struct {
	ID              string
	CustomerID      string
	AssignedStaffID *string
	CategoryID      string
	PriorityID      string
	Subject         string
	Description     string
	Status          TicketStatus
	CSAT            CSAT
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
