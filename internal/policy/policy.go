// Package policy holds the pure access predicates gating every read and
// write of ticket content. No side effects, no storage access.
package policy

import "github.com/sparksupport/helpdesk/internal/domain"

// CanView reports whether subject may read the ticket and its thread.
// Permitted iff the subject is an admin, the owning customer, or the
// currently assigned staff member. Unassigned staff get nothing.
func CanView(subject *domain.User, ticket *domain.Ticket) bool {
	if subject == nil || ticket == nil {
		return false
	}
	if subject.Role == domain.RoleAdmin {
		return true
	}
	if subject.ID == ticket.CustomerID {
		return true
	}
	return ticket.AssignedStaffID != nil && subject.ID == *ticket.AssignedStaffID
}

// CanReply is the stricter predicate: viewing access plus an open thread.
func CanReply(subject *domain.User, ticket *domain.Ticket) bool {
	if !CanView(subject, ticket) {
		return false
	}
	return ticket.Status != domain.TicketStatusClosed
}
