package policy

import (
	"testing"

	"github.com/sparksupport/helpdesk/internal/domain"
)

func ticketOwnedBy(customerID string, staffID *string, status domain.TicketStatus) *domain.Ticket {
	return &domain.Ticket{
		ID:              "T1",
		CustomerID:      customerID,
		AssignedStaffID: staffID,
		Status:          status,
	}
}

func TestCanView(t *testing.T) {
	staffID := "staff-1"
	ticket := ticketOwnedBy("cust-1", &staffID, domain.TicketStatusOpen)

	cases := []struct {
		name    string
		subject *domain.User
		want    bool
	}{
		{"owner", &domain.User{ID: "cust-1", Role: domain.RoleCustomer}, true},
		{"other customer", &domain.User{ID: "cust-2", Role: domain.RoleCustomer}, false},
		{"assigned staff", &domain.User{ID: "staff-1", Role: domain.RoleStaff}, true},
		{"unassigned staff", &domain.User{ID: "staff-2", Role: domain.RoleStaff}, false},
		{"admin", &domain.User{ID: "admin-1", Role: domain.RoleAdmin}, true},
		{"nil subject", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanView(tc.subject, ticket); got != tc.want {
				t.Errorf("CanView = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanViewUnassignedTicket(t *testing.T) {
	ticket := ticketOwnedBy("cust-1", nil, domain.TicketStatusOpen)
	staff := &domain.User{ID: "staff-1", Role: domain.RoleStaff}
	if CanView(staff, ticket) {
		t.Error("staff without assignment should not view")
	}
}

func TestCanReplyDeniedOnClosedTicket(t *testing.T) {
	owner := &domain.User{ID: "cust-1", Role: domain.RoleCustomer}

	open := ticketOwnedBy("cust-1", nil, domain.TicketStatusOpen)
	if !CanReply(owner, open) {
		t.Error("owner should reply on an open ticket")
	}

	closed := ticketOwnedBy("cust-1", nil, domain.TicketStatusClosed)
	if CanReply(owner, closed) {
		t.Error("nobody replies on a closed ticket")
	}

	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}
	if CanReply(admin, closed) {
		t.Error("even admins cannot reply on a closed ticket")
	}
}
