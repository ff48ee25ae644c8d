package notify

import (
	"context"
	"testing"

	"github.com/sparksupport/helpdesk/internal/domain"
	apperrors "github.com/sparksupport/helpdesk/pkg/util"
)

type recordingRepo struct {
	created []domain.Notification
}

func (r *recordingRepo) Create(_ context.Context, n *domain.Notification) error {
	n.ID = "N1"
	r.created = append(r.created, *n)
	return nil
}

func (r *recordingRepo) ListByRecipient(_ context.Context, recipientID string) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range r.created {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func TestNotifyRecordsNotification(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(repo)
	recipient := &domain.User{ID: "u1", Role: domain.RoleCustomer}
	ticket := &domain.Ticket{ID: "T1", CustomerID: "u1"}

	n, err := d.Notify(context.Background(), recipient, ticket, domain.NotificationReply, "Support replied to ticket #T1")
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if n.RecipientID != "u1" {
		t.Errorf("recipient = %s, want u1", n.RecipientID)
	}
	if n.TicketID == nil || *n.TicketID != "T1" {
		t.Error("ticket reference missing")
	}
	if len(repo.created) != 1 {
		t.Fatalf("stored = %d, want 1", len(repo.created))
	}
}

func TestNotifyWithoutTicket(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(repo)
	recipient := &domain.User{ID: "u1"}

	n, err := d.Notify(context.Background(), recipient, nil, domain.NotificationStatusChange, "hello")
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if n.TicketID != nil {
		t.Error("ticket id should be nil")
	}
}

func TestNotifyRejectsMalformedInput(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(repo)
	recipient := &domain.User{ID: "u1"}
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
	}{
		{"nil recipient", func() error {
			_, err := d.Notify(ctx, nil, nil, domain.NotificationReply, "msg")
			return err
		}},
		{"empty type", func() error {
			_, err := d.Notify(ctx, recipient, nil, "", "msg")
			return err
		}},
		{"blank message", func() error {
			_, err := d.Notify(ctx, recipient, nil, domain.NotificationReply, "   ")
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if err == nil {
				t.Fatal("expected error")
			}
			if code := apperrors.ToDomainError(err).Code; code != "VALIDATION_FAILED" {
				t.Errorf("code = %s, want VALIDATION_FAILED", code)
			}
		})
	}
	if len(repo.created) != 0 {
		t.Errorf("stored = %d, want 0", len(repo.created))
	}
}
