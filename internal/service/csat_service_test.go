package service

import (
	"context"
	"testing"

	"github.com/sparksupport/helpdesk/internal/domain"
	apperrors "github.com/sparksupport/helpdesk/pkg/util"
)

func intPtr(v int) *int { return &v }

func TestRecordCSATStoresAllFields(t *testing.T) {
	h := newHarness()
	customer := h.addUser("cust-1", domain.RoleCustomer)
	ticket := submitOpenTicket(t, h, customer.ID)

	err := h.csat.RecordCSAT(context.Background(), ticket.ID, intPtr(5), intPtr(4), intPtr(5), "quick and friendly")
	if err != nil {
		t.Fatalf("RecordCSAT: %v", err)
	}

	stored, _ := h.tickets.GetByID(context.Background(), ticket.ID)
	if !stored.CSAT.Submitted() {
		t.Fatal("CSAT not marked submitted")
	}
	if *stored.CSAT.SpeedScore != 5 || *stored.CSAT.QualityScore != 4 || *stored.CSAT.OverallScore != 5 {
		t.Errorf("scores = %d/%d/%d, want 5/4/5",
			*stored.CSAT.SpeedScore, *stored.CSAT.QualityScore, *stored.CSAT.OverallScore)
	}
	if *stored.CSAT.Comment != "quick and friendly" {
		t.Errorf("comment = %q", *stored.CSAT.Comment)
	}
}

func TestRecordCSATResubmissionReplacesEverything(t *testing.T) {
	h := newHarness()
	customer := h.addUser("cust-1", domain.RoleCustomer)
	ticket := submitOpenTicket(t, h, customer.ID)
	ctx := context.Background()

	if err := h.csat.RecordCSAT(ctx, ticket.ID, intPtr(5), intPtr(5), intPtr(5), "great"); err != nil {
		t.Fatalf("first RecordCSAT: %v", err)
	}
	if err := h.csat.RecordCSAT(ctx, ticket.ID, intPtr(2), intPtr(3), intPtr(2), ""); err != nil {
		t.Fatalf("second RecordCSAT: %v", err)
	}

	stored, _ := h.tickets.GetByID(ctx, ticket.ID)
	if *stored.CSAT.SpeedScore != 2 || *stored.CSAT.QualityScore != 3 || *stored.CSAT.OverallScore != 2 {
		t.Error("resubmission did not replace the scores")
	}
	// The comment is replaced too, even by an empty one.
	if *stored.CSAT.Comment != "" {
		t.Errorf("comment = %q, want empty", *stored.CSAT.Comment)
	}
}

func TestRecordCSATRequiresAllThreeScores(t *testing.T) {
	h := newHarness()
	customer := h.addUser("cust-1", domain.RoleCustomer)
	ticket := submitOpenTicket(t, h, customer.ID)

	err := h.csat.RecordCSAT(context.Background(), ticket.ID, intPtr(5), nil, intPtr(4), "")
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("code = %s, want VALIDATION_FAILED", code)
	}
}

func TestRecordCSATRejectsOutOfRangeScore(t *testing.T) {
	h := newHarness()
	customer := h.addUser("cust-1", domain.RoleCustomer)
	ticket := submitOpenTicket(t, h, customer.ID)

	for _, bad := range []int{0, 6, -1} {
		err := h.csat.RecordCSAT(context.Background(), ticket.ID, intPtr(bad), intPtr(3), intPtr(3), "")
		if code := errCode(t, err); code != "VALIDATION_FAILED" {
			t.Errorf("score %d: code = %s, want VALIDATION_FAILED", bad, code)
		}
	}
}

func TestRecordCSATUnknownTicket(t *testing.T) {
	h := newHarness()

	err := h.csat.RecordCSAT(context.Background(), "missing", intPtr(3), intPtr(3), intPtr(3), "")
	if !apperrors.IsNotFound(err) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}
