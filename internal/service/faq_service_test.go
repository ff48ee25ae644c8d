package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sparksupport/helpdesk/internal/domain"
	apperrors "github.com/sparksupport/helpdesk/pkg/util"
)

type memFAQRepo struct {
	seq  int
	faqs map[string]domain.FAQ
}

func newMemFAQRepo() *memFAQRepo {
	return &memFAQRepo{faqs: make(map[string]domain.FAQ)}
}

func (r *memFAQRepo) Create(_ context.Context, faq *domain.FAQ) error {
	r.seq++
	faq.ID = fmt.Sprintf("F%d", r.seq)
	faq.CreatedAt = time.Now()
	faq.UpdatedAt = faq.CreatedAt
	r.faqs[faq.ID] = *faq
	return nil
}

func (r *memFAQRepo) Update(_ context.Context, faq *domain.FAQ) error {
	if _, ok := r.faqs[faq.ID]; !ok {
		return pgx.ErrNoRows
	}
	faq.UpdatedAt = time.Now()
	r.faqs[faq.ID] = *faq
	return nil
}

func (r *memFAQRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.faqs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.faqs, id)
	return nil
}

func (r *memFAQRepo) GetByID(_ context.Context, id string) (*domain.FAQ, error) {
	faq, ok := r.faqs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := faq
	return &copied, nil
}

func (r *memFAQRepo) List(_ context.Context, activeOnly bool) ([]domain.FAQ, error) {
	var out []domain.FAQ
	for _, f := range r.faqs {
		if activeOnly && !f.Active {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func newFAQService() (*FAQService, *memFAQRepo) {
	repo := newMemFAQRepo()
	return NewFAQService(repo, nil, 0, nil), repo
}

func TestCreateFAQActiveByDefault(t *testing.T) {
	svc, _ := newFAQService()

	faq, err := svc.CreateFAQ(context.Background(), "How do I reset my password?", "Use the reset link.", nil)
	if err != nil {
		t.Fatalf("CreateFAQ: %v", err)
	}
	if !faq.Active {
		t.Error("new FAQ should be active")
	}
	if faq.ID == "" {
		t.Error("id not assigned")
	}
}

func TestCreateFAQRejectsBlankFields(t *testing.T) {
	svc, _ := newFAQService()

	_, err := svc.CreateFAQ(context.Background(), "  ", "answer", nil)
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("code = %s, want VALIDATION_FAILED", code)
	}
}

func TestToggleFAQFlipsActive(t *testing.T) {
	svc, _ := newFAQService()
	ctx := context.Background()
	faq, err := svc.CreateFAQ(ctx, "Q", "A", nil)
	if err != nil {
		t.Fatalf("CreateFAQ: %v", err)
	}

	toggled, err := svc.ToggleFAQ(ctx, faq.ID)
	if err != nil {
		t.Fatalf("ToggleFAQ: %v", err)
	}
	if toggled.Active {
		t.Error("toggle should deactivate")
	}

	active, err := svc.ListActiveFAQs(ctx)
	if err != nil {
		t.Fatalf("ListActiveFAQs: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active FAQs = %d, want 0", len(active))
	}

	all, err := svc.ListAllFAQs(ctx)
	if err != nil {
		t.Fatalf("ListAllFAQs: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("all FAQs = %d, want 1", len(all))
	}
}

func TestUpdateFAQUnknownID(t *testing.T) {
	svc, _ := newFAQService()

	_, err := svc.UpdateFAQ(context.Background(), "missing", "Q", "A")
	if !apperrors.IsNotFound(err) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestDeleteFAQRemovesEntry(t *testing.T) {
	svc, repo := newFAQService()
	ctx := context.Background()
	faq, err := svc.CreateFAQ(ctx, "Q", "A", nil)
	if err != nil {
		t.Fatalf("CreateFAQ: %v", err)
	}

	if err := svc.DeleteFAQ(ctx, faq.ID); err != nil {
		t.Fatalf("DeleteFAQ: %v", err)
	}
	if len(repo.faqs) != 0 {
		t.Error("FAQ not deleted")
	}
	if err := svc.DeleteFAQ(ctx, faq.ID); !apperrors.IsNotFound(err) {
		t.Errorf("second delete: err = %v, want NOT_FOUND", err)
	}
}
