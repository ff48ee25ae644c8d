package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/sparksupport/helpdesk/internal/domain"
)

// FAQRepository manages knowledge-base entries.
type FAQRepository interface {
	Create(ctx context.Context, faq *domain.FAQ) error
	Update(ctx context.Context, faq *domain.FAQ) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.FAQ, error)
	List(ctx context.Context, activeOnly bool) ([]domain.FAQ, error)
}

type faqRepository struct {
	db Querier
}

// NewFAQRepository builds repository.
func NewFAQRepository(db Querier) FAQRepository {
	return &faqRepository{db: db}
}

func (r *faqRepository) Create(ctx context.Context, faq *domain.FAQ) error {
	const query = `
        INSERT INTO faqs (question, answer, active, created_by)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		faq.Question,
		faq.Answer,
		faq.Active,
		faq.CreatedBy,
	).Scan(&faq.ID, &faq.CreatedAt, &faq.UpdatedAt)
}

func (r *faqRepository) Update(ctx context.Context, faq *domain.FAQ) error {
	const query = `
        UPDATE faqs SET question=$1, answer=$2, active=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.db.Exec(ctx, query, faq.Question, faq.Answer, faq.Active, faq.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *faqRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM faqs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *faqRepository) GetByID(ctx context.Context, id string) (*domain.FAQ, error) {
	const query = `
        SELECT id, question, answer, active, created_by, created_at, updated_at
        FROM faqs WHERE id=$1`
	var faq domain.FAQ
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&faq.ID,
		&faq.Question,
		&faq.Answer,
		&faq.Active,
		&faq.CreatedBy,
		&faq.CreatedAt,
		&faq.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &faq, nil
}

func (r *faqRepository) List(ctx context.Context, activeOnly bool) ([]domain.FAQ, error) {
	query := `
        SELECT id, question, answer, active, created_by, created_at, updated_at
        FROM faqs`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FAQ
	for rows.Next() {
		var faq domain.FAQ
		if err := rows.Scan(
			&faq.ID,
			&faq.Question,
			&faq.Answer,
			&faq.Active,
			&faq.CreatedBy,
			&faq.CreatedAt,
			&faq.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, faq)
	}
	return result, rows.Err()
}
