package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/sparksupport/helpdesk/internal/domain"
)

// TicketFilter captures dashboard search parameters. Every non-nil field is a
// predicate; the result is the conjunction (AND) of all supplied predicates.
type TicketFilter struct {
	Status       *domain.TicketStatus
	CategoryID   *string
	PriorityID   *string
	CustomerID   *string
	StaffID      *string
	SubjectQuery *string
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	UpdateCSAT(ctx context.Context, ticketID string, csat domain.CSAT) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
}

type ticketRepository struct {
	db Querier
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(db Querier) TicketRepository {
	return &ticketRepository{db: db}
}

const ticketColumns = `id, customer_id, assigned_staff_id, category_id, priority_id,
               subject, description, status,
               csat_speed_score, csat_quality_score, csat_overall_score, csat_comment, csat_submitted_at,
               created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (customer_id, assigned_staff_id, category_id, priority_id, subject, description, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		ticket.CustomerID,
		ticket.AssignedStaffID,
		ticket.CategoryID,
		ticket.PriorityID,
		ticket.Subject,
		ticket.Description,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET assigned_staff_id=$1, status=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.db.Exec(ctx, query,
		ticket.AssignedStaffID,
		ticket.Status,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateCSAT replaces all CSAT fields as a single unit.
func (r *ticketRepository) UpdateCSAT(ctx context.Context, ticketID string, csat domain.CSAT) error {
	const query = `
        UPDATE tickets SET csat_speed_score=$1, csat_quality_score=$2, csat_overall_score=$3,
            csat_comment=$4, csat_submitted_at=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.db.Exec(ctx, query,
		csat.SpeedScore,
		csat.QualityScore,
		csat.OverallScore,
		csat.Comment,
		csat.SubmittedAt,
		ticketID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.db.QueryRow(ctx, query, id).Scan(ticketDest(&ticket)...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Ticket, error) {
	return r.ListWithFilter(ctx, TicketFilter{CustomerID: &customerID})
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	query, args := buildTicketListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// buildTicketListQuery renders the conjunctive filter as a single WHERE
// clause. No filter field takes precedence over another.
func buildTicketListQuery(filter TicketFilter) (string, []any) {
	base := `SELECT ` + ticketColumns + ` FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id=$%d", len(args)))
	}
	if filter.PriorityID != nil {
		args = append(args, *filter.PriorityID)
		clauses = append(clauses, fmt.Sprintf("priority_id=$%d", len(args)))
	}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if filter.StaffID != nil {
		args = append(args, *filter.StaffID)
		clauses = append(clauses, fmt.Sprintf("assigned_staff_id=$%d", len(args)))
	}
	if filter.SubjectQuery != nil && strings.TrimSpace(*filter.SubjectQuery) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.SubjectQuery))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(subject) LIKE $%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY updated_at DESC", base, strings.Join(clauses, " AND "))
	return query, args
}

func ticketDest(ticket *domain.Ticket) []any {
	return []any{
		&ticket.ID,
		&ticket.CustomerID,
		&ticket.AssignedStaffID,
		&ticket.CategoryID,
		&ticket.PriorityID,
		&ticket.Subject,
		&ticket.Description,
		&ticket.Status,
		&ticket.CSAT.SpeedScore,
		&ticket.CSAT.QualityScore,
		&ticket.CSAT.OverallScore,
		&ticket.CSAT.Comment,
		&ticket.CSAT.SubmittedAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	}
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(ticketDest(&ticket)...); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
