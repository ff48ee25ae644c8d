package repository

import (
	"context"

	"github.com/sparksupport/helpdesk/internal/domain"
)

// NotificationRepository persists per-recipient notification records.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error)
}

type notificationRepository struct {
	db Querier
}

// NewNotificationRepository builds repository.
func NewNotificationRepository(db Querier) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	const query = `
        INSERT INTO notifications (recipient_id, ticket_id, type, message, sent_at)
        VALUES ($1,$2,$3,$4,NOW())
        RETURNING id, sent_at`
	return r.db.QueryRow(ctx, query,
		n.RecipientID,
		n.TicketID,
		n.Type,
		n.Message,
	).Scan(&n.ID, &n.SentAt)
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	const query = `
        SELECT id, recipient_id, ticket_id, type, message, sent_at
        FROM notifications WHERE recipient_id=$1 ORDER BY sent_at DESC`
	rows, err := r.db.Query(ctx, query, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.RecipientID,
			&n.TicketID,
			&n.Type,
			&n.Message,
			&n.SentAt,
		); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}
