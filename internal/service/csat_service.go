package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sparksupport/helpdesk/internal/domain"
	"github.com/sparksupport/helpdesk/internal/events"
	"github.com/sparksupport/helpdesk/internal/repository"
	apperrors "github.com/sparksupport/helpdesk/pkg/util"
)

// CSATService records customer-satisfaction scores. Each submission replaces
// the prior record in full; no history is kept.
type CSATService struct {
	tickets    repository.TicketRepository
	tx         repository.TxRunner
	locks      *TicketLocks
	dispatcher events.Dispatcher
}

// NewCSATService constructs the recorder. The lock table is shared with the
// ticket service so CSAT writes serialize with lifecycle operations.
func NewCSATService(tickets repository.TicketRepository, tx repository.TxRunner, locks *TicketLocks, dispatcher events.Dispatcher) *CSATService {
	if locks == nil {
		locks = NewTicketLocks()
	}
	return &CSATService{tickets: tickets, tx: tx, locks: locks, dispatcher: dispatcher}
}

// RecordCSAT validates and stores the three scores plus comment as one unit.
func (s *CSATService) RecordCSAT(ctx context.Context, ticketID string, speed, quality, overall *int, comment string) error {
	for name, score := range map[string]*int{"speed": speed, "quality": quality, "overall": overall} {
		if score == nil {
			return apperrors.NewValidationError("all three CSAT scores are required", map[string]any{"missing": name})
		}
		if *score < 1 || *score > 5 {
			return apperrors.NewValidationError("CSAT scores must be between 1 and 5", map[string]any{name: *score})
		}
	}

	unlock := s.locks.Lock(ticketID)
	defer unlock()

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return apperrors.MapError(err)
	}

	now := time.Now()
	csat := domain.CSAT{
		SpeedScore:   speed,
		QualityScore: quality,
		OverallScore: overall,
		Comment:      &comment,
		SubmittedAt:  &now,
	}

	err = s.tx.InTx(ctx, func(tx repository.Stores) error {
		return tx.Tickets.UpdateCSAT(ctx, ticket.ID, csat)
	})
	if err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCSATRecorded,
			TicketID:  ticket.ID,
			ActorID:   ticket.CustomerID,
			Timestamp: now,
			Payload: events.CSATRecordedPayload{
				SpeedScore:   *speed,
				QualityScore: *quality,
				OverallScore: *overall,
			},
		})
	}
	return nil
}
