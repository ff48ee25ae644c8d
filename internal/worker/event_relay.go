// Package worker hosts the in-process subscribers hanging off the domain
// event dispatcher. Everything here is best-effort: the durable notification
// records are written inside the operation's transaction, not by the relay.
package worker

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sparksupport/helpdesk/internal/config"
	"github.com/sparksupport/helpdesk/internal/events"
)

// StartEventRelay subscribes the logging and email/webhook stub handlers to
// every domain event type.
func StartEventRelay(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) {
	if dispatcher == nil {
		return
	}
	relay := &eventRelay{logger: logger, cfg: cfg}
	for _, eventType := range []events.EventType{
		events.EventTicketCreated,
		events.EventTicketStatusChanged,
		events.EventTicketAssigned,
		events.EventTicketReplied,
		events.EventCSATRecorded,
	} {
		dispatcher.Subscribe(eventType, relay.handle)
	}
}

type eventRelay struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

func (r *eventRelay) handle(ctx context.Context, event events.Event) error {
	r.logger.Info("domain event",
		zap.String("type", string(event.Type)),
		zap.String("ticket_id", event.TicketID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	r.sendEmailStub(ctx, event)
	r.sendWebhookStub(ctx, event)
	return nil
}

func (r *eventRelay) sendEmailStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(r.cfg.EmailFrom) == "" {
		return
	}
	r.logger.Debug("email relay stub",
		zap.String("from", r.cfg.EmailFrom),
		zap.String("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}

func (r *eventRelay) sendWebhookStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(r.cfg.WebhookURL) == "" {
		return
	}
	r.logger.Debug("webhook relay stub",
		zap.String("url", r.cfg.WebhookURL),
		zap.String("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}
