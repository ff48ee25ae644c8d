package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sparksupport/helpdesk/internal/domain"
	"github.com/sparksupport/helpdesk/internal/events"
	"github.com/sparksupport/helpdesk/internal/notify"
	"github.com/sparksupport/helpdesk/internal/policy"
	"github.com/sparksupport/helpdesk/internal/repository"
	apperrors "github.com/sparksupport/helpdesk/pkg/util"
)

// Directory resolves identifiers into typed records.
type Directory interface {
	FindUser(ctx context.Context, id string) (*domain.User, error)
	FindCategory(ctx context.Context, id string) (*domain.Category, error)
	FindPriority(ctx context.Context, id string) (*domain.Priority, error)
}

// TicketService owns the ticket lifecycle: status transitions, assignment,
// reply rules, and the notifications each accepted mutation fans out.
type TicketService struct {
	directory  Directory
	tickets    repository.TicketRepository
	messages   repository.MessageRepository
	tx         repository.TxRunner
	locks      *TicketLocks
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Directory   Directory
	TicketRepo  repository.TicketRepository
	MessageRepo repository.MessageRepository
	Tx          repository.TxRunner
	Locks       *TicketLocks
	Dispatcher  events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	locks := deps.Locks
	if locks == nil {
		locks = NewTicketLocks()
	}
	return &TicketService{
		directory:  deps.Directory,
		tickets:    deps.TicketRepo,
		messages:   deps.MessageRepo,
		tx:         deps.Tx,
		locks:      locks,
		dispatcher: deps.Dispatcher,
	}
}

// SubmitTicket creates a ticket for a customer and notifies them.
func (s *TicketService) SubmitTicket(ctx context.Context, customerID, categoryID, priorityID, subject, description string) (*domain.Ticket, error) {
	if customerID == "" || categoryID == "" || priorityID == "" {
		return nil, apperrors.NewValidationError("customerId, categoryId and priorityId are required", nil)
	}
	subject = strings.TrimSpace(subject)
	description = strings.TrimSpace(description)
	if subject == "" || description == "" {
		return nil, apperrors.NewValidationError("subject and description are required", nil)
	}

	customer, err := s.directory.FindUser(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.Role != domain.RoleCustomer {
		return nil, apperrors.NewRoleMismatch("user is not a customer", map[string]any{"user_id": customerID})
	}
	category, err := s.directory.FindCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	priority, err := s.directory.FindPriority(ctx, priorityID)
	if err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		CustomerID:  customer.ID,
		CategoryID:  category.ID,
		PriorityID:  priority.ID,
		Subject:     subject,
		Description: description,
		Status:      domain.TicketStatusOpen,
	}

	err = s.tx.InTx(ctx, func(tx repository.Stores) error {
		if err := tx.Tickets.Create(ctx, ticket); err != nil {
			return err
		}
		dispatcher := notify.NewDispatcher(tx.Notifications)
		_, err := dispatcher.Notify(ctx, customer, ticket, domain.NotificationNewTicket,
			"Your ticket has been created: "+subject)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  customer.ID,
		Payload: events.TicketCreatedPayload{
			CategoryID: ticket.CategoryID,
			PriorityID: ticket.PriorityID,
			Subject:    ticket.Subject,
		},
	})
	return ticket, nil
}

// ListCustomerTickets returns all tickets owned by the customer.
func (s *TicketService) ListCustomerTickets(ctx context.Context, customerID string) ([]domain.Ticket, error) {
	return s.tickets.ListByCustomer(ctx, customerID)
}

// GetTicket fetches one ticket. Callers evaluate the access policy.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// GetThread returns the ticket's messages in chronological order. Access is
// all-or-nothing per ticket and enforced by the caller via policy.CanView.
func (s *TicketService) GetThread(ctx context.Context, ticketID string) ([]domain.Message, error) {
	if _, err := s.GetTicket(ctx, ticketID); err != nil {
		return nil, err
	}
	return s.messages.ListByTicket(ctx, ticketID)
}

// Reply appends a message to the thread. A staff or admin reply to an OPEN
// ticket moves it to IN_PROGRESS as a side effect, with its own notification.
func (s *TicketService) Reply(ctx context.Context, ticketID, senderID, content string, attachmentURL *string) (*domain.Message, error) {
	unlock := s.locks.Lock(ticketID)
	defer unlock()

	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	sender, err := s.directory.FindUser(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(sender, ticket) {
		return nil, apperrors.NewForbidden("you are not allowed to reply on this ticket")
	}
	if ticket.Status == domain.TicketStatusClosed {
		return nil, apperrors.NewConflict("ticket is closed; replies are not allowed", nil)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("message content cannot be empty", nil)
	}

	customer, err := s.directory.FindUser(ctx, ticket.CustomerID)
	if err != nil {
		return nil, err
	}
	var assignedStaff *domain.User
	if ticket.AssignedStaffID != nil {
		if assignedStaff, err = s.directory.FindUser(ctx, *ticket.AssignedStaffID); err != nil {
			return nil, err
		}
	}

	msg := &domain.Message{
		TicketID:      ticket.ID,
		SenderID:      sender.ID,
		Content:       content,
		AttachmentURL: attachmentURL,
	}
	autoTransition := sender.Role.IsStaff() && ticket.Status == domain.TicketStatusOpen

	err = s.tx.InTx(ctx, func(tx repository.Stores) error {
		dispatcher := notify.NewDispatcher(tx.Notifications)
		if autoTransition {
			ticket.Status = domain.TicketStatusInProgress
			if err := tx.Tickets.Update(ctx, ticket); err != nil {
				return err
			}
			if _, err := dispatcher.Notify(ctx, customer, ticket, domain.NotificationStatusChange,
				"Your ticket status changed to IN_PROGRESS"); err != nil {
				return err
			}
		}
		if err := tx.Messages.Create(ctx, msg); err != nil {
			return err
		}
		if sender.Role.IsStaff() {
			_, err := dispatcher.Notify(ctx, customer, ticket, domain.NotificationReply,
				fmt.Sprintf("Support replied to ticket #%s", ticket.ID))
			return err
		}
		if assignedStaff != nil {
			_, err := dispatcher.Notify(ctx, assignedStaff, ticket, domain.NotificationReply,
				fmt.Sprintf("Customer replied on ticket #%s", ticket.ID))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if autoTransition {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			ActorID:  sender.ID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: domain.TicketStatusOpen,
				NewStatus: domain.TicketStatusInProgress,
			},
		})
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketReplied,
		TicketID: ticket.ID,
		ActorID:  sender.ID,
		Payload: events.TicketRepliedPayload{
			MessageID:   msg.ID,
			SenderID:    sender.ID,
			BodyPreview: stringPreview(msg.Content, 120),
		},
	})
	return msg, nil
}

// AssignTicket sets or overwrites the assigned staff member and notifies
// them. The previously assigned staff member is not notified.
func (s *TicketService) AssignTicket(ctx context.Context, ticketID, staffID string) (*domain.Ticket, error) {
	unlock := s.locks.Lock(ticketID)
	defer unlock()

	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	staff, err := s.directory.FindUser(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if !staff.Role.IsStaff() {
		return nil, apperrors.NewRoleMismatch("user is not staff", map[string]any{"user_id": staffID})
	}

	staffRef := staff.ID
	ticket.AssignedStaffID = &staffRef

	err = s.tx.InTx(ctx, func(tx repository.Stores) error {
		if err := tx.Tickets.Update(ctx, ticket); err != nil {
			return err
		}
		dispatcher := notify.NewDispatcher(tx.Notifications)
		_, err := dispatcher.Notify(ctx, staff, ticket, domain.NotificationNewTicket,
			fmt.Sprintf("A ticket has been assigned to you: #%s", ticket.ID))
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		ActorID:  staff.ID,
		Payload:  events.TicketAssignedPayload{StaffID: staff.ID},
	})
	return ticket, nil
}

// UpdateStatus moves the ticket to newStatus and notifies the customer.
// The single forbidden edge is CLOSED to IN_PROGRESS.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown ticket status", map[string]any{"status": newStatus})
	}

	unlock := s.locks.Lock(ticketID)
	defer unlock()

	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketStatusClosed && newStatus == domain.TicketStatusInProgress {
		return nil, apperrors.NewConflict("cannot move from CLOSED to IN_PROGRESS directly", nil)
	}

	customer, err := s.directory.FindUser(ctx, ticket.CustomerID)
	if err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	ticket.Status = newStatus

	err = s.tx.InTx(ctx, func(tx repository.Stores) error {
		if err := tx.Tickets.Update(ctx, ticket); err != nil {
			return err
		}
		dispatcher := notify.NewDispatcher(tx.Notifications)
		_, err := dispatcher.Notify(ctx, customer, ticket, domain.NotificationStatusChange,
			"Your ticket status changed to "+string(newStatus))
		return err
	})
	if err != nil {
		ticket.Status = oldStatus
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  customer.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return ticket, nil
}

// ResolveTicket marks the ticket RESOLVED.
func (s *TicketService) ResolveTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	return s.UpdateStatus(ctx, ticketID, domain.TicketStatusResolved)
}

// CloseTicket marks the ticket CLOSED.
func (s *TicketService) CloseTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	return s.UpdateStatus(ctx, ticketID, domain.TicketStatusClosed)
}

// ReopenTicket moves the ticket back to OPEN.
func (s *TicketService) ReopenTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	return s.UpdateStatus(ctx, ticketID, domain.TicketStatusOpen)
}

// ListTickets answers dashboard queries. All supplied filters apply at once;
// the result is their intersection.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	return s.tickets.ListWithFilter(ctx, filter)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
