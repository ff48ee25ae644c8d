package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/sparksupport/helpdesk/internal/domain"
	"github.com/sparksupport/helpdesk/internal/repository"
	apperrors "github.com/sparksupport/helpdesk/pkg/util"
)

// fakeDirectory resolves lookups from maps.
type fakeDirectory struct {
	users      map[string]*domain.User
	categories map[string]*domain.Category
	priorities map[string]*domain.Priority
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		users:      make(map[string]*domain.User),
		categories: make(map[string]*domain.Category),
		priorities: make(map[string]*domain.Priority),
	}
}

func (d *fakeDirectory) FindUser(_ context.Context, id string) (*domain.User, error) {
	if u, ok := d.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
}

func (d *fakeDirectory) FindCategory(_ context.Context, id string) (*domain.Category, error) {
	if c, ok := d.categories[id]; ok {
		return c, nil
	}
	return nil, apperrors.NewNotFound("category", map[string]any{"id": id})
}

func (d *fakeDirectory) FindPriority(_ context.Context, id string) (*domain.Priority, error) {
	if p, ok := d.priorities[id]; ok {
		return p, nil
	}
	return nil, apperrors.NewNotFound("priority", map[string]any{"id": id})
}

type memTicketRepo struct {
	seq     int
	tickets map[string]domain.Ticket
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{tickets: make(map[string]domain.Ticket)}
}

func (r *memTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.seq++
	ticket.ID = fmt.Sprintf("T%d", r.seq)
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memTicketRepo) UpdateCSAT(_ context.Context, ticketID string, csat domain.CSAT) error {
	ticket, ok := r.tickets[ticketID]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.CSAT = csat
	r.tickets[ticketID] = ticket
	return nil
}

func (r *memTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := ticket
	return &copied, nil
}

func (r *memTicketRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, t := range r.tickets {
		if t.CustomerID == customerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, t := range r.tickets {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.CategoryID != nil && t.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.PriorityID != nil && t.PriorityID != *filter.PriorityID {
			continue
		}
		if filter.CustomerID != nil && t.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.StaffID != nil && (t.AssignedStaffID == nil || *t.AssignedStaffID != *filter.StaffID) {
			continue
		}
		if filter.SubjectQuery != nil && !strings.Contains(strings.ToLower(t.Subject), strings.ToLower(*filter.SubjectQuery)) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

type memMessageRepo struct {
	seq      int
	messages []domain.Message
}

func (r *memMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.seq++
	msg.ID = fmt.Sprintf("M%d", r.seq)
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *memMessageRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range r.messages {
		if m.TicketID == ticketID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memNotificationRepo struct {
	seq  int
	sent []domain.Notification
}

func (r *memNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.seq++
	n.ID = fmt.Sprintf("N%d", r.seq)
	r.sent = append(r.sent, *n)
	return nil
}

func (r *memNotificationRepo) ListByRecipient(_ context.Context, recipientID string) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range r.sent {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) forRecipient(recipientID string) []domain.Notification {
	out, _ := r.ListByRecipient(context.Background(), recipientID)
	return out
}

// fakeTxRunner hands the same in-memory stores to the transactional closure.
type fakeTxRunner struct {
	stores repository.Stores
}

func (r *fakeTxRunner) InTx(_ context.Context, fn func(s repository.Stores) error) error {
	return fn(r.stores)
}

// harness bundles a fully wired ticket service over in-memory state.
type harness struct {
	dir           *fakeDirectory
	tickets       *memTicketRepo
	messages      *memMessageRepo
	notifications *memNotificationRepo
	service       *TicketService
	csat          *CSATService
}

func newHarness() *harness {
	dir := newFakeDirectory()
	tickets := newMemTicketRepo()
	messages := &memMessageRepo{}
	notifications := &memNotificationRepo{}
	tx := &fakeTxRunner{stores: repository.Stores{
		Tickets:       tickets,
		Messages:      messages,
		Notifications: notifications,
	}}
	locks := NewTicketLocks()
	return &harness{
		dir:           dir,
		tickets:       tickets,
		messages:      messages,
		notifications: notifications,
		service: NewTicketService(TicketDependencies{
			Directory:   dir,
			TicketRepo:  tickets,
			MessageRepo: messages,
			Tx:          tx,
			Locks:       locks,
		}),
		csat: NewCSATService(tickets, tx, locks, nil),
	}
}

func (h *harness) addUser(id string, role domain.Role) *domain.User {
	u := &domain.User{ID: id, Name: id, Email: id + "@example.com", Role: role}
	h.dir.users[id] = u
	return u
}

func (h *harness) addReference() (categoryID, priorityID string) {
	h.dir.categories["C1"] = &domain.Category{ID: "C1", Name: "Billing"}
	h.dir.priorities["P1"] = &domain.Priority{ID: "P1", Name: "High", Level: 3}
	return "C1", "P1"
}
