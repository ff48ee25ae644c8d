package service

import "sync"

// TicketLocks serializes mutating operations per ticket identifier. Different
// tickets proceed in parallel; two operations on the same ticket never
// interleave their read-validate-write cycles. The lock table is shared
// between the lifecycle engine and the CSAT recorder.
type TicketLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewTicketLocks creates an empty lock table.
func NewTicketLocks() *TicketLocks {
	return &TicketLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the ticket's mutex and returns its release func.
func (t *TicketLocks) Lock(ticketID string) func() {
	t.mu.Lock()
	l, ok := t.locks[ticketID]
	if !ok {
		l = &sync.Mutex{}
		t.locks[ticketID] = l
	}
	t.mu.Unlock()

	l.Lock()
	return l.Unlock
}
