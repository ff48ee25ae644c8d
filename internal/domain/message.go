package domain

import "time"

// Message is one entry in a ticket thread. Messages are append-only: once
// created they are never edited, deleted or reordered. CreatedAt is the sole
// ordering key within a ticket.
type Message struct {
	ID            string
	TicketID      string
	SenderID      string
	Content       string
	AttachmentURL *string
	CreatedAt     time.Time
}
