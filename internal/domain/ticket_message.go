package domain

import "time"

// TicketMessage is one entry in a ticket's conversation thread. IsAdminMessage
// is derived from the sender's role when the message is created and never
// changes; IsRead flips when the opposite party views the thread.
type TicketMessage struct {
	ID             int64
	TicketID       int64
	SenderID       string
	Body           string
	AttachmentKey  *string
	IsAdminMessage bool
	IsRead         bool
	CreatedAt      time.Time
}
