package events

import (
	"time"

	"github.com/spec-kit/legal-request-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
	EventTicketUpdated EventType = "ticket_updated"
	EventTicketDeleted EventType = "ticket_deleted"
	EventMessagePosted EventType = "message_posted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id"`
	ActorID   string      `json:"actor_id"`
	ActorRole domain.Role `json:"actor_role"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	ReferenceKey string                    `json:"reference_key"`
	Nature       domain.NatureOfEngagement `json:"nature_of_engagement"`
	Department   domain.Department         `json:"department"`
	Priority     domain.TicketPriority     `json:"priority"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	OldStatus    domain.TicketStatus   `json:"old_status"`
	NewStatus    domain.TicketStatus   `json:"new_status"`
	Priority     domain.TicketPriority `json:"priority"`
	AssignedToID *string               `json:"assigned_to_id,omitempty"`
}

// MessagePostedPayload payload.
type MessagePostedPayload struct {
	MessageID    int64  `json:"message_id"`
	AdminMessage bool   `json:"admin_message"`
	BodyPreview  string `json:"body_preview"`
}
