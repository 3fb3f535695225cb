package dto

import (
	"time"

	"github.com/spec-kit/legal-request-service/internal/domain"
)

// MessageResponse represents one thread entry. Messages are posted as
// multipart forms (body plus optional attachment), so there is no JSON
// request type.
type MessageResponse struct {
	ID             int64     `json:"id"`
	TicketID       int64     `json:"ticket_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"message"`
	HasAttachment  bool      `json:"has_attachment"`
	IsAdminMessage bool      `json:"is_admin_message"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewMessageResponse maps a domain message.
func NewMessageResponse(m *domain.TicketMessage) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		TicketID:       m.TicketID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		HasAttachment:  m.AttachmentKey != nil,
		IsAdminMessage: m.IsAdminMessage,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}
