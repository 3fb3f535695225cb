package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/legal-request-service/internal/access"
	"github.com/spec-kit/legal-request-service/internal/domain"
	"github.com/spec-kit/legal-request-service/internal/events"
	"github.com/spec-kit/legal-request-service/internal/repository"
	apperrors "github.com/spec-kit/legal-request-service/pkg/util"
)

// ConversationService manages the append-only message thread per ticket and
// its read-state bookkeeping.
type ConversationService struct {
	tickets    repository.TicketRepository
	messages   repository.TicketMessageRepository
	dispatcher events.Dispatcher
}

// ConversationDependencies bundles repositories for the conversation service.
type ConversationDependencies struct {
	TicketRepo  repository.TicketRepository
	MessageRepo repository.TicketMessageRepository
	Dispatcher  events.Dispatcher
}

// NewConversationService constructs the service.
func NewConversationService(deps ConversationDependencies) *ConversationService {
	return &ConversationService{
		tickets:    deps.TicketRepo,
		messages:   deps.MessageRepo,
		dispatcher: deps.Dispatcher,
	}
}

// PostMessage appends a message to the ticket's thread. The admin flag is
// derived from the sender's role; new messages always start unread.
func (s *ConversationService) PostMessage(ctx context.Context, actor *domain.User, ticketID int64, body string, attachmentKey *string) (*domain.TicketMessage, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !access.CanAccessTicket(actor, ticket) {
		return nil, apperrors.NewForbidden("no access to this ticket")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("message body required", map[string]any{"message": "must not be empty"})
	}

	msg := &domain.TicketMessage{
		TicketID:       ticket.ID,
		SenderID:       actor.ID,
		Body:           body,
		AttachmentKey:  attachmentKey,
		IsAdminMessage: actor.IsLegalAdmin(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:      events.EventMessagePosted,
		TicketID:  ticket.ID,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Payload: events.MessagePostedPayload{
			MessageID:    msg.ID,
			AdminMessage: msg.IsAdminMessage,
			BodyPreview:  preview(msg.Body, 120),
		},
	})
	return msg, nil
}

// ListConversation returns the thread oldest-first. Viewing is what marks the
// opposite side's messages read: an admin viewer flips the requester's
// messages, the owner flips admin messages. Re-viewing an already-read thread
// changes nothing.
func (s *ConversationService) ListConversation(ctx context.Context, actor *domain.User, ticketID int64) ([]domain.TicketMessage, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !access.CanAccessTicket(actor, ticket) {
		// concealment: thread reads behave like ticket detail reads
		return nil, apperrors.NewNotFound("ticket", nil)
	}

	viewerIsAdmin := access.CanMutateTicket(actor)
	if _, err := s.messages.MarkRead(ctx, ticket.ID, !viewerIsAdmin); err != nil {
		return nil, err
	}
	return s.messages.ListByTicket(ctx, ticket.ID)
}

// UnreadCount reports how many messages addressed to the actor's side are
// still unread, for dashboard badges.
func (s *ConversationService) UnreadCount(ctx context.Context, actor *domain.User, ticketID int64) (int64, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return 0, err
	}
	if !access.CanAccessTicket(actor, ticket) {
		return 0, apperrors.NewNotFound("ticket", nil)
	}
	viewerIsAdmin := access.CanMutateTicket(actor)
	return s.messages.CountUnread(ctx, ticket.ID, !viewerIsAdmin)
}

// GetMessage fetches one message for attachment download, with the same
// access gating as the thread itself.
func (s *ConversationService) GetMessage(ctx context.Context, actor *domain.User, ticketID, messageID int64) (*domain.TicketMessage, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !access.CanAccessTicket(actor, ticket) {
		return nil, apperrors.NewNotFound("ticket", nil)
	}
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("message", nil)
		}
		return nil, err
	}
	if msg.TicketID != ticket.ID {
		return nil, apperrors.NewNotFound("message", nil)
	}
	return msg, nil
}

func (s *ConversationService) loadTicket(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}
	return ticket, nil
}

func (s *ConversationService) publish(ctx context.Context, event events.Event) {
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

func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
