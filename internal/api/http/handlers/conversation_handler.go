package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/legal-request-service/internal/api/dto"
	"github.com/spec-kit/legal-request-service/internal/auth"
	"github.com/spec-kit/legal-request-service/internal/service"
	"github.com/spec-kit/legal-request-service/internal/storage"
	apperrors "github.com/spec-kit/legal-request-service/pkg/util"
)

// ConversationHandler exposes the per-ticket message thread.
type ConversationHandler struct {
	conversations *service.ConversationService
	store         storage.Store
}

// NewConversationHandler constructs handler.
func NewConversationHandler(conversations *service.ConversationService, store storage.Store) *ConversationHandler {
	return &ConversationHandler{conversations: conversations, store: store}
}

// List handles GET /tickets/:id/messages. Viewing marks the opposite side's
// messages read.
func (h *ConversationHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	msgs, err := h.conversations.ListConversation(c.Context(), actor, id)
	if err != nil {
		return err
	}
	items := make([]dto.MessageResponse, 0, len(msgs))
	for i := range msgs {
		items = append(items, dto.NewMessageResponse(&msgs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Post handles POST /tickets/:id/messages (multipart: message + optional attachment).
func (h *ConversationHandler) Post(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}

	body := c.FormValue("message")
	var attachmentKey *string
	if fh, err := c.FormFile("attachment"); err == nil && fh != nil {
		file, err := fh.Open()
		if err != nil {
			return apperrors.NewValidationError("unreadable attachment", map[string]any{"attachment": err.Error()})
		}
		key, saveErr := h.store.Save(fh.Filename, file)
		_ = file.Close()
		if saveErr != nil {
			return apperrors.NewValidationError("could not store attachment", map[string]any{"attachment": saveErr.Error()})
		}
		attachmentKey = &key
	}

	msg, err := h.conversations.PostMessage(c.Context(), actor, id, body, attachmentKey)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMessageResponse(msg)})
}

// UnreadCount handles GET /tickets/:id/messages/unread-count.
func (h *ConversationHandler) UnreadCount(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	count, err := h.conversations.UnreadCount(c.Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"unread": count}})
}

// DownloadAttachment handles GET /tickets/:id/messages/:messageID/attachment.
func (h *ConversationHandler) DownloadAttachment(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	messageID, err := strconv.ParseInt(c.Params("messageID"), 10, 64)
	if err != nil || messageID <= 0 {
		return apperrors.NewNotFound("message", nil)
	}

	msg, err := h.conversations.GetMessage(c.Context(), actor, ticketID, messageID)
	if err != nil {
		return err
	}
	if msg.AttachmentKey == nil {
		return apperrors.NewNotFound("attachment", nil)
	}
	return sendBlob(c, h.store, *msg.AttachmentKey)
}
