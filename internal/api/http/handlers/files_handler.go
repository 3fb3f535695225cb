package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/legal-request-service/internal/auth"
	"github.com/spec-kit/legal-request-service/internal/service"
	"github.com/spec-kit/legal-request-service/internal/storage"
	apperrors "github.com/spec-kit/legal-request-service/pkg/util"
)

// FilesHandler streams stored ticket documents for download.
type FilesHandler struct {
	tickets *service.TicketService
	store   storage.Store
}

// NewFilesHandler constructs handler.
func NewFilesHandler(tickets *service.TicketService, store storage.Store) *FilesHandler {
	return &FilesHandler{tickets: tickets, store: store}
}

// Download handles GET /tickets/:id/documents/:kind where kind is
// "original" or "reviewed". Access follows ticket detail semantics.
func (h *FilesHandler) Download(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	ticket, err := h.tickets.Get(c.Context(), actor, id)
	if err != nil {
		return err
	}

	var key *string
	switch c.Params("kind") {
	case "original":
		key = ticket.DocumentKey
	case "reviewed":
		key = ticket.ReviewedDocumentKey
	default:
		return apperrors.NewNotFound("document", nil)
	}
	if key == nil {
		return apperrors.NewNotFound("document", nil)
	}
	return sendBlob(c, h.store, *key)
}

func sendBlob(c *fiber.Ctx, store storage.Store, key string) error {
	blob, err := store.Open(key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NewNotFound("document", nil)
		}
		return err
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", store.FileName(key)))
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.SendStream(blob)
}
