package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/legal-request-service/internal/api/dto"
	"github.com/spec-kit/legal-request-service/internal/auth"
	"github.com/spec-kit/legal-request-service/internal/service"
	"github.com/spec-kit/legal-request-service/internal/storage"
	apperrors "github.com/spec-kit/legal-request-service/pkg/util"
)

// AdminTicketsHandler exposes the legal-admin processing endpoints.
type AdminTicketsHandler struct {
	tickets *service.TicketService
	store   storage.Store
}

// NewAdminTicketsHandler constructs handler.
func NewAdminTicketsHandler(tickets *service.TicketService, store storage.Store) *AdminTicketsHandler {
	return &AdminTicketsHandler{tickets: tickets, store: store}
}

// Update handles PATCH /admin/tickets/:id with the partial admin field set.
func (h *AdminTicketsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.AdminUpdate(c.Context(), actor, id, service.TicketUpdatePatch{
		Status:        req.Status,
		AdminComments: req.AdminComments,
		AssignedToID:  req.AssignedToID,
		Priority:      req.Priority,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// UploadReviewedDocument handles POST /admin/tickets/:id/reviewed-document.
func (h *AdminTicketsHandler) UploadReviewedDocument(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("reviewed_document")
	if err != nil || fh == nil {
		return apperrors.NewValidationError("reviewed document file required", map[string]any{"reviewed_document": "missing file"})
	}
	file, err := fh.Open()
	if err != nil {
		return apperrors.NewValidationError("unreadable file", map[string]any{"reviewed_document": err.Error()})
	}
	key, saveErr := h.store.Save(fh.Filename, file)
	_ = file.Close()
	if saveErr != nil {
		return apperrors.NewValidationError("could not store file", map[string]any{"reviewed_document": saveErr.Error()})
	}

	ticket, err := h.tickets.AdminUpdate(c.Context(), actor, id, service.TicketUpdatePatch{
		ReviewedDocumentKey: &key,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Delete handles DELETE /system/tickets/:id (superuser only).
func (h *AdminTicketsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	if err := h.tickets.Delete(c.Context(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
