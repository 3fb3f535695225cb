package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/legal-request-service/internal/api/dto"
	"github.com/spec-kit/legal-request-service/internal/auth"
	"github.com/spec-kit/legal-request-service/internal/domain"
	"github.com/spec-kit/legal-request-service/internal/service"
	"github.com/spec-kit/legal-request-service/internal/storage"
	apperrors "github.com/spec-kit/legal-request-service/pkg/util"
)

// TicketsHandler manages ticket submission, listing and detail endpoints.
type TicketsHandler struct {
	tickets *service.TicketService
	stats   *service.StatsService
	store   storage.Store
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, stats *service.StatsService, store storage.Store) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, stats: stats, store: store}
}

// Create handles POST /tickets (multipart: form fields + optional document).
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	input := service.TicketCreateInput{
		NatureOfEngagement:        domain.NatureOfEngagement(c.FormValue("nature_of_engagement")),
		ContactNumber:             formValuePtr(c, "contact_number"),
		DetailsOfContractingParty: formValuePtr(c, "details_of_contracting_party"),
		Remarks:                   formValuePtr(c, "remarks"),
	}
	if v := c.FormValue("company"); v != "" {
		company := domain.Company(v)
		input.Company = &company
	}
	if v := c.FormValue("due_date"); v != "" {
		due, err := time.Parse("2006-01-02", v)
		if err != nil {
			return apperrors.NewValidationError("invalid due date", map[string]any{"due_date": "expected YYYY-MM-DD"})
		}
		input.DueDate = &due
	}

	if fh, err := c.FormFile("document_attached"); err == nil && fh != nil {
		file, err := fh.Open()
		if err != nil {
			return apperrors.NewValidationError("unreadable attachment", map[string]any{"document_attached": err.Error()})
		}
		key, saveErr := h.store.Save(fh.Filename, file)
		_ = file.Close()
		if saveErr != nil {
			return apperrors.NewValidationError("could not store attachment", map[string]any{"document_attached": saveErr.Error()})
		}
		input.DocumentKey = &key
	}

	ticket, err := h.tickets.Create(c.Context(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// List handles GET /tickets with status/department/company/nature/search
// filters. The response includes role-scoped status counts for dashboards.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter := parseTicketQuery(c)
	tickets, err := h.tickets.List(c.Context(), actor, filter)
	if err != nil {
		return err
	}
	counts, err := h.stats.CountByStatus(c.Context(), actor)
	if err != nil {
		return err
	}

	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": dto.TicketListResponse{Tickets: items, Counts: counts}})
}

// Get handles GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
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
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if v := c.Query("status"); v != "" {
		status := domain.TicketStatus(v)
		filter.Status = &status
	}
	if v := c.Query("department"); v != "" {
		dept := domain.Department(v)
		filter.Department = &dept
	}
	if v := c.Query("company"); v != "" {
		company := domain.Company(v)
		filter.Company = &company
	}
	if v := c.Query("nature"); v != "" {
		nature := domain.NatureOfEngagement(v)
		filter.Nature = &nature
	}
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		filter.SearchTerm = &v
	}
	return filter
}

func parseTicketID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound("ticket", nil)
	}
	return id, nil
}

func formValuePtr(c *fiber.Ctx, key string) *string {
	if v := strings.TrimSpace(c.FormValue(key)); v != "" {
		return &v
	}
	return nil
}
