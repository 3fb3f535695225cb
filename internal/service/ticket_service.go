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

// TicketService owns the legal-request lifecycle: creation with
// nature-dependent validation, admin processing, role-scoped listing and
// system-admin deletion.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes a requester's submission. Name and email fields
// are intentionally absent: the snapshot is always taken from the owner's
// profile at save time.
type TicketCreateInput struct {
	Company                   *domain.Company
	ContactNumber             *string
	DueDate                   *time.Time
	NatureOfEngagement        domain.NatureOfEngagement
	DocumentKey               *string
	DetailsOfContractingParty *string
	Remarks                   *string
}

// TicketUpdatePatch is the admin-mutable field group. Nil fields are left
// untouched; the whole patch wins last-write style over concurrent updates.
type TicketUpdatePatch struct {
	Status              *domain.TicketStatus
	AdminComments       *string
	ReviewedDocumentKey *string
	AssignedToID        *string
	Priority            *domain.TicketPriority
}

// TicketListFilter describes listing parameters accepted from transport.
type TicketListFilter struct {
	Status     *domain.TicketStatus
	Department *domain.Department
	Company    *domain.Company
	Nature     *domain.NatureOfEngagement
	SearchTerm *string
	Limit      int
	Offset     int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create validates and persists a new request for the acting department user.
// Status is forced to pending and priority to medium; requester identity
// fields are copied from the actor's profile and frozen on the ticket.
func (s *TicketService) Create(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !actor.IsDepartmentUser() {
		return nil, apperrors.NewForbidden("only department users submit requests")
	}
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	department := domain.DepartmentOther
	if actor.Department != nil {
		department = *actor.Department
	}

	ticket := &domain.Ticket{
		ReferenceKey:              generateReferenceKey(),
		OwnerID:                   actor.ID,
		FirstName:                 actor.FirstName,
		LastName:                  actor.LastName,
		Email:                     actor.Email,
		Department:                department,
		Company:                   input.Company,
		ContactNumber:             trimPtr(input.ContactNumber),
		DueDate:                   input.DueDate,
		NatureOfEngagement:        input.NatureOfEngagement,
		DocumentKey:               input.DocumentKey,
		DetailsOfContractingParty: trimPtr(input.DetailsOfContractingParty),
		Remarks:                   trimPtr(input.Remarks),
		Status:                    domain.TicketStatusPending,
		Priority:                  domain.TicketPriorityMedium,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:      events.EventTicketCreated,
		TicketID:  ticket.ID,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Payload: events.TicketCreatedPayload{
			ReferenceKey: ticket.ReferenceKey,
			Nature:       ticket.NatureOfEngagement,
			Department:   ticket.Department,
			Priority:     ticket.Priority,
		},
	})
	return ticket, nil
}

// Get fetches a ticket the actor may see. Tickets outside the actor's scope
// are reported as not found so their existence is never leaked.
func (s *TicketService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}
	if !access.CanAccessTicket(actor, ticket) {
		return nil, apperrors.NewNotFound("ticket", nil)
	}
	return ticket, nil
}

// List returns the role-scoped, filtered ticket listing, newest first.
func (s *TicketService) List(ctx context.Context, actor *domain.User, filter TicketListFilter) ([]domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	repoFilter := repository.TicketFilter{
		Status:     filter.Status,
		Department: filter.Department,
		Company:    filter.Company,
		Nature:     filter.Nature,
		SearchTerm: filter.SearchTerm,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	if !access.CanListAllTickets(actor) {
		ownerID := actor.ID
		repoFilter.OwnerID = &ownerID
	}
	return s.tickets.ListWithFilter(ctx, repoFilter)
}

// AdminUpdate applies a partial admin edit: status, comments, reviewed
// document, assignee and priority. The assignee must hold the legal admin
// role. Owner, creation time and snapshot fields are never touched.
func (s *TicketService) AdminUpdate(ctx context.Context, actor *domain.User, id int64, patch TicketUpdatePatch) (*domain.Ticket, error) {
	if !access.CanMutateTicket(actor) {
		return nil, apperrors.NewForbidden("legal admin required")
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}
	oldStatus := ticket.Status

	if patch.Status != nil {
		if !domain.ValidStatus(*patch.Status) {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": "unknown value"})
		}
		ticket.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !domain.ValidPriority(*patch.Priority) {
			return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": "unknown value"})
		}
		ticket.Priority = *patch.Priority
	}
	if patch.AdminComments != nil {
		ticket.AdminComments = trimPtr(patch.AdminComments)
	}
	if patch.ReviewedDocumentKey != nil {
		ticket.ReviewedDocumentKey = patch.ReviewedDocumentKey
	}
	if patch.AssignedToID != nil {
		if *patch.AssignedToID == "" {
			ticket.AssignedToID = nil
		} else {
			assignee, err := s.users.GetByID(ctx, *patch.AssignedToID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, apperrors.NewValidationError("assignee does not exist", map[string]any{"assigned_to": "unknown user"})
				}
				return nil, err
			}
			if !assignee.IsLegalAdmin() {
				return nil, apperrors.NewValidationError("assignee must be a legal admin", map[string]any{"assigned_to": "user is not a legal admin"})
			}
			ticket.AssignedToID = patch.AssignedToID
		}
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:      events.EventTicketUpdated,
		TicketID:  ticket.ID,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Payload: events.TicketUpdatedPayload{
			OldStatus:    oldStatus,
			NewStatus:    ticket.Status,
			Priority:     ticket.Priority,
			AssignedToID: ticket.AssignedToID,
		},
	})
	return ticket, nil
}

// Delete removes a ticket entirely. This is a system-admin capability, not
// part of the request lifecycle; only superusers may call it.
func (s *TicketService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if !access.CanAdministerSystem(actor) {
		return apperrors.NewForbidden("system administrator required")
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", nil)
		}
		return err
	}
	s.publish(ctx, events.Event{
		Type:      events.EventTicketDeleted,
		TicketID:  id,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
	})
	return nil
}

func validateCreateInput(input TicketCreateInput) error {
	if !domain.ValidNature(input.NatureOfEngagement) {
		return apperrors.NewValidationError("invalid nature of engagement", map[string]any{
			"nature_of_engagement": "unknown value",
		})
	}
	if input.Company != nil && !domain.ValidCompany(*input.Company) {
		return apperrors.NewValidationError("invalid company", map[string]any{"company": "unknown value"})
	}
	if input.NatureOfEngagement == domain.NatureForReview {
		details := map[string]any{}
		if input.DocumentKey == nil || *input.DocumentKey == "" {
			details["document_attached"] = "document attachment is required for review requests"
		}
		if input.DetailsOfContractingParty == nil || strings.TrimSpace(*input.DetailsOfContractingParty) == "" {
			details["details_of_contracting_party"] = "contracting party details are required for review requests"
		}
		if len(details) > 0 {
			return apperrors.NewValidationError("review requests need a document and contracting party details", details)
		}
	}
	return nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
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

func generateReferenceKey() string {
	return "LRQ-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
