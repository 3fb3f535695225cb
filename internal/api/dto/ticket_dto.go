package dto

import (
	"time"

	"github.com/spec-kit/legal-request-service/internal/domain"
)

// UpdateTicketRequest is the admin partial update payload. Tickets are
// submitted as multipart forms (the document travels alongside the fields),
// so creation has no JSON request type.
type UpdateTicketRequest struct {
	Status        *domain.TicketStatus   `json:"status"`
	AdminComments *string                `json:"admin_comments"`
	AssignedToID  *string                `json:"assigned_to"`
	Priority      *domain.TicketPriority `json:"priority"`
}

// TicketResponse is the full ticket view.
type TicketResponse struct {
	ID                        int64                     `json:"id"`
	ReferenceKey              string                    `json:"reference_key"`
	OwnerID                   string                    `json:"owner_id"`
	FirstName                 string                    `json:"first_name"`
	LastName                  string                    `json:"last_name"`
	Email                     string                    `json:"email"`
	Department                domain.Department         `json:"department"`
	Company                   *domain.Company           `json:"company,omitempty"`
	ContactNumber             *string                   `json:"contact_number,omitempty"`
	DueDate                   *time.Time                `json:"due_date,omitempty"`
	NatureOfEngagement        domain.NatureOfEngagement `json:"nature_of_engagement"`
	HasDocument               bool                      `json:"has_document"`
	DetailsOfContractingParty *string                   `json:"details_of_contracting_party,omitempty"`
	Remarks                   *string                   `json:"remarks,omitempty"`
	Status                    domain.TicketStatus       `json:"status"`
	AdminComments             *string                   `json:"admin_comments,omitempty"`
	HasReviewedDocument       bool                      `json:"has_reviewed_document"`
	AssignedToID              *string                   `json:"assigned_to,omitempty"`
	Priority                  domain.TicketPriority     `json:"priority"`
	CreatedAt                 time.Time                 `json:"created_at"`
	UpdatedAt                 time.Time                 `json:"updated_at"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:                        t.ID,
		ReferenceKey:              t.ReferenceKey,
		OwnerID:                   t.OwnerID,
		FirstName:                 t.FirstName,
		LastName:                  t.LastName,
		Email:                     t.Email,
		Department:                t.Department,
		Company:                   t.Company,
		ContactNumber:             t.ContactNumber,
		DueDate:                   t.DueDate,
		NatureOfEngagement:        t.NatureOfEngagement,
		HasDocument:               t.DocumentKey != nil,
		DetailsOfContractingParty: t.DetailsOfContractingParty,
		Remarks:                   t.Remarks,
		Status:                    t.Status,
		AdminComments:             t.AdminComments,
		HasReviewedDocument:       t.ReviewedDocumentKey != nil,
		AssignedToID:              t.AssignedToID,
		Priority:                  t.Priority,
		CreatedAt:                 t.CreatedAt,
		UpdatedAt:                 t.UpdatedAt,
	}
}

// TicketListResponse bundles a listing page with dashboard counters.
type TicketListResponse struct {
	Tickets []TicketResponse              `json:"tickets"`
	Counts  map[domain.TicketStatus]int64 `json:"counts"`
}
