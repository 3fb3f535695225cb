package domain

import "time"

// TicketStatus enumerates lifecycle states for legal requests.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusCompleted  TicketStatus = "completed"
	TicketStatusRejected   TicketStatus = "rejected"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// NatureOfEngagement classifies what the requester wants from legal.
type NatureOfEngagement string

const (
	NatureForCopy       NatureOfEngagement = "for_copy"
	NatureForReview     NatureOfEngagement = "for_review"
	NatureForAccess     NatureOfEngagement = "for_access"
	NatureForDataBreach NatureOfEngagement = "for_data_breach"
)

// Company enumerates the contracting companies a request may concern.
type Company string

const (
	CompanyA     Company = "company_a"
	CompanyB     Company = "company_b"
	CompanyC     Company = "company_c"
	CompanyD     Company = "company_d"
	CompanyE     Company = "company_e"
	CompanyOther Company = "other"
)

// Ticket is the aggregate for a single legal request. FirstName, LastName,
// Email and Department are snapshots copied from the owner's profile at
// creation time and never updated afterwards, so historical tickets stay
// accurate even when the profile later changes. OwnerID is immutable.
type Ticket struct {
	ID                        int64
	ReferenceKey              string
	OwnerID                   string
	FirstName                 string
	LastName                  string
	Email                     string
	Department                Department
	Company                   *Company
	ContactNumber             *string
	DueDate                   *time.Time
	NatureOfEngagement        NatureOfEngagement
	DocumentKey               *string
	DetailsOfContractingParty *string
	Remarks                   *string
	Status                    TicketStatus
	AdminComments             *string
	ReviewedDocumentKey       *string
	AssignedToID              *string
	Priority                  TicketPriority
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// ValidStatus reports whether the value is a known lifecycle state.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusPending, TicketStatusInProgress, TicketStatusCompleted, TicketStatusRejected:
		return true
	}
	return false
}

// ValidPriority reports whether the value is a known priority.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// ValidNature reports whether the value is a known nature of engagement.
func ValidNature(n NatureOfEngagement) bool {
	switch n {
	case NatureForCopy, NatureForReview, NatureForAccess, NatureForDataBreach:
		return true
	}
	return false
}

// ValidCompany reports whether the value is a known company code.
func ValidCompany(c Company) bool {
	switch c {
	case CompanyA, CompanyB, CompanyC, CompanyD, CompanyE, CompanyOther:
		return true
	}
	return false
}
