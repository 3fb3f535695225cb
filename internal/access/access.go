// Package access holds the pure authorization predicates for the legal-request
// workflow. Every entry point composes these over an explicit (actor, resource)
// pair; there is no ambient current-user state.
package access

import "github.com/spec-kit/legal-request-service/internal/domain"

// CanAccessTicket reports whether the actor may see a ticket and its
// conversation: legal admins and superusers see everything, department users
// only their own tickets.
func CanAccessTicket(actor *domain.User, ticket *domain.Ticket) bool {
	if actor == nil || ticket == nil {
		return false
	}
	if actor.IsSuperuser || actor.IsLegalAdmin() {
		return true
	}
	return ticket.OwnerID == actor.ID
}

// CanMutateTicket reports whether the actor may change ticket state
// (status, comments, assignee, priority, reviewed document).
func CanMutateTicket(actor *domain.User) bool {
	if actor == nil {
		return false
	}
	return actor.IsSuperuser || actor.IsLegalAdmin()
}

// CanListAllTickets reports whether the actor's listings span every ticket
// rather than only their own.
func CanListAllTickets(actor *domain.User) bool {
	return CanMutateTicket(actor)
}

// CanAdministerSystem reports whether the actor may perform system-admin
// operations such as account management and ticket deletion.
func CanAdministerSystem(actor *domain.User) bool {
	return actor != nil && actor.IsSuperuser
}
