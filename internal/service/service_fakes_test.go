package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/legal-request-service/internal/domain"
	"github.com/spec-kit/legal-request-service/internal/repository"
)

// In-memory repository fakes used across service tests.

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) add(user *domain.User) *domain.User {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]domain.User, error) {
	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

type fakeTicketRepo struct {
	tickets map[int64]*domain.Ticket
	nextID  int64
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[int64]*domain.Ticket), nextID: 1}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	ticket.ID = r.nextID
	r.nextID++
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	stored, ok := r.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	// mirror the SQL statement: only the admin field group changes
	stored.Status = ticket.Status
	stored.AdminComments = ticket.AdminComments
	stored.ReviewedDocumentKey = ticket.ReviewedDocumentKey
	stored.AssignedToID = ticket.AssignedToID
	stored.Priority = ticket.Priority
	stored.UpdatedAt = time.Now()
	ticket.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.OwnerID != nil && ticket.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.Department != nil && ticket.Department != *filter.Department {
			continue
		}
		if filter.Company != nil && (ticket.Company == nil || *ticket.Company != *filter.Company) {
			continue
		}
		if filter.Nature != nil && ticket.NatureOfEngagement != *filter.Nature {
			continue
		}
		if filter.SearchTerm != nil && !matchesSearch(ticket, *filter.SearchTerm) {
			continue
		}
		result = append(result, *ticket)
	}
	// newest first
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].CreatedAt.After(result[i].CreatedAt) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

func matchesSearch(ticket *domain.Ticket, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	return strings.Contains(strconv.FormatInt(ticket.ID, 10), term) ||
		strings.Contains(strings.ToLower(ticket.FirstName), term) ||
		strings.Contains(strings.ToLower(ticket.LastName), term) ||
		strings.Contains(strings.ToLower(ticket.Email), term)
}

func (r *fakeTicketRepo) CountByStatus(_ context.Context, ownerID *string) (map[domain.TicketStatus]int64, error) {
	counts := make(map[domain.TicketStatus]int64)
	for _, ticket := range r.tickets {
		if ownerID != nil && ticket.OwnerID != *ownerID {
			continue
		}
		counts[ticket.Status]++
	}
	return counts, nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

type fakeMessageRepo struct {
	messages []*domain.TicketMessage
	nextID   int64
	clock    time.Time
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{nextID: 1, clock: time.Now()}
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.TicketMessage) error {
	msg.ID = r.nextID
	r.nextID++
	// strictly increasing creation times
	r.clock = r.clock.Add(time.Millisecond)
	msg.CreatedAt = r.clock
	msg.IsRead = false
	copied := *msg
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id int64) (*domain.TicketMessage, error) {
	for _, msg := range r.messages {
		if msg.ID == id {
			copied := *msg
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeMessageRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.TicketMessage, error) {
	var result []domain.TicketMessage
	for _, msg := range r.messages {
		if msg.TicketID == ticketID {
			result = append(result, *msg)
		}
	}
	return result, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, ticketID int64, fromAdmin bool) (int64, error) {
	var affected int64
	for _, msg := range r.messages {
		if msg.TicketID == ticketID && msg.IsAdminMessage == fromAdmin && !msg.IsRead {
			msg.IsRead = true
			affected++
		}
	}
	return affected, nil
}

func (r *fakeMessageRepo) CountUnread(_ context.Context, ticketID int64, fromAdmin bool) (int64, error) {
	var count int64
	for _, msg := range r.messages {
		if msg.TicketID == ticketID && msg.IsAdminMessage == fromAdmin && !msg.IsRead {
			count++
		}
	}
	return count, nil
}

func deptPtr(d domain.Department) *domain.Department { return &d }

func strPtr(s string) *string { return &s }
