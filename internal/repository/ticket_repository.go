package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/legal-request-service/internal/domain"
)

// TicketFilter captures listing parameters. OwnerID scopes the base set for
// non-admin actors; the remaining filters are AND-combined on top.
type TicketFilter struct {
	OwnerID    *string
	Status     *domain.TicketStatus
	Department *domain.Department
	Company    *domain.Company
	Nature     *domain.NatureOfEngagement
	SearchTerm *string
	Limit      int
	Offset     int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	CountByStatus(ctx context.Context, ownerID *string) (map[domain.TicketStatus]int64, error)
	Delete(ctx context.Context, id int64) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, reference_key, owner_user_id, first_name, last_name, email, department,
               company, contact_number, due_date, nature_of_engagement, document_key,
               details_of_contracting_party, remarks, status, admin_comments,
               reviewed_document_key, assigned_to_user_id, priority, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (reference_key, owner_user_id, first_name, last_name, email, department,
            company, contact_number, due_date, nature_of_engagement, document_key,
            details_of_contracting_party, remarks, status, priority)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.ReferenceKey,
		ticket.OwnerID,
		ticket.FirstName,
		ticket.LastName,
		ticket.Email,
		ticket.Department,
		ticket.Company,
		ticket.ContactNumber,
		ticket.DueDate,
		ticket.NatureOfEngagement,
		ticket.DocumentKey,
		ticket.DetailsOfContractingParty,
		ticket.Remarks,
		ticket.Status,
		ticket.Priority,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

// Update persists the admin-mutable field group. Owner, snapshot fields and
// creation timestamp are deliberately absent from the statement.
func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, admin_comments=$2, reviewed_document_key=$3,
            assigned_to_user_id=$4, priority=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	if err := r.pool.QueryRow(ctx, query,
		ticket.Status,
		ticket.AdminComments,
		ticket.ReviewedDocumentKey,
		ticket.AssignedToID,
		ticket.Priority,
		ticket.ID,
	).Scan(&ticket.UpdatedAt); err != nil {
		return err
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := scanTicket(r.pool.QueryRow(ctx, query, id), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT ` + ticketColumns + ` FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("owner_user_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Department != nil {
		args = append(args, *filter.Department)
		clauses = append(clauses, fmt.Sprintf("department=$%d", len(args)))
	}
	if filter.Company != nil {
		args = append(args, *filter.Company)
		clauses = append(clauses, fmt.Sprintf("company=$%d", len(args)))
	}
	if filter.Nature != nil {
		args = append(args, *filter.Nature)
		clauses = append(clauses, fmt.Sprintf("nature_of_engagement=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(CAST(id AS TEXT) LIKE %s OR LOWER(first_name) LIKE %s OR LOWER(last_name) LIKE %s OR LOWER(email) LIKE %s)",
			placeholder, placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) CountByStatus(ctx context.Context, ownerID *string) (map[domain.TicketStatus]int64, error) {
	query := `SELECT status, COUNT(*) FROM tickets GROUP BY status`
	args := []any{}
	if ownerID != nil {
		query = `SELECT status, COUNT(*) FROM tickets WHERE owner_user_id=$1 GROUP BY status`
		args = append(args, *ownerID)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TicketStatus]int64)
	for rows.Next() {
		var status domain.TicketStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTicket(row pgx.Row, ticket *domain.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.ReferenceKey,
		&ticket.OwnerID,
		&ticket.FirstName,
		&ticket.LastName,
		&ticket.Email,
		&ticket.Department,
		&ticket.Company,
		&ticket.ContactNumber,
		&ticket.DueDate,
		&ticket.NatureOfEngagement,
		&ticket.DocumentKey,
		&ticket.DetailsOfContractingParty,
		&ticket.Remarks,
		&ticket.Status,
		&ticket.AdminComments,
		&ticket.ReviewedDocumentKey,
		&ticket.AssignedToID,
		&ticket.Priority,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
