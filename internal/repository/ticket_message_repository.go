package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/legal-request-service/internal/domain"
)

// TicketMessageRepository manages ticket conversation threads.
type TicketMessageRepository interface {
	Create(ctx context.Context, msg *domain.TicketMessage) error
	GetByID(ctx context.Context, id int64) (*domain.TicketMessage, error)
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.TicketMessage, error)
	// MarkRead flips is_read on every unread message from one side of the
	// conversation. Repeat calls are no-ops once everything is read.
	MarkRead(ctx context.Context, ticketID int64, fromAdmin bool) (int64, error)
	CountUnread(ctx context.Context, ticketID int64, fromAdmin bool) (int64, error)
}

type ticketMessageRepository struct {
	pool *pgxpool.Pool
}

// NewTicketMessageRepository builds repository.
func NewTicketMessageRepository(pool *pgxpool.Pool) TicketMessageRepository {
	return &ticketMessageRepository{pool: pool}
}

func (r *ticketMessageRepository) Create(ctx context.Context, msg *domain.TicketMessage) error {
	const query = `
        INSERT INTO ticket_messages (ticket_id, sender_user_id, body, attachment_key, is_admin_message, is_read)
        VALUES ($1,$2,$3,$4,$5,FALSE)
        RETURNING id, is_read, created_at`
	return r.pool.QueryRow(ctx, query,
		msg.TicketID,
		msg.SenderID,
		msg.Body,
		msg.AttachmentKey,
		msg.IsAdminMessage,
	).Scan(&msg.ID, &msg.IsRead, &msg.CreatedAt)
}

func (r *ticketMessageRepository) GetByID(ctx context.Context, id int64) (*domain.TicketMessage, error) {
	const query = `
        SELECT id, ticket_id, sender_user_id, body, attachment_key, is_admin_message, is_read, created_at
        FROM ticket_messages WHERE id=$1`
	var msg domain.TicketMessage
	if err := scanMessage(r.pool.QueryRow(ctx, query, id), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *ticketMessageRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.TicketMessage, error) {
	const query = `
        SELECT id, ticket_id, sender_user_id, body, attachment_key, is_admin_message, is_read, created_at
        FROM ticket_messages WHERE ticket_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketMessage
	for rows.Next() {
		var msg domain.TicketMessage
		if err := scanMessage(rows, &msg); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

func (r *ticketMessageRepository) MarkRead(ctx context.Context, ticketID int64, fromAdmin bool) (int64, error) {
	const query = `
        UPDATE ticket_messages SET is_read=TRUE
        WHERE ticket_id=$1 AND is_admin_message=$2 AND is_read=FALSE`
	cmd, err := r.pool.Exec(ctx, query, ticketID, fromAdmin)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *ticketMessageRepository) CountUnread(ctx context.Context, ticketID int64, fromAdmin bool) (int64, error) {
	const query = `
        SELECT COUNT(*) FROM ticket_messages
        WHERE ticket_id=$1 AND is_admin_message=$2 AND is_read=FALSE`
	var count int64
	if err := r.pool.QueryRow(ctx, query, ticketID, fromAdmin).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanMessage(row pgx.Row, msg *domain.TicketMessage) error {
	return row.Scan(
		&msg.ID,
		&msg.TicketID,
		&msg.SenderID,
		&msg.Body,
		&msg.AttachmentKey,
		&msg.IsAdminMessage,
		&msg.IsRead,
		&msg.CreatedAt,
	)
}
