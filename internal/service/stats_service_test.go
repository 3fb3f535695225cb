package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/legal-request-service/internal/domain"
)

func TestCountByStatus(t *testing.T) {
	ctx := context.Background()
	tickets := newFakeTicketRepo()
	users := newFakeUserRepo()
	u1 := departmentUser(users, "u1")
	u2 := departmentUser(users, "u2")
	admin := legalAdmin(users, "alex")

	ticketSvc := NewTicketService(TicketDependencies{TicketRepo: tickets, UserRepo: users})
	for i := 0; i < 2; i++ {
		_, err := ticketSvc.Create(ctx, u1, TicketCreateInput{NatureOfEngagement: domain.NatureForCopy})
		require.NoError(t, err)
	}
	other, err := ticketSvc.Create(ctx, u2, TicketCreateInput{NatureOfEngagement: domain.NatureForAccess})
	require.NoError(t, err)
	tickets.tickets[other.ID].Status = domain.TicketStatusCompleted

	// nil cache client: counters always come straight from the repository
	svc := NewStatsService(tickets, nil, 0, nil)

	t.Run("department user sees only own counts", func(t *testing.T) {
		counts, err := svc.CountByStatus(ctx, u1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts[domain.TicketStatusPending])
		assert.Zero(t, counts[domain.TicketStatusCompleted])
	})

	t.Run("admin sees global counts", func(t *testing.T) {
		counts, err := svc.CountByStatus(ctx, admin)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts[domain.TicketStatusPending])
		assert.Equal(t, int64(1), counts[domain.TicketStatusCompleted])
	})
}
