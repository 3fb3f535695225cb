package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/legal-request-service/internal/domain"
	apperrors "github.com/spec-kit/legal-request-service/pkg/util"
)

type conversationFixture struct {
	tickets  *fakeTicketRepo
	messages *fakeMessageRepo
	users    *fakeUserRepo
	svc      *ConversationService
	owner    *domain.User
	admin    *domain.User
	ticket   *domain.Ticket
}

func newConversationFixture(t *testing.T) *conversationFixture {
	t.Helper()
	ticketRepo := newFakeTicketRepo()
	msgRepo := newFakeMessageRepo()
	userRepo := newFakeUserRepo()

	owner := departmentUser(userRepo, "dana")
	admin := legalAdmin(userRepo, "alex")

	ticketSvc := NewTicketService(TicketDependencies{TicketRepo: ticketRepo, UserRepo: userRepo})
	ticket, err := ticketSvc.Create(context.Background(), owner, TicketCreateInput{
		NatureOfEngagement: domain.NatureForCopy,
	})
	require.NoError(t, err)

	return &conversationFixture{
		tickets:  ticketRepo,
		messages: msgRepo,
		users:    userRepo,
		svc: NewConversationService(ConversationDependencies{
			TicketRepo:  ticketRepo,
			MessageRepo: msgRepo,
		}),
		owner:  owner,
		admin:  admin,
		ticket: ticket,
	}
}

func TestPostMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("admin flag follows the sender role", func(t *testing.T) {
		f := newConversationFixture(t)

		fromOwner, err := f.svc.PostMessage(ctx, f.owner, f.ticket.ID, "any update on this?", nil)
		require.NoError(t, err)
		assert.False(t, fromOwner.IsAdminMessage)
		assert.False(t, fromOwner.IsRead)

		fromAdmin, err := f.svc.PostMessage(ctx, f.admin, f.ticket.ID, "reviewing now", nil)
		require.NoError(t, err)
		assert.True(t, fromAdmin.IsAdminMessage)
		assert.False(t, fromAdmin.IsRead)
	})

	t.Run("empty body is rejected", func(t *testing.T) {
		f := newConversationFixture(t)
		_, err := f.svc.PostMessage(ctx, f.owner, f.ticket.ID, "   ", nil)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	})

	t.Run("non-owner posting is forbidden", func(t *testing.T) {
		f := newConversationFixture(t)
		stranger := departmentUser(f.users, "sam")
		_, err := f.svc.PostMessage(ctx, stranger, f.ticket.ID, "hello", nil)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestListConversationReadMarking(t *testing.T) {
	ctx := context.Background()

	t.Run("owner viewing marks admin messages read", func(t *testing.T) {
		f := newConversationFixture(t)
		_, err := f.svc.PostMessage(ctx, f.admin, f.ticket.ID, "we need a signed copy", nil)
		require.NoError(t, err)
		_, err = f.svc.PostMessage(ctx, f.owner, f.ticket.ID, "attaching it now", nil)
		require.NoError(t, err)

		thread, err := f.svc.ListConversation(ctx, f.owner, f.ticket.ID)
		require.NoError(t, err)
		require.Len(t, thread, 2)
		assert.True(t, thread[0].IsAdminMessage)
		// only the admin side flips; the owner's own message stays unread
		for _, msg := range f.messages.messages {
			if msg.IsAdminMessage {
				assert.True(t, msg.IsRead)
			} else {
				assert.False(t, msg.IsRead)
			}
		}
	})

	t.Run("admin viewing marks requester messages read", func(t *testing.T) {
		f := newConversationFixture(t)
		_, err := f.svc.PostMessage(ctx, f.owner, f.ticket.ID, "please expedite", nil)
		require.NoError(t, err)
		_, err = f.svc.PostMessage(ctx, f.admin, f.ticket.ID, "on it", nil)
		require.NoError(t, err)

		_, err = f.svc.ListConversation(ctx, f.admin, f.ticket.ID)
		require.NoError(t, err)
		count, err := f.svc.UnreadCount(ctx, f.admin, f.ticket.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
		// admin-authored messages are untouched by an admin view
		for _, msg := range f.messages.messages {
			if msg.IsAdminMessage {
				assert.False(t, msg.IsRead)
			}
		}
	})

	t.Run("re-viewing an already read thread changes nothing", func(t *testing.T) {
		f := newConversationFixture(t)
		_, err := f.svc.PostMessage(ctx, f.admin, f.ticket.ID, "first", nil)
		require.NoError(t, err)

		_, err = f.svc.ListConversation(ctx, f.owner, f.ticket.ID)
		require.NoError(t, err)
		affected, err := f.messages.MarkRead(ctx, f.ticket.ID, true)
		require.NoError(t, err)
		assert.Zero(t, affected)
	})

	t.Run("thread is ordered oldest first", func(t *testing.T) {
		f := newConversationFixture(t)
		for _, body := range []string{"one", "two", "three"} {
			_, err := f.svc.PostMessage(ctx, f.owner, f.ticket.ID, body, nil)
			require.NoError(t, err)
		}
		thread, err := f.svc.ListConversation(ctx, f.admin, f.ticket.ID)
		require.NoError(t, err)
		require.Len(t, thread, 3)
		assert.Equal(t, "one", thread[0].Body)
		assert.Equal(t, "three", thread[2].Body)
	})

	t.Run("non-owner reading the thread gets not-found", func(t *testing.T) {
		f := newConversationFixture(t)
		stranger := departmentUser(f.users, "sam")
		_, err := f.svc.ListConversation(ctx, stranger, f.ticket.ID)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestUnreadCount(t *testing.T) {
	ctx := context.Background()
	f := newConversationFixture(t)

	for i := 0; i < 3; i++ {
		_, err := f.svc.PostMessage(ctx, f.admin, f.ticket.ID, "update", nil)
		require.NoError(t, err)
	}
	_, err := f.svc.PostMessage(ctx, f.owner, f.ticket.ID, "thanks", nil)
	require.NoError(t, err)

	count, err := f.svc.UnreadCount(ctx, f.owner, f.ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	_, err = f.svc.ListConversation(ctx, f.owner, f.ticket.ID)
	require.NoError(t, err)
	count, err = f.svc.UnreadCount(ctx, f.owner, f.ticket.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("mismatched ticket id hides the message", func(t *testing.T) {
		f := newConversationFixture(t)
		ticketSvc := NewTicketService(TicketDependencies{TicketRepo: f.tickets, UserRepo: f.users})
		other, err := ticketSvc.Create(ctx, f.owner, TicketCreateInput{NatureOfEngagement: domain.NatureForAccess})
		require.NoError(t, err)

		msg, err := f.svc.PostMessage(ctx, f.owner, f.ticket.ID, "with attachment", strPtr("key123_file.pdf"))
		require.NoError(t, err)

		_, err = f.svc.GetMessage(ctx, f.owner, other.ID, msg.ID)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("owner fetches own message", func(t *testing.T) {
		f := newConversationFixture(t)
		msg, err := f.svc.PostMessage(ctx, f.owner, f.ticket.ID, "with attachment", strPtr("key123_file.pdf"))
		require.NoError(t, err)

		got, err := f.svc.GetMessage(ctx, f.owner, f.ticket.ID, msg.ID)
		require.NoError(t, err)
		require.NotNil(t, got.AttachmentKey)
		assert.Equal(t, "key123_file.pdf", *got.AttachmentKey)
	})
}
