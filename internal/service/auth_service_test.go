package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/legal-request-service/internal/config"
	"github.com/spec-kit/legal-request-service/internal/domain"
	apperrors "github.com/spec-kit/legal-request-service/pkg/util"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 60
	cfg.Auth.BcryptCost = 4 // bcrypt.MinCost, keeps the suite fast
	return NewAuthService(cfg, users), users
}

func validSignup(username string) RegisterInput {
	return RegisterInput{
		Username:   username,
		Email:      username + "@example.com",
		FirstName:  "Dana",
		LastName:   "Cruz",
		Password:   "correct-horse",
		Department: domain.DepartmentFinance,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a department user and signs them in", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		user, token, _, err := svc.Register(ctx, validSignup("dana"))
		require.NoError(t, err)
		assert.Equal(t, domain.RoleDepartmentUser, user.Role)
		assert.False(t, user.IsSuperuser)
		assert.NotEmpty(t, token)

		claims, err := svc.TokenManager().ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		svc, _ := newAuthFixture(t)
		input := validSignup("dana")
		input.Password = "short"

		_, _, _, err := svc.Register(ctx, input)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		assert.Contains(t, domainErr.Details, "password")
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		svc, _ := newAuthFixture(t)
		_, _, _, err := svc.Register(ctx, validSignup("dana"))
		require.NoError(t, err)

		input := validSignup("dana")
		input.Email = "other@example.com"
		_, _, _, err = svc.Register(ctx, input)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "CONFLICT", domainErr.Code)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, _ := newAuthFixture(t)
		_, _, _, err := svc.Register(ctx, validSignup("dana"))
		require.NoError(t, err)

		input := validSignup("other")
		input.Email = "dana@example.com"
		_, _, _, err = svc.Register(ctx, input)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "CONFLICT", domainErr.Code)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		svc, _ := newAuthFixture(t)
		_, _, _, err := svc.Register(ctx, validSignup("dana"))
		require.NoError(t, err)

		user, token, _, err := svc.Login(ctx, "dana", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "dana", user.Username)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		svc, _ := newAuthFixture(t)
		_, _, _, err := svc.Register(ctx, validSignup("dana"))
		require.NoError(t, err)

		_, _, _, errWrongPass := svc.Login(ctx, "dana", "wrong")
		_, _, _, errNoUser := svc.Login(ctx, "nobody", "wrong")

		var e1, e2 *apperrors.DomainError
		require.True(t, errors.As(errWrongPass, &e1))
		require.True(t, errors.As(errNoUser, &e2))
		assert.Equal(t, "UNAUTHORIZED", e1.Code)
		assert.Equal(t, e1.Message, e2.Message)
	})
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthFixture(t)
	super := users.add(&domain.User{
		Username:    "root",
		Email:       "root@example.com",
		Role:        domain.RoleLegalAdmin,
		IsSuperuser: true,
	})
	admin := legalAdmin(users, "alex")

	t.Run("superuser provisions a legal admin", func(t *testing.T) {
		created, err := svc.CreateAccount(ctx, super, AccountInput{
			RegisterInput: validSignup("lee"),
			Role:          domain.RoleLegalAdmin,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleLegalAdmin, created.Role)
	})

	t.Run("plain admin may not provision accounts", func(t *testing.T) {
		_, err := svc.CreateAccount(ctx, admin, AccountInput{
			RegisterInput: validSignup("mia"),
			Role:          domain.RoleLegalAdmin,
		})
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		_, err := svc.CreateAccount(ctx, super, AccountInput{
			RegisterInput: validSignup("kim"),
			Role:          domain.Role("manager"),
		})
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	})
}

func TestUpdateProfileDoesNotRewriteSnapshots(t *testing.T) {
	ctx := context.Background()
	authSvc, users := newAuthFixture(t)
	tickets := newFakeTicketRepo()
	ticketSvc := NewTicketService(TicketDependencies{TicketRepo: tickets, UserRepo: users})

	owner, _, _, err := authSvc.Register(ctx, validSignup("dana"))
	require.NoError(t, err)

	ticket, err := ticketSvc.Create(ctx, owner, TicketCreateInput{NatureOfEngagement: domain.NatureForCopy})
	require.NoError(t, err)

	_, err = authSvc.UpdateProfile(ctx, owner, ProfilePatch{
		FirstName: strPtr("Danielle"),
		Email:     strPtr("danielle@example.com"),
	})
	require.NoError(t, err)

	stored := tickets.tickets[ticket.ID]
	assert.Equal(t, "Dana", stored.FirstName)
	assert.Equal(t, "dana@example.com", stored.Email)
}
