package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/legal-request-service/internal/access"
	"github.com/spec-kit/legal-request-service/internal/auth"
	"github.com/spec-kit/legal-request-service/internal/config"
	"github.com/spec-kit/legal-request-service/internal/domain"
	"github.com/spec-kit/legal-request-service/internal/repository"
	apperrors "github.com/spec-kit/legal-request-service/pkg/util"
)

// AuthService coordinates account registration, login and profile upkeep.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// RegisterInput captures a self-service signup. Role is always forced to
// department_user; admin accounts are provisioned by a system administrator.
type RegisterInput struct {
	Username   string
	Email      string
	FirstName  string
	LastName   string
	Password   string
	Department domain.Department
}

// ProfilePatch updates mutable profile fields. Existing tickets keep their
// creation-time snapshot regardless of profile edits.
type ProfilePatch struct {
	Email      *string
	FirstName  *string
	LastName   *string
	Department *domain.Department
}

// AccountInput provisions an account with an explicit role (superuser only).
type AccountInput struct {
	RegisterInput
	Role        domain.Role
	IsSuperuser bool
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a department-user account and signs them in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	if err := s.validateSignup(ctx, input); err != nil {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	department := input.Department
	user := &domain.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hash,
		Role:         domain.RoleDepartmentUser,
		Department:   &department,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates by username and issues a role-bearing token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid username or password")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid username or password")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// UpdateProfile edits the actor's own profile fields.
func (s *AuthService) UpdateProfile(ctx context.Context, actor *domain.User, patch ProfilePatch) (*domain.User, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if email == "" {
			return nil, apperrors.NewValidationError("email required", map[string]any{"email": "must not be empty"})
		}
		actor.Email = email
	}
	if patch.FirstName != nil {
		actor.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		actor.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Department != nil {
		if !domain.ValidDepartment(*patch.Department) {
			return nil, apperrors.NewValidationError("invalid department", map[string]any{"department": "unknown value"})
		}
		actor.Department = patch.Department
	}
	if err := s.users.Update(ctx, actor); err != nil {
		return nil, err
	}
	return actor, nil
}

// CreateAccount provisions an account with an explicit role. Superuser only.
func (s *AuthService) CreateAccount(ctx context.Context, actor *domain.User, input AccountInput) (*domain.User, error) {
	if !access.CanAdministerSystem(actor) {
		return nil, apperrors.NewForbidden("system administrator required")
	}
	if !domain.ValidRole(input.Role) {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": "unknown value"})
	}
	if err := s.validateSignup(ctx, input.RegisterInput); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	department := input.Department
	user := &domain.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hash,
		Role:         input.Role,
		Department:   &department,
		IsSuperuser:  input.IsSuperuser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns accounts for system administration. Superuser only.
func (s *AuthService) ListUsers(ctx context.Context, actor *domain.User, limit, offset int) ([]domain.User, error) {
	if !access.CanAdministerSystem(actor) {
		return nil, apperrors.NewForbidden("system administrator required")
	}
	return s.users.List(ctx, limit, offset)
}

func (s *AuthService) validateSignup(ctx context.Context, input RegisterInput) error {
	details := map[string]any{}
	if strings.TrimSpace(input.Username) == "" {
		details["username"] = "must not be empty"
	}
	if strings.TrimSpace(input.Email) == "" {
		details["email"] = "must not be empty"
	}
	if len(input.Password) < 8 {
		details["password"] = "must be at least 8 characters"
	}
	if !domain.ValidDepartment(input.Department) {
		details["department"] = "unknown value"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid signup", details)
	}

	if _, err := s.users.GetByUsername(ctx, strings.TrimSpace(input.Username)); err == nil {
		return apperrors.NewConflict("username already taken", map[string]any{"username": "already taken"})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if _, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email))); err == nil {
		return apperrors.NewConflict("email already registered", map[string]any{"email": "already registered"})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return nil
}
