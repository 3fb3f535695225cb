package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/legal-request-service/internal/api/dto"
	"github.com/spec-kit/legal-request-service/internal/auth"
	"github.com/spec-kit/legal-request-service/internal/service"
	apperrors "github.com/spec-kit/legal-request-service/pkg/util"
)

// SystemAdminHandler exposes superuser account management.
type SystemAdminHandler struct {
	auth *service.AuthService
}

// NewSystemAdminHandler constructs handler.
func NewSystemAdminHandler(authService *service.AuthService) *SystemAdminHandler {
	return &SystemAdminHandler{auth: authService}
}

// ListUsers handles GET /system/users.
func (h *SystemAdminHandler) ListUsers(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	users, err := h.auth.ListUsers(c.Context(), actor, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateAccount handles POST /system/users.
func (h *SystemAdminHandler) CreateAccount(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.CreateAccount(c.Context(), actor, service.AccountInput{
		RegisterInput: service.RegisterInput{
			Username:   req.Username,
			Email:      req.Email,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Password:   req.Password,
			Department: req.Department,
		},
		Role:        req.Role,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}
