package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/legal-request-service/internal/access"
)

// RequireDepartmentUser ensures a department user is authenticated.
func RequireDepartmentUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok || !actor.IsDepartmentUser() {
			return fiber.NewError(http.StatusForbidden, "department user required")
		}
		return c.Next()
	}
}

// RequireLegalAdmin ensures the actor may process tickets.
func RequireLegalAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok || !access.CanMutateTicket(actor) {
			return fiber.NewError(http.StatusForbidden, "legal admin required")
		}
		return c.Next()
	}
}

// RequireSuperuser gates system-admin operations.
func RequireSuperuser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok || !access.CanAdministerSystem(actor) {
			return fiber.NewError(http.StatusForbidden, "system administrator required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures the caller is signed in.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := ActorFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
