package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/legal-request-service/internal/api/http/handlers"
	"github.com/spec-kit/legal-request-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	AdminTickets   *handlers.AdminTicketsHandler
	Conversations  *handlers.ConversationHandler
	Files          *handlers.FilesHandler
	SystemAdmin    *handlers.SystemAdminHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	me := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	me.Get("/me", cfg.Users.Me)
	me.Patch("/profile", cfg.Users.UpdateProfile)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	tickets.Post("", auth.RequireDepartmentUser(), cfg.Tickets.Create)
	tickets.Get("", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Get("/:id/documents/:kind", cfg.Files.Download)
	tickets.Get("/:id/messages", cfg.Conversations.List)
	tickets.Post("/:id/messages", cfg.Conversations.Post)
	tickets.Get("/:id/messages/unread-count", cfg.Conversations.UnreadCount)
	tickets.Get("/:id/messages/:messageID/attachment", cfg.Conversations.DownloadAttachment)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireLegalAdmin())
	admin.Patch("/tickets/:id", cfg.AdminTickets.Update)
	admin.Post("/tickets/:id/reviewed-document", cfg.AdminTickets.UploadReviewedDocument)

	system := app.Group("/system", cfg.AuthMiddleware.Handle, auth.RequireSuperuser())
	system.Delete("/tickets/:id", cfg.AdminTickets.Delete)
	system.Get("/users", cfg.SystemAdmin.ListUsers)
	system.Post("/users", cfg.SystemAdmin.CreateAccount)
}
