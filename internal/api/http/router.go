package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sparksupport/helpdesk/internal/api/http/handlers"
	"github.com/sparksupport/helpdesk/internal/auth"
	"github.com/sparksupport/helpdesk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Messages       *handlers.MessagesHandler
	StaffTickets   *handlers.StaffTicketsHandler
	Admin          *handlers.AdminHandler
	FAQ            *handlers.FAQPublicHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	app.Get("/faqs", cfg.FAQ.ListActive)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	api.Get("/notifications", cfg.Notifications.ListMine)

	// Customer surface.
	customer := api.Group("/tickets", auth.RequireRole(domain.RoleCustomer, domain.RoleStaff, domain.RoleAdmin))
	customer.Post("", cfg.Tickets.CreateTicket)
	customer.Get("", cfg.Tickets.ListMyTickets)
	customer.Get("/:id", cfg.Tickets.GetTicket)
	customer.Post("/:id/csat", cfg.Tickets.RecordCSAT)
	customer.Get("/:id/messages", cfg.Messages.GetThread)
	customer.Post("/:id/messages", cfg.Messages.Reply)

	// Staff dashboard.
	staff := api.Group("/staff/tickets", auth.RequireRole(domain.RoleStaff, domain.RoleAdmin))
	staff.Get("", cfg.StaffTickets.List)
	staff.Put("/:id/assign", cfg.StaffTickets.Assign)
	staff.Put("/:id/status", cfg.StaffTickets.UpdateStatus)
	staff.Put("/:id/resolve", cfg.StaffTickets.Resolve)
	staff.Put("/:id/close", cfg.StaffTickets.Close)
	staff.Put("/:id/reopen", cfg.StaffTickets.Reopen)

	// Admin surface.
	admin := api.Group("/admin", auth.RequireRole(domain.RoleAdmin))
	admin.Put("/users/:id/role", cfg.Admin.ChangeRole)
	admin.Post("/categories", cfg.Admin.CreateCategory)
	admin.Get("/categories", cfg.Admin.ListCategories)
	admin.Post("/priorities", cfg.Admin.CreatePriority)
	admin.Get("/priorities", cfg.Admin.ListPriorities)
	admin.Post("/faqs", cfg.Admin.CreateFAQ)
	admin.Get("/faqs", cfg.Admin.ListFAQs)
	admin.Put("/faqs/:id", cfg.Admin.UpdateFAQ)
	admin.Put("/faqs/:id/toggle", cfg.Admin.ToggleFAQ)
	admin.Delete("/faqs/:id", cfg.Admin.DeleteFAQ)
}
