package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/api/http/handlers"
	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Console *handlers.ConsoleHandler
	Admin   *handlers.AdminHandler
	Clients *auth.ClientMiddleware
	Metrics fiber.Handler
}

// RegisterRoutes wires HTTP routes. Probes and metrics are registered ahead
// of console client resolution so they never mint client cookies.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}

	app.Use(cfg.Clients.Handle)

	app.Get("/", cfg.Auth.Root)
	app.Get("/login", cfg.Auth.LoginPage)
	app.Post("/login", cfg.Auth.Login)
	app.Get("/login/google", cfg.Auth.Google)
	app.Get("/logout", cfg.Auth.Logout)
	app.Post("/logout", cfg.Auth.Logout)

	admin := app.Group("/admin", auth.RequireRole(domain.RoleAdmin))
	registerConsole(admin, cfg.Console)
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Post("/users", cfg.Admin.CreateUser)
	admin.Put("/users/:id", cfg.Admin.UpdateUser)
	admin.Delete("/users/:id", cfg.Admin.DeleteUser)
	admin.Get("/vendors", cfg.Admin.ListVendors)
	admin.Post("/vendors", cfg.Admin.CreateVendor)
	admin.Put("/vendors/:id/shop", cfg.Admin.UpdateVendorShop)
	admin.Put("/vendors/:id/services", cfg.Admin.SetVendorServices)
	admin.Get("/services", cfg.Admin.ListServices)
	admin.Post("/services", cfg.Admin.CreateService)
	admin.Put("/services/:id", cfg.Admin.UpdateService)
	admin.Delete("/services/:id", cfg.Admin.DeleteService)
	admin.Get("/services/:id/vendors", cfg.Admin.ServiceVendors)
	admin.Get("/audit", cfg.Admin.Audit)

	registerConsole(app.Group("/agent", auth.RequireRole(domain.RoleAgent)), cfg.Console)
	registerConsole(app.Group("/vendor", auth.RequireRole(domain.RoleVendor)), cfg.Console)
}

func registerConsole(group fiber.Router, console *handlers.ConsoleHandler) {
	group.Get("/", console.Dashboard)
	group.Get("/dashboard", console.Dashboard)
	group.Get("/orders", console.Orders)
	group.Get("/profile", console.Profile)
}
