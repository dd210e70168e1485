package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dns-auth/token-service/internal/api/http/handlers"
	"github.com/dns-auth/token-service/internal/auth"
	"github.com/dns-auth/token-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Users       *handlers.UsersHandler
	Interceptor *auth.Interceptor
}

// PublicRoutes are reachable without a token.
var PublicRoutes = []auth.PublicRoute{
	{Method: fiber.MethodPost, Path: "/login"},
	{Method: fiber.MethodPost, Path: "/logout"},
	{Method: fiber.MethodPost, Path: "/sign-up"},
	{Path: "/health/*"},
}

// RegisterRoutes wires token interception, authorization and HTTP routes.
// Every route not listed in PublicRoutes requires a principal.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Interceptor.Handle)
	app.Use(auth.RequireAuthenticated(PublicRoutes...))

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Post("/login", cfg.Auth.Login)
	app.Post("/logout", cfg.Auth.Logout)
	app.Post("/sign-up", cfg.Users.SignUp)

	app.Get("/user", cfg.Users.Current)

	admin := auth.RequireRole(string(domain.RoleAdmin))
	app.Get("/user/:id", admin, cfg.Users.GetByID)
	app.Delete("/user/:id", admin, cfg.Users.Delete)
	app.Get("/all-user", admin, cfg.Users.List)
	app.Get("/user-by-firstname-lastname", admin, cfg.Users.SearchByName("firstName", "lastName"))
	app.Get("/user-by-firstname", admin, cfg.Users.SearchByName("firstName"))
	app.Get("/user-by-lastname", admin, cfg.Users.SearchByName("lastName"))
}
