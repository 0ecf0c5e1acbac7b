package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/planets-api/internal/api/http/handlers"
	"github.com/spec-kit/planets-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Planets        *handlers.PlanetsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Reads on planets are public;
// mutations and /auth/me require a valid bearer token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health", cfg.Health.Health)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	planets := app.Group("/planets")
	planets.Get("/", cfg.Planets.List)
	planets.Get("/:id", cfg.Planets.Get)
	planets.Post("/", cfg.AuthMiddleware.Handle, cfg.Planets.Create)
	planets.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Planets.Update)
	planets.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Planets.Delete)
}
