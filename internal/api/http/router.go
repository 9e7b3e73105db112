package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/store-rating-service/internal/api/http/handlers"
	"github.com/spec-kit/store-rating-service/internal/auth"
	"github.com/spec-kit/store-rating-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Stores         *handlers.StoresHandler
	Ratings        *handlers.RatingsHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Get("/", cfg.AuthMiddleware.Handle, cfg.Users.List)
	users.Put("/update-password", cfg.AuthMiddleware.Handle, cfg.Users.UpdatePassword)

	stores := api.Group("/stores", cfg.AuthMiddleware.Handle)
	stores.Get("/", cfg.Stores.List)
	stores.Post("/add", auth.RequireRole(domain.RoleAdministrator), cfg.Stores.Create)

	ratings := api.Group("/ratings", cfg.AuthMiddleware.Handle)
	ratings.Get("/", cfg.Ratings.List)
	ratings.Post("/add", cfg.Ratings.Create)
	ratings.Put("/update", cfg.Ratings.Update)

	api.Get("/stats", cfg.Stats.Get)
}
