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
	Auth           *handlers.AuthHandler
	Stores         *handlers.StoresHandler
	Owner          *handlers.OwnerHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)
	authGroup.Patch("/password", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	stores := app.Group("/stores", cfg.AuthMiddleware.Handle)
	stores.Get("/", cfg.Stores.List)
	stores.Get("/:id", cfg.Stores.Get)
	stores.Post("/:id/ratings", auth.RequireRole(domain.RoleNormalUser), cfg.Stores.SubmitRating)

	owner := app.Group("/owner", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleStoreOwner))
	owner.Get("/store", cfg.Owner.Dashboard)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Post("/users", cfg.Admin.CreateUser)
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/users/:id", cfg.Admin.GetUser)
	admin.Post("/stores", cfg.Admin.CreateStore)
	admin.Get("/stores", cfg.Admin.ListStores)
}
