package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/buildings/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app. authMW guards every
// route that needs a verified identity.
func Register(app *fiber.App, auth *handlers.AuthHandler, health *handlers.HealthHandler, design *handlers.DesignHandler, authMW fiber.Handler) {
	app.Post("/login", auth.Login)
	app.Get("/logout", auth.Logout)
	app.Post("/register", auth.Register)
	app.Get("/protected", authMW, auth.Protected)

	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	v1 := api.Group("/v1")
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	api.Get("/user", authMW, design.CurrentUser)
	api.Get("/buildings", authMW, design.ListBuildings)
	api.Post("/buildings", authMW, design.CreateBuilding)
	api.Get("/projects", authMW, design.ListProjects)
}
