package routes

import (
	v1 "planify-backend/internal/api/routes/v1"

	"github.com/gofiber/fiber/v2"
)

func Register(app *fiber.App, deps v1.Deps) {
	// API v1 group
	api := app.Group("/api")
	v1Group := api.Group("/v1")

	v1.RegisterRoutes(v1Group, deps)
}
