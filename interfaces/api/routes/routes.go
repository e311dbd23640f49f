package routes

import (
	"github.com/gofiber/fiber/v2"

	"filevault/interfaces/api/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, jwtSecret string) {
	// Setup health and root routes
	SetupHealthRoutes(app)

	// API version group
	api := app.Group("/api/v1")

	SetupAuthRoutes(api, h, jwtSecret)
	SetupFileRoutes(api, h, jwtSecret)
}
