package routes

import (
	"github.com/gofiber/fiber/v2"

	"filevault/interfaces/api/handlers"
	"filevault/interfaces/api/middleware"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	auth := api.Group("/auth")

	auth.Post("/register", h.UserHandler.Register)
	auth.Post("/login", h.UserHandler.Login)

	// Protected routes - require authentication
	auth.Get("/me", middleware.Protected(jwtSecret), h.UserHandler.GetProfile)
}
