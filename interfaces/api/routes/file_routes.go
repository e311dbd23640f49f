package routes

import (
	"github.com/gofiber/fiber/v2"

	"filevault/interfaces/api/handlers"
	"filevault/interfaces/api/middleware"
)

func SetupFileRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	protected := middleware.Protected(jwtSecret)

	api.Post("/upload", protected, h.FileHandler.UploadFile)

	files := api.Group("/files")
	files.Use(protected)
	files.Get("/", h.FileHandler.GetUserFiles)
	files.Delete("/:id", h.FileHandler.DeleteFile)
}
