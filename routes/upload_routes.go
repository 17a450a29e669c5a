package routes

import (
	"github.com/rajeshh21/nomads-journal/handlers"
	"github.com/rajeshh21/nomads-journal/middleware"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected())

	uploads := api.Group("/uploads")
	uploads.Get("/signature", handlers.GenerateUploadSignature)
}
