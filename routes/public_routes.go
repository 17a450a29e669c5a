package routes

import (
	"github.com/rajeshh21/nomads-journal/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/countries/:name", handlers.GetCountry)
}
