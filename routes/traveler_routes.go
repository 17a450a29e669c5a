package routes

import (
	"github.com/rajeshh21/nomads-journal/handlers"
	"github.com/rajeshh21/nomads-journal/middleware"
	"github.com/gofiber/fiber/v2"
)

func TravelerRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	travelers := api.Group("/travelers", middleware.Protected())
	travelers.Get("", handlers.ListTravelers)
	travelers.Get("/map", handlers.MapTravelers)
	travelers.Get("/nearby", handlers.NearbyTravelers)
}
