package routes

import (
	"github.com/rajeshh21/nomads-journal/handlers"
	"github.com/rajeshh21/nomads-journal/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile/me", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Put("", handlers.UpdateProfile)
	profile.Put("/location", handlers.UpdateLocation)
}
