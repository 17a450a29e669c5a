package routes

import (
	"github.com/rajeshh21/nomads-journal/handlers"
	"github.com/rajeshh21/nomads-journal/middleware"
	"github.com/gofiber/fiber/v2"
)

func BlogRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	blogs := api.Group("/blogs", middleware.Protected())
	blogs.Get("", handlers.ListBlogs)
	blogs.Post("", handlers.CreateBlog)
	blogs.Delete("/:id", handlers.DeleteBlog)
	blogs.Post("/:id/like", handlers.ToggleLike)
	blogs.Post("/:id/comments", handlers.AddComment)
	blogs.Delete("/:id/comments/:commentId", handlers.DeleteComment)
}
