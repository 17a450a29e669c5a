package routes

import (
	"github.com/rajeshh21/nomads-journal/handlers"
	"github.com/rajeshh21/nomads-journal/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func MessagingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	conversations := api.Group("/conversations", middleware.Protected())
	conversations.Get("", handlers.GetUserConversations)
	conversations.Get("/unread", handlers.GetUnreadCounts)
	conversations.Get("/:chatId/messages", handlers.GetConversationMessages)
	conversations.Post("/:contactId/read", handlers.MarkConversationRead)

	api.Post("/messages", middleware.Protected(), handlers.SendMessage)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
