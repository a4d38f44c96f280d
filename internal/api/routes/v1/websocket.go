package v1

import (
	"planify-backend/internal/libraries"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func registerWebSocket(r fiber.Router, hub *libraries.Hub, boards libraries.BoardLookup) {
	r.Get("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}, libraries.WebSocketHandler(hub, boards))
}
