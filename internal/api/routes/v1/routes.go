package v1

import (
	"planify-backend/internal/actions"
	"planify-backend/internal/auth"
	"planify-backend/internal/libraries"

	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	Service  *actions.Service
	Verifier *auth.Verifier
	Hub      *libraries.Hub
	// Boards backs websocket subscribe checks.
	Boards libraries.BoardLookup
}

func RegisterRoutes(r fiber.Router, d Deps) {
	registerHealth(r)

	secured := r.Group("", auth.Middleware(d.Verifier))
	registerBoard(secured, d.Service)
	registerCard(secured, d.Service)
	registerOrg(secured, d.Service)
	if d.Hub != nil {
		registerWebSocket(secured, d.Hub, d.Boards)
	}
}
