package v1

import (
	"planify-backend/internal/actions"
	"planify-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func registerCard(r fiber.Router, svc *actions.Service) {
	cardHandler := handlers.NewCardHandler(svc)

	r.Get("/cards/:cardId", cardHandler.GetCard)
	r.Get("/cards/:cardId/logs", cardHandler.GetCardLogs)
}

func registerOrg(r fiber.Router, svc *actions.Service) {
	orgHandler := handlers.NewOrgHandler(svc)

	r.Get("/audit-logs", orgHandler.GetAuditLogs)
	r.Get("/limits", orgHandler.GetLimits)
}
