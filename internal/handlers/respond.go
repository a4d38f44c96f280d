package handlers

import (
	"planify-backend/internal/actions"

	"github.com/gofiber/fiber/v2"
)

var kindStatus = map[actions.Kind]int{
	actions.KindUnauthorized:  fiber.StatusUnauthorized,
	actions.KindNotFound:      fiber.StatusNotFound,
	actions.KindValidation:    fiber.StatusBadRequest,
	actions.KindPersistence:   fiber.StatusInternalServerError,
	actions.KindQuotaExceeded: fiber.StatusForbidden,
}

// respond writes {"data": ...} on success or {"error": ..., "fieldErrors": ...}.
func respond[T any](c *fiber.Ctx, res actions.Result[T], okStatus int) error {
	if res.OK() {
		return c.Status(okStatus).JSON(fiber.Map{
			"data": res.Data,
		})
	}
	status, known := kindStatus[res.Kind]
	if !known {
		status = fiber.StatusInternalServerError
	}
	body := fiber.Map{"error": res.Error}
	if len(res.FieldErrors) > 0 {
		body["fieldErrors"] = res.FieldErrors
	}
	return c.Status(status).JSON(body)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request body",
	})
}
