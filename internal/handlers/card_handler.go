package handlers

import (
	"planify-backend/internal/actions"

	"github.com/gofiber/fiber/v2"
)

type CardHandler struct {
	svc *actions.Service
}

func NewCardHandler(svc *actions.Service) *CardHandler {
	return &CardHandler{svc: svc}
}

func (h *CardHandler) CreateCard(c *fiber.Ctx) error {
	var in actions.CreateCardInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.BoardID = c.Params("boardId")
	return respond(c, h.svc.CreateCard(c.UserContext(), &in), fiber.StatusCreated)
}

func (h *CardHandler) UpdateCard(c *fiber.Ctx) error {
	var in actions.UpdateCardInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.ID, in.BoardID = c.Params("cardId"), c.Params("boardId")
	return respond(c, h.svc.UpdateCard(c.UserContext(), &in), fiber.StatusOK)
}

func (h *CardHandler) DeleteCard(c *fiber.Ctx) error {
	return respond(c, h.svc.DeleteCard(c.UserContext(), cardRef(c)), fiber.StatusOK)
}

func (h *CardHandler) CopyCard(c *fiber.Ctx) error {
	return respond(c, h.svc.CopyCard(c.UserContext(), cardRef(c)), fiber.StatusCreated)
}

// UpdateCardOrder takes every card whose position or list changed:
// {"items":[{"id","position","listId"}]}.
func (h *CardHandler) UpdateCardOrder(c *fiber.Ctx) error {
	var in actions.UpdateCardOrderInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.BoardID = c.Params("boardId")
	return respond(c, h.svc.UpdateCardOrder(c.UserContext(), &in), fiber.StatusOK)
}

func (h *CardHandler) MoveCard(c *fiber.Ctx) error {
	var in actions.MoveCardInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.ID, in.BoardID = c.Params("cardId"), c.Params("boardId")
	return respond(c, h.svc.MoveCard(c.UserContext(), &in), fiber.StatusOK)
}

func (h *CardHandler) GetCard(c *fiber.Ctx) error {
	return respond(c, h.svc.GetCard(c.UserContext(), &actions.CardLookup{ID: c.Params("cardId")}), fiber.StatusOK)
}

func (h *CardHandler) GetCardLogs(c *fiber.Ctx) error {
	return respond(c, h.svc.CardLogs(c.UserContext(), &actions.CardLookup{ID: c.Params("cardId")}), fiber.StatusOK)
}

func cardRef(c *fiber.Ctx) *actions.CardRef {
	return &actions.CardRef{ID: c.Params("cardId"), BoardID: c.Params("boardId")}
}
