package handlers

import (
	"planify-backend/internal/actions"

	"github.com/gofiber/fiber/v2"
)

type BoardHandler struct {
	svc *actions.Service
}

func NewBoardHandler(svc *actions.Service) *BoardHandler {
	return &BoardHandler{svc: svc}
}

func (h *BoardHandler) GetAllBoards(c *fiber.Ctx) error {
	return respond(c, h.svc.ListBoards(c.UserContext()), fiber.StatusOK)
}

func (h *BoardHandler) CreateBoard(c *fiber.Ctx) error {
	var in actions.CreateBoardInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return respond(c, h.svc.CreateBoard(c.UserContext(), &in), fiber.StatusCreated)
}

// GetBoardByID returns the board with its ordered lists and cards.
func (h *BoardHandler) GetBoardByID(c *fiber.Ctx) error {
	return respond(c, h.svc.BoardView(c.UserContext(), &actions.BoardRef{ID: c.Params("boardId")}), fiber.StatusOK)
}

func (h *BoardHandler) UpdateBoard(c *fiber.Ctx) error {
	var in actions.UpdateBoardInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.ID = c.Params("boardId")
	return respond(c, h.svc.UpdateBoard(c.UserContext(), &in), fiber.StatusOK)
}

func (h *BoardHandler) DeleteBoard(c *fiber.Ctx) error {
	return respond(c, h.svc.DeleteBoard(c.UserContext(), &actions.BoardRef{ID: c.Params("boardId")}), fiber.StatusOK)
}

func (h *BoardHandler) CopyBoard(c *fiber.Ctx) error {
	return respond(c, h.svc.CopyBoard(c.UserContext(), &actions.BoardRef{ID: c.Params("boardId")}), fiber.StatusCreated)
}
