package handlers

import (
	"planify-backend/internal/actions"

	"github.com/gofiber/fiber/v2"
)

type ListHandler struct {
	svc *actions.Service
}

func NewListHandler(svc *actions.Service) *ListHandler {
	return &ListHandler{svc: svc}
}

func (h *ListHandler) CreateList(c *fiber.Ctx) error {
	var in actions.CreateListInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.BoardID = c.Params("boardId")
	return respond(c, h.svc.CreateList(c.UserContext(), &in), fiber.StatusCreated)
}

func (h *ListHandler) UpdateList(c *fiber.Ctx) error {
	var in actions.UpdateListInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.ID, in.BoardID = c.Params("listId"), c.Params("boardId")
	return respond(c, h.svc.UpdateList(c.UserContext(), &in), fiber.StatusOK)
}

func (h *ListHandler) DeleteList(c *fiber.Ctx) error {
	return respond(c, h.svc.DeleteList(c.UserContext(), listRef(c)), fiber.StatusOK)
}

func (h *ListHandler) CopyList(c *fiber.Ctx) error {
	return respond(c, h.svc.CopyList(c.UserContext(), listRef(c)), fiber.StatusCreated)
}

// UpdateListOrder takes the full reordered set: {"items":[{"id","position"}]}.
func (h *ListHandler) UpdateListOrder(c *fiber.Ctx) error {
	var in actions.UpdateListOrderInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.BoardID = c.Params("boardId")
	return respond(c, h.svc.UpdateListOrder(c.UserContext(), &in), fiber.StatusOK)
}

func (h *ListHandler) MoveList(c *fiber.Ctx) error {
	var in actions.MoveListInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.ID, in.BoardID = c.Params("listId"), c.Params("boardId")
	return respond(c, h.svc.MoveList(c.UserContext(), &in), fiber.StatusOK)
}

func listRef(c *fiber.Ctx) *actions.ListRef {
	return &actions.ListRef{ID: c.Params("listId"), BoardID: c.Params("boardId")}
}
