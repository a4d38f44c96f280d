package v1

import (
	"planify-backend/internal/actions"
	"planify-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func registerBoard(r fiber.Router, svc *actions.Service) {
	boardHandler := handlers.NewBoardHandler(svc)
	listHandler := handlers.NewListHandler(svc)
	cardHandler := handlers.NewCardHandler(svc)

	r.Get("/boards", boardHandler.GetAllBoards)
	r.Post("/boards", boardHandler.CreateBoard)
	r.Get("/boards/:boardId", boardHandler.GetBoardByID)
	r.Patch("/boards/:boardId", boardHandler.UpdateBoard)
	r.Delete("/boards/:boardId", boardHandler.DeleteBoard)
	r.Post("/boards/:boardId/copy", boardHandler.CopyBoard)

	// order routes before :listId so "order" is not taken for an id
	r.Put("/boards/:boardId/lists/order", listHandler.UpdateListOrder)
	r.Post("/boards/:boardId/lists", listHandler.CreateList)
	r.Patch("/boards/:boardId/lists/:listId", listHandler.UpdateList)
	r.Delete("/boards/:boardId/lists/:listId", listHandler.DeleteList)
	r.Post("/boards/:boardId/lists/:listId/copy", listHandler.CopyList)
	r.Post("/boards/:boardId/lists/:listId/move", listHandler.MoveList)

	r.Put("/boards/:boardId/cards/order", cardHandler.UpdateCardOrder)
	r.Post("/boards/:boardId/cards", cardHandler.CreateCard)
	r.Patch("/boards/:boardId/cards/:cardId", cardHandler.UpdateCard)
	r.Delete("/boards/:boardId/cards/:cardId", cardHandler.DeleteCard)
	r.Post("/boards/:boardId/cards/:cardId/copy", cardHandler.CopyCard)
	r.Post("/boards/:boardId/cards/:cardId/move", cardHandler.MoveCard)
}
