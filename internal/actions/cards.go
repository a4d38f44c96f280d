package actions

import (
	"context"

	"planify-backend/internal/audit"
	"planify-backend/internal/auth"
	"planify-backend/internal/cache"
	"planify-backend/internal/models"
	"planify-backend/internal/ordering"
	"planify-backend/internal/repo"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

type CreateCardInput struct {
	Title   string `json:"title" validate:"required,min=2"`
	BoardID string `json:"boardId" validate:"required,uuid"`
	ListID  string `json:"listId" validate:"required,uuid"`
}

// UpdateCardInput only touches the fields that are present.
type UpdateCardInput struct {
	ID          string  `json:"id" validate:"required,uuid"`
	BoardID     string  `json:"boardId" validate:"required,uuid"`
	Title       *string `json:"title" validate:"omitnil,min=3"`
	Description *string `json:"description" validate:"omitnil,min=3"`
}

type CardRef struct {
	ID      string `json:"id" validate:"required,uuid"`
	BoardID string `json:"boardId" validate:"required,uuid"`
}

type CardOrderItem struct {
	ID       string `json:"id" validate:"required,uuid"`
	Position int    `json:"position" validate:"gte=0"`
	ListID   string `json:"listId" validate:"required,uuid"`
}

type UpdateCardOrderInput struct {
	BoardID string          `json:"boardId" validate:"required,uuid"`
	Items   []CardOrderItem `json:"items" validate:"required,min=1,dive"`
}

type MoveCardInput struct {
	ID      string `json:"id" validate:"required,uuid"`
	BoardID string `json:"boardId" validate:"required,uuid"`
	ListID  string `json:"listId" validate:"required,uuid"`
	ToIndex int    `json:"toIndex" validate:"gte=0"`
}

func (s *Service) CreateCard(ctx context.Context, in *CreateCardInput) Result[*models.Card] {
	return run(ctx, "create_card", in, func(ctx context.Context, actor auth.Principal, in *CreateCardInput) Result[*models.Card] {
		boardID := uuid.MustParse(in.BoardID)
		card := &models.Card{ListID: uuid.MustParse(in.ListID), Title: in.Title}
		if err := s.Cards.CreateCard(ctx, actor.OrgID, boardID, card); err != nil {
			return persistence[*models.Card]("create_card", err, "List not found", "Failed to create.")
		}

		s.record(ctx, actor, audit.Entry{EntityID: card.UUID, EntityType: models.EntityCard, EntityTitle: card.Title, Action: models.ActionCreate})
		s.invalidate(ctx, cache.BoardPath(boardID))
		return ok(card)
	})
}

func (s *Service) UpdateCard(ctx context.Context, in *UpdateCardInput) Result[*models.Card] {
	return run(ctx, "update_card", in, func(ctx context.Context, actor auth.Principal, in *UpdateCardInput) Result[*models.Card] {
		boardID := uuid.MustParse(in.BoardID)
		card, err := s.Cards.UpdateCard(ctx, actor.OrgID, boardID, uuid.MustParse(in.ID), repo.CardUpdate{
			Title:       in.Title,
			Description: in.Description,
		})
		if err != nil {
			return persistence[*models.Card]("update_card", err, "Card not found", "Failed to update.")
		}

		s.record(ctx, actor, audit.Entry{EntityID: card.UUID, EntityType: models.EntityCard, EntityTitle: card.Title, Action: models.ActionUpdate})
		s.invalidate(ctx, cache.BoardPath(boardID))
		return ok(card)
	})
}

func (s *Service) DeleteCard(ctx context.Context, in *CardRef) Result[*models.Card] {
	return run(ctx, "delete_card", in, func(ctx context.Context, actor auth.Principal, in *CardRef) Result[*models.Card] {
		boardID := uuid.MustParse(in.BoardID)
		card, err := s.Cards.DeleteCard(ctx, actor.OrgID, boardID, uuid.MustParse(in.ID))
		if err != nil {
			return persistence[*models.Card]("delete_card", err, "Card not found", "Failed to delete.")
		}

		s.record(ctx, actor, audit.Entry{EntityID: card.UUID, EntityType: models.EntityCard, EntityTitle: card.Title, Action: models.ActionDelete})
		s.invalidate(ctx, cache.BoardPath(boardID))
		return ok(card)
	})
}

func (s *Service) CopyCard(ctx context.Context, in *CardRef) Result[*models.Card] {
	return run(ctx, "copy_card", in, func(ctx context.Context, actor auth.Principal, in *CardRef) Result[*models.Card] {
		boardID := uuid.MustParse(in.BoardID)
		card, err := s.Cards.CopyCard(ctx, actor.OrgID, boardID, uuid.MustParse(in.ID))
		if err != nil {
			return persistence[*models.Card]("copy_card", err, "Card not found", "Failed to copy.")
		}

		s.record(ctx, actor, audit.Entry{EntityID: card.UUID, EntityType: models.EntityCard, EntityTitle: card.Title, Action: models.ActionCreate})
		s.invalidate(ctx, cache.BoardPath(boardID))
		return ok(card)
	})
}

// UpdateCardOrder persists reordered cards, possibly spread over several
// lists. A cross-list drag sends both the source and destination sets.
func (s *Service) UpdateCardOrder(ctx context.Context, in *UpdateCardOrderInput) Result[[]models.Card] {
	return run(ctx, "update_card_order", in, func(ctx context.Context, actor auth.Principal, in *UpdateCardOrderInput) Result[[]models.Card] {
		items := make([]ordering.Item[uuid.UUID], len(in.Items))
		for i, it := range in.Items {
			items[i] = ordering.Item[uuid.UUID]{ID: uuid.MustParse(it.ID), Position: it.Position, Container: uuid.MustParse(it.ListID)}
		}
		if fields := checkSnapshot(items); fields != nil {
			return invalid[[]models.Card](fields)
		}
		return s.persistCardOrder(ctx, actor, uuid.MustParse(in.BoardID), items)
	})
}

func (s *Service) persistCardOrder(ctx context.Context, actor auth.Principal, boardID uuid.UUID, items []ordering.Item[uuid.UUID]) Result[[]models.Card] {
	cards, err := s.Cards.ReorderCards(ctx, actor.OrgID, boardID, items)
	if errors.Is(err, repo.ErrStaleSnapshot) {
		return invalid[[]models.Card](staleSnapshot())
	}
	if err != nil {
		return persistence[[]models.Card]("update_card_order", err, "Card not found", "Failed to reorder.")
	}
	s.invalidate(ctx, cache.BoardPath(boardID))
	return ok(cards)
}

// MoveCard drags a card to index ToIndex of list ListID. Both affected lists
// come back densely positioned. A drop onto a list outside the board, or back
// onto the card's own slot, writes nothing.
func (s *Service) MoveCard(ctx context.Context, in *MoveCardInput) Result[[]models.Card] {
	return run(ctx, "move_card", in, func(ctx context.Context, actor auth.Principal, in *MoveCardInput) Result[[]models.Card] {
		boardID, cardID := uuid.MustParse(in.BoardID), uuid.MustParse(in.ID)
		board, err := s.Boards.GetBoardView(ctx, actor.OrgID, boardID)
		if err != nil {
			return persistence[[]models.Card]("move_card", err, "Board not found", "Failed to reorder.")
		}

		containers := make(map[uuid.UUID][]ordering.Item[uuid.UUID], len(board.Lists))
		drop := ordering.Drop[uuid.UUID]{SourceIndex: -1}
		for _, l := range board.Lists {
			items := cardItems(l)
			containers[l.UUID] = items
			if i := indexOf(items, cardID); i >= 0 {
				drop.SourceContainer, drop.SourceIndex = l.UUID, i
			}
		}
		if drop.SourceIndex < 0 {
			return fail[[]models.Card](KindNotFound, "Card not found")
		}
		source := containers[drop.SourceContainer]

		destID := uuid.MustParse(in.ListID)
		dest, known := containers[destID]
		if known {
			drop.DestContainer = &destID
			if destID == drop.SourceContainer {
				drop.DestIndex = min(in.ToIndex, len(dest)-1)
			} else {
				drop.DestIndex = min(in.ToIndex, len(dest))
			}
		}
		if drop.IsNoop() {
			return ok(cardsOf(board, drop.SourceContainer))
		}

		var items []ordering.Item[uuid.UUID]
		if destID == drop.SourceContainer {
			items = ordering.Move(source, drop.SourceIndex, drop.DestIndex)
		} else {
			src, dst := ordering.Transfer(source, dest, drop.SourceIndex, drop.DestIndex, destID)
			items = append(src, dst...)
		}
		return s.persistCardOrder(ctx, actor, boardID, items)
	})
}

func cardItems(l models.List) []ordering.Item[uuid.UUID] {
	items := make([]ordering.Item[uuid.UUID], len(l.Cards))
	for i, c := range l.Cards {
		items[i] = ordering.Item[uuid.UUID]{ID: c.UUID, Position: c.Position, Container: l.UUID}
	}
	return items
}

func cardsOf(board *models.Board, listID uuid.UUID) []models.Card {
	for _, l := range board.Lists {
		if l.UUID == listID {
			return l.Cards
		}
	}
	return nil
}
