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

type CreateListInput struct {
	Title   string `json:"title" validate:"required,min=2"`
	BoardID string `json:"boardId" validate:"required,uuid"`
}

type UpdateListInput struct {
	ID      string `json:"id" validate:"required,uuid"`
	BoardID string `json:"boardId" validate:"required,uuid"`
	Title   string `json:"title" validate:"required,min=3"`
}

type ListRef struct {
	ID      string `json:"id" validate:"required,uuid"`
	BoardID string `json:"boardId" validate:"required,uuid"`
}

type ListOrderItem struct {
	ID       string `json:"id" validate:"required,uuid"`
	Position int    `json:"position" validate:"gte=0"`
}

// UpdateListOrderInput carries the whole reordered set of a board's lists.
type UpdateListOrderInput struct {
	BoardID string          `json:"boardId" validate:"required,uuid"`
	Items   []ListOrderItem `json:"items" validate:"required,min=1,dive"`
}

type MoveListInput struct {
	ID      string `json:"id" validate:"required,uuid"`
	BoardID string `json:"boardId" validate:"required,uuid"`
	ToIndex int    `json:"toIndex" validate:"gte=0"`
}

func (s *Service) CreateList(ctx context.Context, in *CreateListInput) Result[*models.List] {
	return run(ctx, "create_list", in, func(ctx context.Context, actor auth.Principal, in *CreateListInput) Result[*models.List] {
		list := &models.List{BoardID: uuid.MustParse(in.BoardID), Title: in.Title}
		if err := s.Lists.CreateList(ctx, actor.OrgID, list); err != nil {
			return persistence[*models.List]("create_list", err, "Board not found", "Failed to create.")
		}

		s.record(ctx, actor, audit.Entry{EntityID: list.UUID, EntityType: models.EntityList, EntityTitle: list.Title, Action: models.ActionCreate})
		s.invalidate(ctx, cache.BoardPath(list.BoardID))
		return ok(list)
	})
}

func (s *Service) UpdateList(ctx context.Context, in *UpdateListInput) Result[*models.List] {
	return run(ctx, "update_list", in, func(ctx context.Context, actor auth.Principal, in *UpdateListInput) Result[*models.List] {
		list, err := s.Lists.UpdateListTitle(ctx, actor.OrgID, uuid.MustParse(in.BoardID), uuid.MustParse(in.ID), in.Title)
		if err != nil {
			return persistence[*models.List]("update_list", err, "List not found", "Failed to update.")
		}

		s.record(ctx, actor, audit.Entry{EntityID: list.UUID, EntityType: models.EntityList, EntityTitle: list.Title, Action: models.ActionUpdate})
		s.invalidate(ctx, cache.BoardPath(list.BoardID))
		return ok(list)
	})
}

func (s *Service) DeleteList(ctx context.Context, in *ListRef) Result[*models.List] {
	return run(ctx, "delete_list", in, func(ctx context.Context, actor auth.Principal, in *ListRef) Result[*models.List] {
		list, err := s.Lists.DeleteList(ctx, actor.OrgID, uuid.MustParse(in.BoardID), uuid.MustParse(in.ID))
		if err != nil {
			return persistence[*models.List]("delete_list", err, "List not found", "Failed to delete.")
		}

		s.record(ctx, actor, audit.Entry{EntityID: list.UUID, EntityType: models.EntityList, EntityTitle: list.Title, Action: models.ActionDelete})
		s.invalidate(ctx, cache.BoardPath(list.BoardID))
		return ok(list)
	})
}

func (s *Service) CopyList(ctx context.Context, in *ListRef) Result[*models.List] {
	return run(ctx, "copy_list", in, func(ctx context.Context, actor auth.Principal, in *ListRef) Result[*models.List] {
		list, err := s.Lists.CopyList(ctx, actor.OrgID, uuid.MustParse(in.BoardID), uuid.MustParse(in.ID))
		if err != nil {
			return persistence[*models.List]("copy_list", err, "List not found", "Failed to copy.")
		}

		s.record(ctx, actor, audit.Entry{EntityID: list.UUID, EntityType: models.EntityList, EntityTitle: list.Title, Action: models.ActionCreate})
		s.invalidate(ctx, cache.BoardPath(list.BoardID))
		return ok(list)
	})
}

// UpdateListOrder persists a reordered list set. Reorders are not audited.
func (s *Service) UpdateListOrder(ctx context.Context, in *UpdateListOrderInput) Result[[]models.List] {
	return run(ctx, "update_list_order", in, func(ctx context.Context, actor auth.Principal, in *UpdateListOrderInput) Result[[]models.List] {
		boardID := uuid.MustParse(in.BoardID)
		items := make([]ordering.Item[uuid.UUID], len(in.Items))
		for i, it := range in.Items {
			items[i] = ordering.Item[uuid.UUID]{ID: uuid.MustParse(it.ID), Position: it.Position, Container: boardID}
		}
		if fields := checkSnapshot(items); fields != nil {
			return invalid[[]models.List](fields)
		}
		return s.persistListOrder(ctx, actor, boardID, items)
	})
}

func (s *Service) persistListOrder(ctx context.Context, actor auth.Principal, boardID uuid.UUID, items []ordering.Item[uuid.UUID]) Result[[]models.List] {
	lists, err := s.Lists.ReorderLists(ctx, actor.OrgID, boardID, items)
	if errors.Is(err, repo.ErrStaleSnapshot) {
		return invalid[[]models.List](staleSnapshot())
	}
	if err != nil {
		return persistence[[]models.List]("update_list_order", err, "List not found", "Failed to reorder.")
	}
	s.invalidate(ctx, cache.BoardPath(boardID))
	return ok(lists)
}

// MoveList drags one list to a new index and rewrites the board's list positions.
// Dropping a list where it already is writes nothing.
func (s *Service) MoveList(ctx context.Context, in *MoveListInput) Result[[]models.List] {
	return run(ctx, "move_list", in, func(ctx context.Context, actor auth.Principal, in *MoveListInput) Result[[]models.List] {
		boardID, listID := uuid.MustParse(in.BoardID), uuid.MustParse(in.ID)
		board, err := s.Boards.GetBoardView(ctx, actor.OrgID, boardID)
		if err != nil {
			return persistence[[]models.List]("move_list", err, "Board not found", "Failed to reorder.")
		}

		siblings := listItems(board)
		from := indexOf(siblings, listID)
		if from < 0 {
			return fail[[]models.List](KindNotFound, "List not found")
		}
		to := min(in.ToIndex, len(siblings)-1)
		drop := ordering.Drop[uuid.UUID]{SourceContainer: boardID, SourceIndex: from, DestContainer: &boardID, DestIndex: to}
		if drop.IsNoop() {
			return ok(board.Lists)
		}
		return s.persistListOrder(ctx, actor, boardID, ordering.Move(siblings, from, to))
	})
}

func listItems(board *models.Board) []ordering.Item[uuid.UUID] {
	items := make([]ordering.Item[uuid.UUID], len(board.Lists))
	for i, l := range board.Lists {
		items[i] = ordering.Item[uuid.UUID]{ID: l.UUID, Position: l.Position, Container: board.UUID}
	}
	return items
}

func indexOf(items []ordering.Item[uuid.UUID], id uuid.UUID) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// staleSnapshot answers a batch that leaves out siblings the stored board
// still has. The client re-fetches the board view and drags again.
func staleSnapshot() map[string]string {
	return map[string]string{"items": "Items do not match the current board"}
}

// checkSnapshot rejects a reorder payload that could not have come from a
// consistent view: an id twice, or two siblings sharing a position.
func checkSnapshot(items []ordering.Item[uuid.UUID]) map[string]string {
	type slot struct {
		container uuid.UUID
		position  int
	}
	ids := make(map[uuid.UUID]struct{}, len(items))
	slots := make(map[slot]struct{}, len(items))
	for _, it := range items {
		if _, dup := ids[it.ID]; dup {
			return map[string]string{"items": "Items contain a duplicate id"}
		}
		ids[it.ID] = struct{}{}
		k := slot{it.Container, it.Position}
		if _, dup := slots[k]; dup {
			return map[string]string{"items": "Items contain a duplicate position"}
		}
		slots[k] = struct{}{}
	}
	return nil
}
