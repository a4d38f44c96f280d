package actions

import (
	"context"
	"strings"

	"planify-backend/internal/audit"
	"planify-backend/internal/auth"
	"planify-backend/internal/cache"
	"planify-backend/internal/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const quotaExceededMessage = "You have reached your limit of free boards. Please upgrade to create more."

type CreateBoardInput struct {
	Title string `json:"title" validate:"required,min=3"`
	// Image is id|thumbUrl|fullUrl|linkHTML|userName as sent by the image picker.
	Image string `json:"image" validate:"required"`
}

type UpdateBoardInput struct {
	ID    string `json:"id" validate:"required,uuid"`
	Title string `json:"title" validate:"required,min=3"`
}

type BoardRef struct {
	ID string `json:"id" validate:"required,uuid"`
}

func parseBoardImage(raw string) (models.BoardImage, bool) {
	parts := strings.Split(raw, "|")
	if len(parts) < 5 {
		return models.BoardImage{}, false
	}
	for _, p := range parts[:5] {
		if p == "" {
			return models.BoardImage{}, false
		}
	}
	return models.BoardImage{
		ID:       parts[0],
		ThumbURL: parts[1],
		FullURL:  parts[2],
		LinkHTML: parts[3],
		UserName: parts[4],
	}, true
}

// unrestricted asks billing first so the ledger is never read for paying tenants.
func (s *Service) unrestricted(ctx context.Context, orgID string) (bool, error) {
	if s.Billing == nil {
		return false, nil
	}
	return s.Billing.IsUnrestricted(ctx, orgID)
}

// reserveBoard reports whether the tenant may add a board and whether the
// ledger should be bumped afterwards.
func (s *Service) reserveBoard(ctx context.Context, orgID string) (allowed, counted bool, err error) {
	pro, err := s.unrestricted(ctx, orgID)
	if err != nil {
		return false, false, err
	}
	if pro {
		return true, false, nil
	}
	available, err := s.Quota.HasAvailable(ctx, orgID)
	if err != nil {
		return false, false, err
	}
	return available, true, nil
}

func (s *Service) countBoard(ctx context.Context, orgID string, up bool) {
	var err error
	if up {
		err = s.Quota.Increment(ctx, orgID)
	} else {
		err = s.Quota.Decrement(ctx, orgID)
	}
	if err != nil {
		log.WithError(err).WithField("org_id", orgID).Error("failed to update board quota")
	}
}

func (s *Service) CreateBoard(ctx context.Context, in *CreateBoardInput) Result[*models.Board] {
	return run(ctx, "create_board", in, func(ctx context.Context, actor auth.Principal, in *CreateBoardInput) Result[*models.Board] {
		allowed, counted, err := s.reserveBoard(ctx, actor.OrgID)
		if err != nil {
			return persistence[*models.Board]("create_board", err, "", "Failed to create.")
		}
		if !allowed {
			return fail[*models.Board](KindQuotaExceeded, quotaExceededMessage)
		}

		image, complete := parseBoardImage(in.Image)
		if !complete {
			return fail[*models.Board](KindValidation, "Missing fields. Failed to create board.")
		}

		board := &models.Board{
			OrgID: actor.OrgID,
			Title: in.Title,
			Image: datatypes.NewJSONType(image),
		}
		if err := s.Boards.CreateBoard(ctx, board); err != nil {
			return persistence[*models.Board]("create_board", err, "", "Failed to create.")
		}
		if counted {
			s.countBoard(ctx, actor.OrgID, true)
		}

		s.record(ctx, actor, audit.Entry{EntityID: board.UUID, EntityType: models.EntityBoard, EntityTitle: board.Title, Action: models.ActionCreate})
		s.invalidate(ctx, cache.BoardPath(board.UUID), cache.OrgPath(actor.OrgID))
		return ok(board)
	})
}

func (s *Service) UpdateBoard(ctx context.Context, in *UpdateBoardInput) Result[*models.Board] {
	return run(ctx, "update_board", in, func(ctx context.Context, actor auth.Principal, in *UpdateBoardInput) Result[*models.Board] {
		id := uuid.MustParse(in.ID)
		board, err := s.Boards.UpdateBoardTitle(ctx, actor.OrgID, id, in.Title)
		if err != nil {
			return persistence[*models.Board]("update_board", err, "Board not found", "Failed to update.")
		}

		s.record(ctx, actor, audit.Entry{EntityID: board.UUID, EntityType: models.EntityBoard, EntityTitle: board.Title, Action: models.ActionUpdate})
		s.invalidate(ctx, cache.BoardPath(board.UUID), cache.OrgPath(actor.OrgID))
		return ok(board)
	})
}

func (s *Service) DeleteBoard(ctx context.Context, in *BoardRef) Result[*models.Board] {
	return run(ctx, "delete_board", in, func(ctx context.Context, actor auth.Principal, in *BoardRef) Result[*models.Board] {
		pro, err := s.unrestricted(ctx, actor.OrgID)
		if err != nil {
			return persistence[*models.Board]("delete_board", err, "", "Failed to delete.")
		}

		board, err := s.Boards.DeleteBoard(ctx, actor.OrgID, uuid.MustParse(in.ID))
		if err != nil {
			return persistence[*models.Board]("delete_board", err, "Board not found", "Failed to delete.")
		}
		if !pro {
			s.countBoard(ctx, actor.OrgID, false)
		}

		s.record(ctx, actor, audit.Entry{EntityID: board.UUID, EntityType: models.EntityBoard, EntityTitle: board.Title, Action: models.ActionDelete})
		s.invalidate(ctx, cache.BoardPath(board.UUID), cache.OrgPath(actor.OrgID))
		return ok(board)
	})
}

// CopyBoard duplicates a board with its lists and cards. It consumes quota like a create.
func (s *Service) CopyBoard(ctx context.Context, in *BoardRef) Result[*models.Board] {
	return run(ctx, "copy_board", in, func(ctx context.Context, actor auth.Principal, in *BoardRef) Result[*models.Board] {
		allowed, counted, err := s.reserveBoard(ctx, actor.OrgID)
		if err != nil {
			return persistence[*models.Board]("copy_board", err, "", "Failed to copy.")
		}
		if !allowed {
			return fail[*models.Board](KindQuotaExceeded, quotaExceededMessage)
		}

		board, err := s.Boards.CopyBoard(ctx, actor.OrgID, uuid.MustParse(in.ID))
		if err != nil {
			return persistence[*models.Board]("copy_board", err, "Board not found", "Failed to copy.")
		}
		if counted {
			s.countBoard(ctx, actor.OrgID, true)
		}

		s.record(ctx, actor, audit.Entry{EntityID: board.UUID, EntityType: models.EntityBoard, EntityTitle: board.Title, Action: models.ActionCreate})
		s.invalidate(ctx, cache.BoardPath(board.UUID), cache.OrgPath(actor.OrgID))
		return ok(board)
	})
}
