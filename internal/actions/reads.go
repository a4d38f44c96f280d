package actions

import (
	"context"

	"planify-backend/internal/audit"
	"planify-backend/internal/auth"
	"planify-backend/internal/models"
	"planify-backend/internal/quota"

	"github.com/google/uuid"
)

const cardActivityLimit = 3

type CardLookup struct {
	ID string `json:"id" validate:"required,uuid"`
}

type AuditPageInput struct {
	Page     int `json:"page" validate:"gte=0"`
	PageSize int `json:"pageSize" validate:"gte=0"`
}

// LogEntry is an audit record with its rendered activity line.
type LogEntry struct {
	models.AuditLog
	Message string `json:"message"`
}

type AuditPage struct {
	Items []LogEntry `json:"items"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
}

func entries(logs []models.AuditLog) []LogEntry {
	out := make([]LogEntry, len(logs))
	for i, l := range logs {
		out[i] = LogEntry{AuditLog: l, Message: audit.Message(l)}
	}
	return out
}

func (s *Service) ListBoards(ctx context.Context) Result[[]models.Board] {
	return run(ctx, "list_boards", (*struct{})(nil), func(ctx context.Context, actor auth.Principal, _ *struct{}) Result[[]models.Board] {
		boards, err := s.Boards.GetBoardsByOrg(ctx, actor.OrgID)
		if err != nil {
			return persistence[[]models.Board]("list_boards", err, "", "Failed to load boards.")
		}
		return ok(boards)
	})
}

// BoardView is the board with its lists and each list's cards, all by position.
func (s *Service) BoardView(ctx context.Context, in *BoardRef) Result[*models.Board] {
	return run(ctx, "board_view", in, func(ctx context.Context, actor auth.Principal, in *BoardRef) Result[*models.Board] {
		board, err := s.Boards.GetBoardView(ctx, actor.OrgID, uuid.MustParse(in.ID))
		if err != nil {
			return persistence[*models.Board]("board_view", err, "Board not found", "Failed to load board.")
		}
		return ok(board)
	})
}

func (s *Service) GetCard(ctx context.Context, in *CardLookup) Result[*models.CardWithList] {
	return run(ctx, "get_card", in, func(ctx context.Context, actor auth.Principal, in *CardLookup) Result[*models.CardWithList] {
		card, err := s.Cards.GetCard(ctx, actor.OrgID, uuid.MustParse(in.ID))
		if err != nil {
			return persistence[*models.CardWithList]("get_card", err, "Card not found", "Failed to load card.")
		}
		return ok(card)
	})
}

// CardLogs returns the card's latest activity, newest first.
func (s *Service) CardLogs(ctx context.Context, in *CardLookup) Result[[]LogEntry] {
	return run(ctx, "card_logs", in, func(ctx context.Context, actor auth.Principal, in *CardLookup) Result[[]LogEntry] {
		logs, err := s.Logs.GetEntityLogs(ctx, actor.OrgID, uuid.MustParse(in.ID), models.EntityCard, cardActivityLimit)
		if err != nil {
			return persistence[[]LogEntry]("card_logs", err, "", "Failed to load activity.")
		}
		return ok(entries(logs))
	})
}

func (s *Service) OrgLogs(ctx context.Context, in *AuditPageInput) Result[AuditPage] {
	return run(ctx, "org_logs", in, func(ctx context.Context, actor auth.Principal, in *AuditPageInput) Result[AuditPage] {
		logs, total, err := s.Logs.GetOrgLogs(ctx, actor.OrgID, in.Page, in.PageSize)
		if err != nil {
			return persistence[AuditPage]("org_logs", err, "", "Failed to load activity.")
		}
		return ok(AuditPage{Items: entries(logs), Total: total, Page: max(in.Page, 1)})
	})
}

func (s *Service) QuotaStatus(ctx context.Context) Result[quota.Status] {
	return run(ctx, "quota_status", (*struct{})(nil), func(ctx context.Context, actor auth.Principal, _ *struct{}) Result[quota.Status] {
		pro, err := s.unrestricted(ctx, actor.OrgID)
		if err != nil {
			return persistence[quota.Status]("quota_status", err, "", "Failed to load limits.")
		}
		status, err := s.Quota.Standing(ctx, actor.OrgID, pro)
		if err != nil {
			return persistence[quota.Status]("quota_status", err, "", "Failed to load limits.")
		}
		return ok(status)
	})
}
