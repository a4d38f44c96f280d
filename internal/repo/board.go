package repo

import (
	"context"
	"planify-backend/internal/models"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BoardRepo represents the repository for the board model
type BoardRepo struct {
	db *gorm.DB
}

type BoardRepoInterface interface {
	CreateBoard(ctx context.Context, board *models.Board) error
	GetBoard(ctx context.Context, orgID string, boardID uuid.UUID) (*models.Board, error)
	GetBoardView(ctx context.Context, orgID string, boardID uuid.UUID) (*models.Board, error)
	GetBoardsByOrg(ctx context.Context, orgID string) ([]models.Board, error)
	UpdateBoardTitle(ctx context.Context, orgID string, boardID uuid.UUID, title string) (*models.Board, error)
	DeleteBoard(ctx context.Context, orgID string, boardID uuid.UUID) (*models.Board, error)
	CopyBoard(ctx context.Context, orgID string, boardID uuid.UUID) (*models.Board, error)
}

func NewBoardRepository(db *gorm.DB) BoardRepoInterface {
	return &BoardRepo{db: db}
}

// CreateBoard creates a new board in the database
func (r *BoardRepo) CreateBoard(ctx context.Context, board *models.Board) error {
	if err := r.db.WithContext(ctx).Create(board).Error; err != nil {
		return errors.Wrap(err, "create board")
	}
	return nil
}

func (r *BoardRepo) GetBoard(ctx context.Context, orgID string, boardID uuid.UUID) (*models.Board, error) {
	var board models.Board
	err := r.db.WithContext(ctx).
		Where("uuid = ? AND org_id = ?", boardID, orgID).
		First(&board).Error
	if err != nil {
		return nil, notFound(err, "get board")
	}
	return &board, nil
}

// GetBoardView loads the board with its lists and their cards, both in position order.
func (r *BoardRepo) GetBoardView(ctx context.Context, orgID string, boardID uuid.UUID) (*models.Board, error) {
	var board models.Board
	err := r.db.WithContext(ctx).
		Where("uuid = ? AND org_id = ?", boardID, orgID).
		Preload("Lists", byPosition).
		Preload("Lists.Cards", byPosition).
		First(&board).Error
	if err != nil {
		return nil, notFound(err, "get board view")
	}
	return &board, nil
}

// GetBoardsByOrg returns the tenant's boards, newest first
func (r *BoardRepo) GetBoardsByOrg(ctx context.Context, orgID string) ([]models.Board, error) {
	var boards []models.Board
	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at desc").
		Find(&boards).Error
	if err != nil {
		return nil, errors.Wrap(err, "list boards")
	}
	return boards, nil
}

func (r *BoardRepo) UpdateBoardTitle(ctx context.Context, orgID string, boardID uuid.UUID, title string) (*models.Board, error) {
	var board models.Board
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Board{}).
			Where("uuid = ? AND org_id = ?", boardID, orgID).
			Update("title", title)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("uuid = ?", boardID).First(&board).Error
	})
	if err != nil {
		return nil, notFound(err, "update board")
	}
	return &board, nil
}

// DeleteBoard removes the board with its lists and cards and returns what was deleted.
func (r *BoardRepo) DeleteBoard(ctx context.Context, orgID string, boardID uuid.UUID) (*models.Board, error) {
	var board models.Board
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("uuid = ? AND org_id = ?", boardID, orgID).First(&board).Error; err != nil {
			return err
		}
		lists := tx.Model(&models.List{}).Select("uuid").Where("board_id = ?", boardID)
		if err := tx.Where("list_id IN (?)", lists).Delete(&models.Card{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", boardID).Delete(&models.List{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Board{}, "uuid = ?", boardID).Error
	})
	if err != nil {
		return nil, notFound(err, "delete board")
	}
	return &board, nil
}

// CopyBoard duplicates a board with its lists and cards under a new identity.
// Lists and cards keep their positions since they form a fresh sibling set.
func (r *BoardRepo) CopyBoard(ctx context.Context, orgID string, boardID uuid.UUID) (*models.Board, error) {
	var copied models.Board
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var src models.Board
		err := tx.Where("uuid = ? AND org_id = ?", boardID, orgID).
			Preload("Lists", byPosition).
			Preload("Lists.Cards", byPosition).
			First(&src).Error
		if err != nil {
			return err
		}

		copied = models.Board{
			OrgID: src.OrgID,
			Title: src.Title + CopySuffix,
			Image: datatypes.NewJSONType(src.Image.Data()),
			Lists: make([]models.List, 0, len(src.Lists)),
		}
		for _, l := range src.Lists {
			copied.Lists = append(copied.Lists, models.List{
				Title:    l.Title,
				Position: l.Position,
				Cards:    copyCards(l.Cards),
			})
		}
		return tx.Create(&copied).Error
	})
	if err != nil {
		return nil, notFound(err, "copy board")
	}
	return &copied, nil
}

func copyCards(cards []models.Card) []models.Card {
	out := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, models.Card{
			Title:       c.Title,
			Description: c.Description,
			Position:    c.Position,
		})
	}
	return out
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc").Order("created_at asc")
}
