package repo

import (
	"context"
	"planify-backend/internal/models"
	"planify-backend/internal/ordering"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListRepo struct {
	db *gorm.DB
}

type ListRepoInterface interface {
	CreateList(ctx context.Context, orgID string, list *models.List) error
	GetList(ctx context.Context, orgID string, boardID, listID uuid.UUID) (*models.List, error)
	UpdateListTitle(ctx context.Context, orgID string, boardID, listID uuid.UUID, title string) (*models.List, error)
	DeleteList(ctx context.Context, orgID string, boardID, listID uuid.UUID) (*models.List, error)
	CopyList(ctx context.Context, orgID string, boardID, listID uuid.UUID) (*models.List, error)
	ReorderLists(ctx context.Context, orgID string, boardID uuid.UUID, items []ordering.Item[uuid.UUID]) ([]models.List, error)
}

func NewListRepository(db *gorm.DB) ListRepoInterface {
	return &ListRepo{db: db}
}

// CreateList appends the list to its board. list.Position is overwritten.
func (r *ListRepo) CreateList(ctx context.Context, orgID string, list *models.List) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var board models.Board
		if err := tx.Select("uuid").Where("uuid = ? AND org_id = ?", list.BoardID, orgID).First(&board).Error; err != nil {
			return err
		}
		pos, err := nextPosition(tx, &models.List{}, "board_id", list.BoardID)
		if err != nil {
			return err
		}
		list.Position = pos
		return tx.Create(list).Error
	})
	return notFound(err, "create list")
}

func (r *ListRepo) GetList(ctx context.Context, orgID string, boardID, listID uuid.UUID) (*models.List, error) {
	var list models.List
	db := r.db.WithContext(ctx)
	err := db.Where("uuid = ? AND board_id = ? AND board_id IN (?)", listID, boardID, boardsOfOrg(db, orgID)).
		First(&list).Error
	if err != nil {
		return nil, notFound(err, "get list")
	}
	return &list, nil
}

func (r *ListRepo) UpdateListTitle(ctx context.Context, orgID string, boardID, listID uuid.UUID, title string) (*models.List, error) {
	var list models.List
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.List{}).
			Where("uuid = ? AND board_id = ? AND board_id IN (?)", listID, boardID, boardsOfOrg(tx, orgID)).
			Update("title", title)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("uuid = ?", listID).First(&list).Error
	})
	if err != nil {
		return nil, notFound(err, "update list")
	}
	return &list, nil
}

// DeleteList removes the list and its cards. Remaining siblings keep their
// positions; they stay unique and the next append still lands past the max.
func (r *ListRepo) DeleteList(ctx context.Context, orgID string, boardID, listID uuid.UUID) (*models.List, error) {
	var list models.List
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("uuid = ? AND board_id = ? AND board_id IN (?)", listID, boardID, boardsOfOrg(tx, orgID)).
			First(&list).Error
		if err != nil {
			return err
		}
		if err := tx.Where("list_id = ?", listID).Delete(&models.Card{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.List{}, "uuid = ?", listID).Error
	})
	if err != nil {
		return nil, notFound(err, "delete list")
	}
	return &list, nil
}

// CopyList duplicates the list and its cards at the end of the same board.
func (r *ListRepo) CopyList(ctx context.Context, orgID string, boardID, listID uuid.UUID) (*models.List, error) {
	var copied models.List
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var src models.List
		err := tx.Where("uuid = ? AND board_id = ? AND board_id IN (?)", listID, boardID, boardsOfOrg(tx, orgID)).
			Preload("Cards", byPosition).
			First(&src).Error
		if err != nil {
			return err
		}
		pos, err := nextPosition(tx, &models.List{}, "board_id", src.BoardID)
		if err != nil {
			return err
		}
		copied = models.List{
			BoardID:  src.BoardID,
			Title:    src.Title + CopySuffix,
			Position: pos,
			Cards:    copyCards(src.Cards),
		}
		return tx.Create(&copied).Error
	})
	if err != nil {
		return nil, notFound(err, "copy list")
	}
	return &copied, nil
}

// ReorderLists writes every position in one transaction. A list outside the
// board or tenant aborts the whole batch with ErrNotFound, and a batch that
// leaves out one of the board's lists aborts with ErrStaleSnapshot.
func (r *ListRepo) ReorderLists(ctx context.Context, orgID string, boardID uuid.UUID, items []ordering.Item[uuid.UUID]) ([]models.List, error) {
	var lists []models.List
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []uuid.UUID
		err := tx.Model(&models.List{}).
			Where("board_id = ? AND board_id IN (?)", boardID, boardsOfOrg(tx, orgID)).
			Pluck("uuid", &current).Error
		if err != nil {
			return err
		}
		if err := coversSiblings(current, items); err != nil {
			return err
		}

		ids := make([]uuid.UUID, 0, len(items))
		for _, it := range items {
			res := tx.Model(&models.List{}).
				Where("uuid = ? AND board_id = ? AND board_id IN (?)", it.ID, boardID, boardsOfOrg(tx, orgID)).
				Update("position", it.Position)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
			ids = append(ids, it.ID)
		}
		return tx.Where("uuid IN ?", ids).Scopes(byPosition).Find(&lists).Error
	})
	if err != nil {
		return nil, notFound(err, "reorder lists")
	}
	return lists, nil
}
