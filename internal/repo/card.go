package repo

import (
	"context"
	"planify-backend/internal/models"
	"planify-backend/internal/ordering"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepo struct {
	db *gorm.DB
}

// CardUpdate enumerates the fields a card update may touch. Nil means unchanged.
type CardUpdate struct {
	Title       *string
	Description *string
}

type CardRepoInterface interface {
	CreateCard(ctx context.Context, orgID string, boardID uuid.UUID, card *models.Card) error
	GetCard(ctx context.Context, orgID string, cardID uuid.UUID) (*models.CardWithList, error)
	UpdateCard(ctx context.Context, orgID string, boardID, cardID uuid.UUID, update CardUpdate) (*models.Card, error)
	DeleteCard(ctx context.Context, orgID string, boardID, cardID uuid.UUID) (*models.Card, error)
	CopyCard(ctx context.Context, orgID string, boardID, cardID uuid.UUID) (*models.Card, error)
	ReorderCards(ctx context.Context, orgID string, boardID uuid.UUID, items []ordering.Item[uuid.UUID]) ([]models.Card, error)
}

func NewCardRepository(db *gorm.DB) CardRepoInterface {
	return &CardRepo{db: db}
}

func listsOfBoard(db *gorm.DB, orgID string, boardID uuid.UUID) *gorm.DB {
	return db.Model(&models.List{}).
		Select("uuid").
		Where("board_id = ? AND board_id IN (?)", boardID, boardsOfOrg(db, orgID))
}

// CreateCard appends the card to card.ListID. card.Position is overwritten.
func (r *CardRepo) CreateCard(ctx context.Context, orgID string, boardID uuid.UUID, card *models.Card) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list models.List
		err := tx.Select("uuid").
			Where("uuid = ? AND uuid IN (?)", card.ListID, listsOfBoard(tx, orgID, boardID)).
			First(&list).Error
		if err != nil {
			return err
		}
		pos, err := nextPosition(tx, &models.Card{}, "list_id", card.ListID)
		if err != nil {
			return err
		}
		card.Position = pos
		return tx.Create(card).Error
	})
	return notFound(err, "create card")
}

// GetCard looks the card up anywhere in the tenant and joins its list title.
func (r *CardRepo) GetCard(ctx context.Context, orgID string, cardID uuid.UUID) (*models.CardWithList, error) {
	var card models.CardWithList
	db := r.db.WithContext(ctx)
	res := db.Model(&models.Card{}).
		Select("cards.*, lists.title AS list_title").
		Joins("JOIN lists ON lists.uuid = cards.list_id").
		Where("cards.uuid = ? AND cards.list_id IN (?)", cardID, listsOfOrg(db, orgID)).
		Limit(1).
		Scan(&card)
	if res.Error != nil {
		return nil, notFound(res.Error, "get card")
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &card, nil
}

func (r *CardRepo) UpdateCard(ctx context.Context, orgID string, boardID, cardID uuid.UUID, update CardUpdate) (*models.Card, error) {
	values := map[string]any{}
	if update.Title != nil {
		values["title"] = *update.Title
	}
	if update.Description != nil {
		values["description"] = *update.Description
	}

	var card models.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scope := tx.Where("uuid = ? AND list_id IN (?)", cardID, listsOfBoard(tx, orgID, boardID))
		if err := scope.First(&card).Error; err != nil {
			return err
		}
		if len(values) == 0 {
			return nil
		}
		if err := tx.Model(&card).Updates(values).Error; err != nil {
			return err
		}
		return tx.Where("uuid = ?", cardID).First(&card).Error
	})
	if err != nil {
		return nil, notFound(err, "update card")
	}
	return &card, nil
}

func (r *CardRepo) DeleteCard(ctx context.Context, orgID string, boardID, cardID uuid.UUID) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("uuid = ? AND list_id IN (?)", cardID, listsOfBoard(tx, orgID, boardID)).
			First(&card).Error
		if err != nil {
			return err
		}
		return tx.Delete(&models.Card{}, "uuid = ?", cardID).Error
	})
	if err != nil {
		return nil, notFound(err, "delete card")
	}
	return &card, nil
}

// CopyCard duplicates the card at the end of its own list.
func (r *CardRepo) CopyCard(ctx context.Context, orgID string, boardID, cardID uuid.UUID) (*models.Card, error) {
	var copied models.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var src models.Card
		err := tx.Where("uuid = ? AND list_id IN (?)", cardID, listsOfBoard(tx, orgID, boardID)).
			First(&src).Error
		if err != nil {
			return err
		}
		pos, err := nextPosition(tx, &models.Card{}, "list_id", src.ListID)
		if err != nil {
			return err
		}
		copied = models.Card{
			ListID:      src.ListID,
			Title:       src.Title + CopySuffix,
			Description: src.Description,
			Position:    pos,
		}
		return tx.Create(&copied).Error
	})
	if err != nil {
		return nil, notFound(err, "copy card")
	}
	return &copied, nil
}

type cardSlot struct {
	UUID   uuid.UUID
	ListID uuid.UUID
}

// ReorderCards writes (position, list) for every item in one transaction.
// Both the card and its target list must belong to the board, otherwise the
// batch is rolled back with ErrNotFound. Every list the batch takes a card
// from or puts one into must be sent whole, otherwise ErrStaleSnapshot.
func (r *CardRepo) ReorderCards(ctx context.Context, orgID string, boardID uuid.UUID, items []ordering.Item[uuid.UUID]) ([]models.Card, error) {
	var cards []models.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listIDs []uuid.UUID
		if err := listsOfBoard(tx, orgID, boardID).Pluck("uuid", &listIDs).Error; err != nil {
			return err
		}
		inBoard := make(map[uuid.UUID]struct{}, len(listIDs))
		for _, id := range listIDs {
			inBoard[id] = struct{}{}
		}

		var slots []cardSlot
		if err := tx.Model(&models.Card{}).Select("uuid, list_id").Where("list_id IN ?", listIDs).Scan(&slots).Error; err != nil {
			return err
		}
		if err := coversCards(slots, inBoard, items); err != nil {
			return err
		}

		ids := make([]uuid.UUID, 0, len(items))
		for _, it := range items {
			res := tx.Model(&models.Card{}).
				Where("uuid = ? AND list_id IN ?", it.ID, listIDs).
				Updates(map[string]any{"position": it.Position, "list_id": it.Container})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
			ids = append(ids, it.ID)
		}
		return tx.Where("uuid IN ?", ids).Order("list_id").Scopes(byPosition).Find(&cards).Error
	})
	if err != nil {
		return nil, notFound(err, "reorder cards")
	}
	return cards, nil
}

// coversCards narrows the board's cards to the lists the batch touches, both
// where its cards sit now and where they are going, and checks the batch
// against that set.
func coversCards(slots []cardSlot, inBoard map[uuid.UUID]struct{}, items []ordering.Item[uuid.UUID]) error {
	listOf := make(map[uuid.UUID]uuid.UUID, len(slots))
	for _, s := range slots {
		listOf[s.UUID] = s.ListID
	}
	touched := make(map[uuid.UUID]struct{})
	for _, it := range items {
		if _, ok := inBoard[it.Container]; !ok {
			return ErrNotFound
		}
		from, ok := listOf[it.ID]
		if !ok {
			return ErrNotFound
		}
		touched[from] = struct{}{}
		touched[it.Container] = struct{}{}
	}

	var current []uuid.UUID
	for _, s := range slots {
		if _, ok := touched[s.ListID]; ok {
			current = append(current, s.UUID)
		}
	}
	return coversSiblings(current, items)
}
