package repo

import (
	"planify-backend/internal/ordering"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// nextPosition returns the append position among the children of parentID.
func nextPosition(tx *gorm.DB, model any, parentColumn string, parentID uuid.UUID) (int, error) {
	var last struct{ Position int }
	res := tx.Model(model).
		Select("position").
		Where(parentColumn+" = ?", parentID).
		Order("position desc").
		Limit(1).
		Scan(&last)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "find last position")
	}
	return ordering.NextPosition(last.Position, res.RowsAffected > 0), nil
}

// coversSiblings checks a reorder batch against the stored sibling set.
// Ids outside current are ErrNotFound; a current sibling missing from the
// batch is ErrStaleSnapshot, since its stored position could collide.
func coversSiblings(current []uuid.UUID, items []ordering.Item[uuid.UUID]) error {
	stored := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		stored[id] = struct{}{}
	}
	sent := make(map[uuid.UUID]struct{}, len(items))
	for _, it := range items {
		if _, ok := stored[it.ID]; !ok {
			return ErrNotFound
		}
		sent[it.ID] = struct{}{}
	}
	if len(sent) != len(stored) {
		return ErrStaleSnapshot
	}
	return nil
}
