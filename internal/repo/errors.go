package repo

import (
	"planify-backend/internal/models"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

// CopySuffix is appended to the title of every duplicated entity.
const CopySuffix = " - Copy"

// ErrNotFound is returned when a tenant scoped lookup or write matches no row.
var ErrNotFound = errors.New("record not found")

// ErrStaleSnapshot is returned when a reorder batch does not cover every
// sibling of the containers it touches.
var ErrStaleSnapshot = errors.New("sibling set changed")

func notFound(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func boardsOfOrg(db *gorm.DB, orgID string) *gorm.DB {
	return db.Model(&models.Board{}).Select("uuid").Where("org_id = ?", orgID)
}

func listsOfOrg(db *gorm.DB, orgID string) *gorm.DB {
	return db.Model(&models.List{}).Select("uuid").Where("board_id IN (?)", boardsOfOrg(db, orgID))
}
