package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Card struct {
	UUID        uuid.UUID `gorm:"type:uuid;primarykey" json:"uuid"`
	ListID      uuid.UUID `gorm:"type:uuid;not null;index" json:"list_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `json:"description"`
	Position    int       `gorm:"not null" json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CardWithList is a card joined with the title of the list holding it.
type CardWithList struct {
	Card
	ListTitle string `json:"list_title"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	return nil
}
