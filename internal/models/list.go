package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type List struct {
	UUID      uuid.UUID `gorm:"type:uuid;primarykey" json:"uuid"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index" json:"board_id"`
	Title     string    `gorm:"not null" json:"title"`
	Position  int       `gorm:"not null" json:"position"`
	Cards     []Card    `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *List) BeforeCreate(tx *gorm.DB) error {
	if l.UUID == uuid.Nil {
		l.UUID = uuid.New()
	}
	return nil
}
