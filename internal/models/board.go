package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BoardImage is the background picked from the image search provider.
type BoardImage struct {
	ID       string `json:"id"`
	ThumbURL string `json:"thumb_url"`
	FullURL  string `json:"full_url"`
	LinkHTML string `json:"link_html"`
	UserName string `json:"user_name"`
}

// Board represents the database model
type Board struct {
	UUID      uuid.UUID                      `gorm:"type:uuid;primarykey" json:"uuid"`
	OrgID     string                         `gorm:"not null;index" json:"org_id"`
	Title     string                         `gorm:"not null" json:"title"`
	Image     datatypes.JSONType[BoardImage] `json:"image"`
	Lists     []List                         `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"lists,omitempty"`
	CreatedAt time.Time                      `json:"created_at"`
	UpdatedAt time.Time                      `json:"updated_at"`
}

func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.UUID == uuid.Nil {
		b.UUID = uuid.New()
	}
	return nil
}
