package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntityType string

const (
	EntityBoard EntityType = "BOARD"
	EntityList  EntityType = "LIST"
	EntityCard  EntityType = "CARD"
)

type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// AuditLog is append-only. Nothing in the application updates or deletes rows.
type AuditLog struct {
	UUID        uuid.UUID  `gorm:"type:uuid;primarykey" json:"uuid"`
	OrgID       string     `gorm:"not null;index" json:"org_id"`
	EntityID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"entity_id"`
	EntityType  EntityType `gorm:"not null" json:"entity_type"`
	EntityTitle string     `gorm:"not null" json:"entity_title"`
	Action      Action     `gorm:"not null" json:"action"`
	UserID      string     `gorm:"not null" json:"user_id"`
	UserName    string     `json:"user_name"`
	UserImage   string     `json:"user_image"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == uuid.Nil {
		a.UUID = uuid.New()
	}
	return nil
}
