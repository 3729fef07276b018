package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Conversation struct {
	ID            uuid.UUID                       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID                       `gorm:"type:uuid;index;not null" json:"user_id"`
	Title         string                          `gorm:"not null" json:"title"`
	Settings      datatypes.JSONType[Preferences] `json:"settings"`
	MessageCount  int                             `gorm:"not null;default:0" json:"message_count"`
	Tags          datatypes.JSONSlice[string]     `json:"tags"`
	Archived      bool                            `gorm:"not null;default:false" json:"archived"`
	Summary       string                          `json:"summary"`
	LastMessageAt *time.Time                      `json:"last_message_at,omitempty"`
	CreatedAt     time.Time                       `json:"created_at"`
	UpdatedAt     time.Time                       `gorm:"index" json:"updated_at"`
	DeletedAt     gorm.DeletedAt                  `gorm:"index" json:"-"`
}

func (Conversation) TableName() string { return "conversation" }
