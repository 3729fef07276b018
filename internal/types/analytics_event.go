package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnalyticsEvent is append-only. Timestamp is assigned server-side at
// insert; client-supplied timestamps are ignored.
type AnalyticsEvent struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID         `gorm:"type:uuid;index;not null" json:"user_id"`
	Event      string            `gorm:"index;not null" json:"event"`
	Properties datatypes.JSONMap `json:"properties"`
	SessionID  *uuid.UUID        `gorm:"type:uuid;index" json:"session_id,omitempty"`
	Timestamp  time.Time         `gorm:"index;not null" json:"timestamp"`
	CreatedAt  time.Time         `json:"created_at"`
}

func (AnalyticsEvent) TableName() string { return "analytics_event" }
