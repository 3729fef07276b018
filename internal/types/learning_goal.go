package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LearningGoal.Completed is derived: progress >= target. Services recompute
// it on every progress write rather than trusting the client.
type LearningGoal struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Difficulty  string         `json:"difficulty"`
	Target      int            `gorm:"not null;default:1" json:"target"`
	Progress    int            `gorm:"not null;default:0" json:"progress"`
	Completed   bool           `gorm:"not null;default:false" json:"completed"`
	Priority    string         `json:"priority"`
	Deadline    *time.Time     `json:"deadline,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LearningGoal) TableName() string { return "learning_goal" }
