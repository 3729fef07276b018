package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProgressNotStarted = "not_started"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// LessonProgress tracks one user's work on one lesson. CompletedAt is set
// exactly once, on the transition into the completed status.
type LessonProgress struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_progress_user_lesson;not null" json:"user_id"`
	LessonID         uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_progress_user_lesson;not null" json:"lesson_id"`
	Status           string         `gorm:"not null;default:not_started" json:"status"`
	Score            *int           `json:"score,omitempty"`
	TimeSpentSeconds int            `gorm:"not null;default:0" json:"time_spent_seconds"`
	CompletedAt      *time.Time     `json:"completed_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LessonProgress) TableName() string { return "lesson_progress" }
