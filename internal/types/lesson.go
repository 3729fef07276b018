package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

type Lesson struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title             string         `gorm:"not null" json:"title"`
	Category          string         `gorm:"index;not null" json:"category"`
	Difficulty        string         `gorm:"index;not null" json:"difficulty"`
	EstimatedDuration int            `json:"estimated_duration"`
	IsPublished       bool           `gorm:"not null;default:false" json:"is_published"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Lesson) TableName() string { return "lesson" }
