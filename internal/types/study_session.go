package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PerformanceMetrics struct {
	GrammarAccuracy  float64 `json:"grammarAccuracy"`
	VocabularyUsage  float64 `json:"vocabularyUsage"`
	ConversationFlow float64 `json:"conversationFlow"`
	OverallScore     float64 `json:"overallScore"`
}

// StudySession is finalized exactly once: EndTime and DurationMs stay nil
// until the session ends and are never rewritten afterwards.
type StudySession struct {
	ID                 uuid.UUID                              `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID                              `gorm:"type:uuid;index;not null" json:"user_id"`
	StartTime          time.Time                              `gorm:"index;not null" json:"start_time"`
	EndTime            *time.Time                             `json:"end_time,omitempty"`
	DurationMs         *int64                                 `json:"duration_ms,omitempty"`
	Activities         datatypes.JSONSlice[string]            `json:"activities"`
	MessagesCount      int                                    `gorm:"not null;default:0" json:"messages_count"`
	TopicsDiscussed    datatypes.JSONSlice[string]            `json:"topics_discussed"`
	GoalsWorkedOn      datatypes.JSONSlice[string]            `json:"goals_worked_on"`
	PerformanceMetrics datatypes.JSONType[PerformanceMetrics] `json:"performance_metrics"`
	CreatedAt          time.Time                              `json:"created_at"`
	UpdatedAt          time.Time                              `json:"updated_at"`
	DeletedAt          gorm.DeletedAt                         `gorm:"index" json:"-"`
}

func (StudySession) TableName() string { return "study_session" }

func (s *StudySession) Ended() bool { return s.EndTime != nil }
