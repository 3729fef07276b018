package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"
)

// Source is a knowledge-base citation attached to an assistant message.
type Source struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Source  string  `json:"source"`
	URL     string  `json:"url,omitempty"`
	Score   float64 `json:"score"`
	Type    string  `json:"type,omitempty"`
}

type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Message rows are immutable after insert except for Metadata, which takes
// JSON merge patches.
type Message struct {
	ID             uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID                      `gorm:"type:uuid;index;not null" json:"conversation_id"`
	UserID         uuid.UUID                      `gorm:"type:uuid;index;not null" json:"user_id"`
	Role           string                         `gorm:"not null" json:"role"`
	Content        string                         `gorm:"not null" json:"content"`
	Sources        datatypes.JSONSlice[Source]    `json:"sources"`
	Metadata       datatypes.JSONMap              `json:"metadata"`
	TokenUsage     datatypes.JSONType[TokenUsage] `json:"token_usage"`
	CreatedAt      time.Time                      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time                      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt                 `gorm:"index" json:"-"`
}

func (Message) TableName() string { return "message" }
