package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Preferences drives tutoring behavior. Conversations copy a snapshot of
// these at creation time so later profile edits don't rewrite history.
type Preferences struct {
	VoiceEnabled    bool     `json:"voiceEnabled"`
	AvatarEnabled   bool     `json:"avatarEnabled"`
	RAGEnabled      bool     `json:"ragEnabled"`
	Difficulty      string   `json:"difficulty"`
	Topics          []string `json:"topics"`
	PersonalityType string   `json:"personalityType"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		VoiceEnabled:    true,
		AvatarEnabled:   true,
		RAGEnabled:      true,
		Difficulty:      "beginner",
		Topics:          []string{},
		PersonalityType: "friendly",
	}
}

type Subscription struct {
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func DefaultSubscription() Subscription {
	return Subscription{Plan: "free", Status: "active"}
}

// UserStats is the denormalized counter block kept in lockstep with the
// conversation and message tables.
type UserStats struct {
	TotalMessages      int     `json:"totalMessages"`
	TotalConversations int     `json:"totalConversations"`
	HoursSpent         float64 `json:"hoursSpent"`
	StreakDays         int     `json:"streakDays"`
	CurrentLevel       string  `json:"currentLevel"`
	ImprovementScore   int     `json:"improvementScore"`
}

func DefaultStats(level string) UserStats {
	if level == "" {
		level = "beginner"
	}
	return UserStats{CurrentLevel: level}
}

type User struct {
	ID              uuid.UUID                        `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string                           `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string                           `gorm:"not null" json:"-"`
	FirstName       string                           `json:"first_name"`
	LastName        string                           `json:"last_name"`
	Role            string                           `gorm:"not null;default:user" json:"role"`
	ProfileImageURL string                           `json:"profile_image_url"`
	AvatarKey       string                           `json:"-"`
	EnglishLevel    string                           `json:"english_level"`
	NativeLanguage  string                           `json:"native_language"`
	LearningGoals   datatypes.JSONSlice[string]      `json:"learning_goals"`
	Preferences     datatypes.JSONType[Preferences]  `json:"preferences"`
	Subscription    datatypes.JSONType[Subscription] `json:"subscription"`
	Stats           datatypes.JSONType[UserStats]    `json:"stats"`
	LastActiveAt    *time.Time                       `json:"last_active_at,omitempty"`
	CreatedAt       time.Time                        `json:"created_at"`
	UpdatedAt       time.Time                        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt                   `gorm:"index" json:"-"`
}

func (User) TableName() string { return "user" }
