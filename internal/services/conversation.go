package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/insights"
	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/repos"
	"github.com/freddy-ai/freddy-backend/internal/requestdata"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

const summaryPreviewLimit = 100

type CreateConversationInput struct {
	Title    string             `json:"title"`
	Settings *types.Preferences `json:"settings"`
	Tags     []string           `json:"tags"`
}

type UpdateConversationInput struct {
	Title    *string            `json:"title"`
	Settings *types.Preferences `json:"settings"`
	Tags     []string           `json:"tags"`
	Archived *bool              `json:"archived"`
	Summary  *string            `json:"summary"`
}

type ConversationSummary struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	MessageCount  int        `json:"message_count"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	Archived      bool       `json:"archived"`
	Preview       string     `json:"preview"`
}

type ConversationStats struct {
	TotalConversations             int                       `json:"totalConversations"`
	ActiveConversations            int                       `json:"activeConversations"`
	ArchivedConversations          int                       `json:"archivedConversations"`
	TotalMessages                  int                       `json:"totalMessages"`
	AverageMessagesPerConversation int                       `json:"averageMessagesPerConversation"`
	TopicDistribution              map[string]int            `json:"topicDistribution"`
	DifficultyDistribution         map[string]int            `json:"difficultyDistribution"`
	WeeklyActivity                 []insights.ActivityBucket `json:"weeklyActivity"`
}

type ConversationService interface {
	Create(ctx context.Context, input CreateConversationInput) (*types.Conversation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Conversation, error)
	List(ctx context.Context, includeArchived bool, limit int) ([]*types.Conversation, error)
	Summaries(ctx context.Context, includeArchived bool, limit int) ([]ConversationSummary, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateConversationInput) (*types.Conversation, error)
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) (*types.Conversation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*ConversationStats, error)
}

type conversationService struct {
	db          *gorm.DB
	convRepo    repos.ConversationRepo
	messageRepo repos.MessageRepo
	userRepo    repos.UserRepo
	log         *logger.Logger
}

func NewConversationService(db *gorm.DB, convRepo repos.ConversationRepo, messageRepo repos.MessageRepo, userRepo repos.UserRepo, baseLog *logger.Logger) ConversationService {
	return &conversationService{
		db:          db,
		convRepo:    convRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		log:         baseLog.With("service", "ConversationService"),
	}
}

// owned loads the conversation and enforces that the caller owns it.
func (s *conversationService) owned(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Conversation, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	conv, err := s.convRepo.GetByID(ctx, tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if conv.UserID != userID {
		return nil, apperr.ErrAccessDenied
	}
	return conv, nil
}

func (s *conversationService) Create(ctx context.Context, input CreateConversationInput) (*types.Conversation, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}

	conv := &types.Conversation{
		ID:     uuid.New(),
		UserID: userID,
		Title:  input.Title,
		Tags:   datatypes.NewJSONSlice(append([]string{}, input.Tags...)),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}
		settings := user.Preferences.Data()
		if input.Settings != nil {
			settings = *input.Settings
		}
		if settings.Topics == nil {
			settings.Topics = []string{}
		}
		conv.Settings = datatypes.NewJSONType(settings)
		if err := s.convRepo.Create(ctx, tx, conv); err != nil {
			return err
		}

		stats := user.Stats.Data()
		stats.TotalConversations++
		user.Stats = datatypes.NewJSONType(stats)
		return s.userRepo.Update(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *conversationService) GetByID(ctx context.Context, id uuid.UUID) (*types.Conversation, error) {
	return s.owned(ctx, nil, id)
}

func (s *conversationService) List(ctx context.Context, includeArchived bool, limit int) ([]*types.Conversation, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	return s.convRepo.ListByUserID(ctx, nil, userID, includeArchived, limit)
}

func (s *conversationService) Summaries(ctx context.Context, includeArchived bool, limit int) ([]ConversationSummary, error) {
	convs, err := s.List(ctx, includeArchived, limit)
	if err != nil {
		return nil, err
	}
	summaries := make([]ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summary := ConversationSummary{
			ID:            conv.ID,
			Title:         conv.Title,
			MessageCount:  conv.MessageCount,
			LastMessageAt: conv.LastMessageAt,
			Archived:      conv.Archived,
		}
		msgs, err := s.messageRepo.ListByConversationID(ctx, nil, conv.ID, 0)
		if err != nil {
			return nil, err
		}
		if len(msgs) > 0 {
			summary.Preview = truncate(msgs[len(msgs)-1].Content, summaryPreviewLimit)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *conversationService) Update(ctx context.Context, id uuid.UUID, input UpdateConversationInput) (*types.Conversation, error) {
	conv, err := s.owned(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		conv.Title = *input.Title
	}
	if input.Settings != nil {
		settings := *input.Settings
		if settings.Topics == nil {
			settings.Topics = []string{}
		}
		conv.Settings = datatypes.NewJSONType(settings)
	}
	if input.Tags != nil {
		conv.Tags = datatypes.NewJSONSlice(input.Tags)
	}
	if input.Archived != nil {
		conv.Archived = *input.Archived
	}
	if input.Summary != nil {
		conv.Summary = *input.Summary
	}
	if err := s.convRepo.Update(ctx, nil, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *conversationService) SetArchived(ctx context.Context, id uuid.UUID, archived bool) (*types.Conversation, error) {
	return s.Update(ctx, id, UpdateConversationInput{Archived: &archived})
}

// Delete removes the conversation and its messages, and walks the user's
// conversation counter back down, all in one transaction.
func (s *conversationService) Delete(ctx context.Context, id uuid.UUID) error {
	conv, err := s.owned(ctx, nil, id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.messageRepo.SoftDeleteByConversationID(ctx, tx, conv.ID); err != nil {
			return err
		}
		if err := s.convRepo.SoftDeleteByID(ctx, tx, conv.ID); err != nil {
			return err
		}
		user, err := s.userRepo.GetByID(ctx, tx, conv.UserID)
		if err != nil {
			return err
		}
		stats := user.Stats.Data()
		if stats.TotalConversations > 0 {
			stats.TotalConversations--
		}
		user.Stats = datatypes.NewJSONType(stats)
		return s.userRepo.Update(ctx, tx, user)
	})
}

func (s *conversationService) Stats(ctx context.Context) (*ConversationStats, error) {
	convs, err := s.List(ctx, true, 0)
	if err != nil {
		return nil, err
	}
	stats := &ConversationStats{
		TotalConversations:     len(convs),
		TopicDistribution:      map[string]int{},
		DifficultyDistribution: map[string]int{},
	}
	for _, conv := range convs {
		stats.TotalMessages += conv.MessageCount
		if !conv.Archived {
			stats.ActiveConversations++
		}
		for _, tag := range conv.Tags {
			stats.TopicDistribution[tag]++
		}
		if difficulty := conv.Settings.Data().Difficulty; difficulty != "" {
			stats.DifficultyDistribution[difficulty]++
		}
	}
	stats.ArchivedConversations = stats.TotalConversations - stats.ActiveConversations
	if len(convs) > 0 {
		stats.AverageMessagesPerConversation = int(float64(stats.TotalMessages)/float64(len(convs)) + 0.5)
	}
	stats.WeeklyActivity = insights.WeeklyConversationActivity(convs, time.Now().UTC(), 4)
	return stats, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
