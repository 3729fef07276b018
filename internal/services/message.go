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
	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/repos"
	"github.com/freddy-ai/freddy-backend/internal/requestdata"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

type SendMessageInput struct {
	ConversationID uuid.UUID              `json:"conversation_id"`
	Role           string                 `json:"role"`
	Content        string                 `json:"content"`
	Sources        []types.Source         `json:"sources"`
	TokenUsage     *types.TokenUsage      `json:"token_usage"`
	Metadata       map[string]interface{} `json:"metadata"`
}

type MessageService interface {
	Send(ctx context.Context, input SendMessageInput) (*types.Message, error)
	ListByConversation(ctx context.Context, conversationID uuid.UUID, limit int) ([]*types.Message, error)
	Recent(ctx context.Context, limit int) ([]*types.Message, error)
	UpdateMetadata(ctx context.Context, messageID uuid.UUID, patch map[string]interface{}) (*types.Message, error)
	Delete(ctx context.Context, messageID uuid.UUID) error
}

type messageService struct {
	db          *gorm.DB
	messageRepo repos.MessageRepo
	convRepo    repos.ConversationRepo
	userRepo    repos.UserRepo
	log         *logger.Logger
}

func NewMessageService(db *gorm.DB, messageRepo repos.MessageRepo, convRepo repos.ConversationRepo, userRepo repos.UserRepo, baseLog *logger.Logger) MessageService {
	return &messageService{
		db:          db,
		messageRepo: messageRepo,
		convRepo:    convRepo,
		userRepo:    userRepo,
		log:         baseLog.With("service", "MessageService"),
	}
}

func validRole(role string) bool {
	switch role {
	case types.MessageRoleUser, types.MessageRoleAssistant, types.MessageRoleSystem:
		return true
	}
	return false
}

// Send inserts the message and patches the conversation and user counters
// in a single transaction, so a partial failure can't leave the counts
// drifted from the rows.
func (s *messageService) Send(ctx context.Context, input SendMessageInput) (*types.Message, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if input.Content == "" {
		return nil, fmt.Errorf("%w: content is required", apperr.ErrValidation)
	}
	if !validRole(input.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, input.Role)
	}

	now := time.Now().UTC()
	msg := &types.Message{
		ID:             uuid.New(),
		ConversationID: input.ConversationID,
		UserID:         userID,
		Role:           input.Role,
		Content:        input.Content,
		Sources:        datatypes.NewJSONSlice(append([]types.Source{}, input.Sources...)),
		Metadata:       datatypes.JSONMap(input.Metadata),
	}
	if input.TokenUsage != nil {
		msg.TokenUsage = datatypes.NewJSONType(*input.TokenUsage)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		conv, err := s.convRepo.GetByID(ctx, tx, input.ConversationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}
		if conv.UserID != userID {
			return apperr.ErrAccessDenied
		}
		if err := s.messageRepo.Create(ctx, tx, msg); err != nil {
			return err
		}
		if err := s.convRepo.AddMessage(ctx, tx, conv.ID, now); err != nil {
			return err
		}
		if msg.Role == types.MessageRoleUser {
			user, err := s.userRepo.GetByID(ctx, tx, userID)
			if err != nil {
				return err
			}
			stats := user.Stats.Data()
			stats.TotalMessages++
			user.Stats = datatypes.NewJSONType(stats)
			if err := s.userRepo.Update(ctx, tx, user); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *messageService) ListByConversation(ctx context.Context, conversationID uuid.UUID, limit int) ([]*types.Message, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	conv, err := s.convRepo.GetByID(ctx, nil, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if conv.UserID != userID {
		return nil, apperr.ErrAccessDenied
	}
	return s.messageRepo.ListByConversationID(ctx, nil, conversationID, limit)
}

func (s *messageService) Recent(ctx context.Context, limit int) ([]*types.Message, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if limit <= 0 {
		limit = 20
	}
	return s.messageRepo.RecentByUserID(ctx, nil, userID, limit)
}

// UpdateMetadata is the only mutation messages accept after insert.
func (s *messageService) UpdateMetadata(ctx context.Context, messageID uuid.UUID, patch map[string]interface{}) (*types.Message, error) {
	msg, err := s.owned(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.UpdateMetadata(ctx, nil, msg.ID, patch); err != nil {
		return nil, err
	}
	return s.messageRepo.GetByID(ctx, nil, msg.ID)
}

// Delete removes one message and decrements the conversation counter by
// exactly one, never below zero, in the same transaction.
func (s *messageService) Delete(ctx context.Context, messageID uuid.UUID) error {
	msg, err := s.owned(ctx, messageID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.messageRepo.SoftDeleteByID(ctx, tx, msg.ID); err != nil {
			return err
		}
		if err := s.convRepo.RemoveMessage(ctx, tx, msg.ConversationID); err != nil {
			return err
		}
		if msg.Role == types.MessageRoleUser {
			user, err := s.userRepo.GetByID(ctx, tx, msg.UserID)
			if err != nil {
				return err
			}
			stats := user.Stats.Data()
			if stats.TotalMessages > 0 {
				stats.TotalMessages--
			}
			user.Stats = datatypes.NewJSONType(stats)
			if err := s.userRepo.Update(ctx, tx, user); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *messageService) owned(ctx context.Context, messageID uuid.UUID) (*types.Message, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	msg, err := s.messageRepo.GetByID(ctx, nil, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if msg.UserID != userID {
		return nil, apperr.ErrAccessDenied
	}
	return msg, nil
}
