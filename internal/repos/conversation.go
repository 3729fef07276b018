package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

type ConversationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, conv *types.Conversation) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Conversation, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, includeArchived bool, limit int) ([]*types.Conversation, error)
	Update(ctx context.Context, tx *gorm.DB, conv *types.Conversation) error
	AddMessage(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error
	RemoveMessage(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	FullDeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type conversationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConversationRepo(db *gorm.DB, baseLog *logger.Logger) ConversationRepo {
	return &conversationRepo{db: db, log: baseLog.With("repo", "ConversationRepo")}
}

func (r *conversationRepo) Create(ctx context.Context, tx *gorm.DB, conv *types.Conversation) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(conv).Error
}

func (r *conversationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Conversation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var conv types.Conversation
	if err := transaction.WithContext(ctx).First(&conv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, includeArchived bool, limit int) ([]*types.Conversation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at DESC")
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var convs []*types.Conversation
	if err := q.Find(&convs).Error; err != nil {
		return nil, err
	}
	return convs, nil
}

func (r *conversationRepo) Update(ctx context.Context, tx *gorm.DB, conv *types.Conversation) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(conv).Error
}

// AddMessage bumps the denormalized counter and last-message marker in one
// UPDATE so it can share a transaction with the message insert.
func (r *conversationRepo) AddMessage(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Model(&types.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"message_count":   gorm.Expr("message_count + 1"),
			"last_message_at": at,
		}).Error
}

// RemoveMessage decrements the counter, never below zero.
func (r *conversationRepo) RemoveMessage(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Model(&types.Conversation{}).
		Where("id = ? AND message_count > 0", id).
		Update("message_count", gorm.Expr("message_count - 1")).Error
}

func (r *conversationRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Delete(&types.Conversation{}, "id = ?", id).Error
}

func (r *conversationRepo) FullDeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Unscoped().Delete(&types.Conversation{}, "user_id = ?", userID).Error
}
