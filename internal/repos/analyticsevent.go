package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

type AnalyticsEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, events []*types.AnalyticsEvent) error
	ListByUserIDBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*types.AnalyticsEvent, error)
	FullDeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type analyticsEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnalyticsEventRepo(db *gorm.DB, baseLog *logger.Logger) AnalyticsEventRepo {
	return &analyticsEventRepo{db: db, log: baseLog.With("repo", "AnalyticsEventRepo")}
}

func (r *analyticsEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.AnalyticsEvent) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(events) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&events).Error
}

func (r *analyticsEventRepo) ListByUserIDBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*types.AnalyticsEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var events []*types.AnalyticsEvent
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ? AND timestamp <= ?", userID, start, end).
		Order("timestamp ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *analyticsEventRepo) FullDeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Unscoped().Delete(&types.AnalyticsEvent{}, "user_id = ?", userID).Error
}
