package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

type LearningGoalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, goal *types.LearningGoal) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.LearningGoal, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LearningGoal, error)
	Update(ctx context.Context, tx *gorm.DB, goal *types.LearningGoal) error
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	FullDeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type learningGoalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningGoalRepo(db *gorm.DB, baseLog *logger.Logger) LearningGoalRepo {
	return &learningGoalRepo{db: db, log: baseLog.With("repo", "LearningGoalRepo")}
}

func (r *learningGoalRepo) Create(ctx context.Context, tx *gorm.DB, goal *types.LearningGoal) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(goal).Error
}

func (r *learningGoalRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.LearningGoal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var goal types.LearningGoal
	if err := transaction.WithContext(ctx).First(&goal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *learningGoalRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LearningGoal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var goals []*types.LearningGoal
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *learningGoalRepo) Update(ctx context.Context, tx *gorm.DB, goal *types.LearningGoal) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(goal).Error
}

func (r *learningGoalRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Delete(&types.LearningGoal{}, "id = ?", id).Error
}

func (r *learningGoalRepo) FullDeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Unscoped().Delete(&types.LearningGoal{}, "user_id = ?", userID).Error
}
