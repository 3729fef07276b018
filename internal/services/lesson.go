package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/repos"
	"github.com/freddy-ai/freddy-backend/internal/requestdata"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

type ProgressInput struct {
	LessonID         uuid.UUID `json:"lesson_id"`
	Status           string    `json:"status"`
	Score            *int      `json:"score"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
}

type LessonService interface {
	ListPublished(ctx context.Context) ([]*types.Lesson, error)
	RecordProgress(ctx context.Context, input ProgressInput) (*types.LessonProgress, error)
	ListProgress(ctx context.Context) ([]*types.LessonProgress, error)
}

type lessonService struct {
	lessonRepo   repos.LessonRepo
	progressRepo repos.LessonProgressRepo
	log          *logger.Logger
}

func NewLessonService(lessonRepo repos.LessonRepo, progressRepo repos.LessonProgressRepo, baseLog *logger.Logger) LessonService {
	return &lessonService{
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		log:          baseLog.With("service", "LessonService"),
	}
}

func (s *lessonService) ListPublished(ctx context.Context) ([]*types.Lesson, error) {
	if requestdata.UserID(ctx) == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	return s.lessonRepo.ListPublished(ctx, nil)
}

func validStatus(status string) bool {
	switch status {
	case types.ProgressNotStarted, types.ProgressInProgress, types.ProgressCompleted:
		return true
	}
	return false
}

// RecordProgress upserts the (user, lesson) row. Time spent accumulates;
// CompletedAt is stamped on the first transition into completed and kept
// on later writes.
func (s *lessonService) RecordProgress(ctx context.Context, input ProgressInput) (*types.LessonProgress, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if !validStatus(input.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", apperr.ErrValidation, input.Status)
	}
	if input.Score != nil && (*input.Score < 0 || *input.Score > 100) {
		return nil, fmt.Errorf("%w: score must be between 0 and 100", apperr.ErrValidation)
	}
	if _, err := s.lessonRepo.GetByID(ctx, nil, input.LessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	progress, err := s.progressRepo.GetByUserAndLesson(ctx, nil, userID, input.LessonID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		progress = &types.LessonProgress{
			ID:       uuid.New(),
			UserID:   userID,
			LessonID: input.LessonID,
		}
	}

	progress.Status = input.Status
	if input.Score != nil {
		progress.Score = input.Score
	}
	progress.TimeSpentSeconds += input.TimeSpentSeconds
	if input.Status == types.ProgressCompleted && progress.CompletedAt == nil {
		now := time.Now().UTC()
		progress.CompletedAt = &now
	}

	if err := s.progressRepo.Upsert(ctx, nil, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *lessonService) ListProgress(ctx context.Context) ([]*types.LessonProgress, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	return s.progressRepo.ListByUserID(ctx, nil, userID)
}
