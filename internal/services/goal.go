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

type CreateGoalInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Difficulty  string     `json:"difficulty"`
	Target      int        `json:"target"`
	Priority    string     `json:"priority"`
	Deadline    *time.Time `json:"deadline"`
}

type UpdateGoalInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Difficulty  *string    `json:"difficulty"`
	Target      *int       `json:"target"`
	Progress    *int       `json:"progress"`
	Priority    *string    `json:"priority"`
	Deadline    *time.Time `json:"deadline"`
}

type GoalService interface {
	Create(ctx context.Context, input CreateGoalInput) (*types.LearningGoal, error)
	List(ctx context.Context) ([]*types.LearningGoal, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateGoalInput) (*types.LearningGoal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type goalService struct {
	goalRepo repos.LearningGoalRepo
	log      *logger.Logger
}

func NewGoalService(goalRepo repos.LearningGoalRepo, baseLog *logger.Logger) GoalService {
	return &goalService{goalRepo: goalRepo, log: baseLog.With("service", "GoalService")}
}

func (s *goalService) Create(ctx context.Context, input CreateGoalInput) (*types.LearningGoal, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	if input.Target <= 0 {
		return nil, fmt.Errorf("%w: target must be positive", apperr.ErrValidation)
	}
	goal := &types.LearningGoal{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Difficulty:  input.Difficulty,
		Target:      input.Target,
		Priority:    input.Priority,
		Deadline:    input.Deadline,
	}
	if err := s.goalRepo.Create(ctx, nil, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) List(ctx context.Context) ([]*types.LearningGoal, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	return s.goalRepo.ListByUserID(ctx, nil, userID)
}

// Update recomputes Completed from progress and target; the flag is never
// taken from the client.
func (s *goalService) Update(ctx context.Context, id uuid.UUID, input UpdateGoalInput) (*types.LearningGoal, error) {
	goal, err := s.owned(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.Category != nil {
		goal.Category = *input.Category
	}
	if input.Difficulty != nil {
		goal.Difficulty = *input.Difficulty
	}
	if input.Target != nil {
		if *input.Target <= 0 {
			return nil, fmt.Errorf("%w: target must be positive", apperr.ErrValidation)
		}
		goal.Target = *input.Target
	}
	if input.Progress != nil {
		if *input.Progress < 0 {
			return nil, fmt.Errorf("%w: progress cannot be negative", apperr.ErrValidation)
		}
		goal.Progress = *input.Progress
	}
	if input.Priority != nil {
		goal.Priority = *input.Priority
	}
	if input.Deadline != nil {
		goal.Deadline = input.Deadline
	}
	goal.Completed = goal.Progress >= goal.Target
	if err := s.goalRepo.Update(ctx, nil, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) Delete(ctx context.Context, id uuid.UUID) error {
	goal, err := s.owned(ctx, id)
	if err != nil {
		return err
	}
	return s.goalRepo.SoftDeleteByID(ctx, nil, goal.ID)
}

func (s *goalService) owned(ctx context.Context, id uuid.UUID) (*types.LearningGoal, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	goal, err := s.goalRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if goal.UserID != userID {
		return nil, apperr.ErrAccessDenied
	}
	return goal, nil
}
