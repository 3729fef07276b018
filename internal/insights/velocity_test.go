package insights

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/freddy-ai/freddy-backend/internal/types"
)

func completedAt(t time.Time) *time.Time { return &t }

func progressRow(status string, completed *time.Time, score *int, timeSpent int) *types.LessonProgress {
	return &types.LessonProgress{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		LessonID:         uuid.New(),
		Status:           status,
		Score:            score,
		TimeSpentSeconds: timeSpent,
		CompletedAt:      completed,
	}
}

func TestLearningVelocity(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		progress []*types.LessonProgress
		want     float64
	}{
		{
			name:     "no rows",
			progress: nil,
			want:     0,
		},
		{
			name: "single completion",
			progress: []*types.LessonProgress{
				progressRow(types.ProgressCompleted, completedAt(base), nil, 0),
			},
			want: 0,
		},
		{
			name: "all at the same instant",
			progress: []*types.LessonProgress{
				progressRow(types.ProgressCompleted, completedAt(base), nil, 0),
				progressRow(types.ProgressCompleted, completedAt(base), nil, 0),
			},
			want: 0,
		},
		{
			name: "four lessons over two days",
			progress: []*types.LessonProgress{
				progressRow(types.ProgressCompleted, completedAt(base), nil, 0),
				progressRow(types.ProgressCompleted, completedAt(base.Add(12*time.Hour)), nil, 0),
				progressRow(types.ProgressCompleted, completedAt(base.Add(24*time.Hour)), nil, 0),
				progressRow(types.ProgressCompleted, completedAt(base.Add(48*time.Hour)), nil, 0),
			},
			want: 2,
		},
		{
			name: "in progress rows don't count",
			progress: []*types.LessonProgress{
				progressRow(types.ProgressCompleted, completedAt(base), nil, 0),
				progressRow(types.ProgressInProgress, nil, nil, 0),
			},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LearningVelocity(tt.progress)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("LearningVelocity: want=%v got=%v", tt.want, got)
			}
		})
	}
}
