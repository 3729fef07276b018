package insights

import (
	"testing"
	"time"

	"github.com/freddy-ai/freddy-backend/internal/types"
)

func completedRows(n int) []*types.LessonProgress {
	now := time.Now().UTC()
	rows := make([]*types.LessonProgress, n)
	for i := range rows {
		rows[i] = progressRow(types.ProgressCompleted, &now, nil, 0)
	}
	return rows
}

func TestRecentAchievements(t *testing.T) {
	tests := []struct {
		completed int
		want      int
	}{
		{0, 0},
		{1, 1},
		{5, 2},
		{10, 3},
		{50, 3},
	}
	for _, tt := range tests {
		if got := RecentAchievements(completedRows(tt.completed)); len(got) != tt.want {
			t.Fatalf("achievements for %d completed: want=%d got=%d", tt.completed, tt.want, len(got))
		}
	}
}

func TestMotivationalInsightsNeverEmpty(t *testing.T) {
	if got := MotivationalInsights(0, 0); len(got) == 0 {
		t.Fatalf("insights for a new learner should not be empty")
	}
	got := MotivationalInsights(12, 5)
	if len(got) < 2 {
		t.Fatalf("insights for an active learner: want>=2 got=%d", len(got))
	}
}
