package insights

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/freddy-ai/freddy-backend/internal/types"
)

func publishedLesson(title, difficulty string) *types.Lesson {
	return &types.Lesson{ID: uuid.New(), Title: title, Category: "general", Difficulty: difficulty, IsPublished: true}
}

func TestRecommendedLevel(t *testing.T) {
	tests := []struct {
		completed int
		want      string
	}{
		{0, types.DifficultyBeginner},
		{9, types.DifficultyBeginner},
		{10, types.DifficultyIntermediate},
		{19, types.DifficultyIntermediate},
		{20, types.DifficultyAdvanced},
	}
	for _, tt := range tests {
		if got := RecommendedLevel(tt.completed); got != tt.want {
			t.Fatalf("RecommendedLevel(%d): want=%s got=%s", tt.completed, tt.want, got)
		}
	}
}

func TestRecommendationsExcludeCompletedAndCap(t *testing.T) {
	done := publishedLesson("Done already", types.DifficultyBeginner)
	a := publishedLesson("A", types.DifficultyBeginner)
	b := publishedLesson("B", types.DifficultyBeginner)
	c := publishedLesson("C", types.DifficultyBeginner)
	d := publishedLesson("D", types.DifficultyBeginner)
	harder := publishedLesson("Harder", types.DifficultyIntermediate)

	now := time.Now().UTC()
	progress := []*types.LessonProgress{
		{ID: uuid.New(), LessonID: done.ID, Status: types.ProgressCompleted, CompletedAt: &now},
	}

	recs := Recommendations(progress, []*types.Lesson{done, a, b, c, d, harder})
	if len(recs) != 3 {
		t.Fatalf("recommendations: want=3 got=%d", len(recs))
	}
	for _, rec := range recs {
		if rec.LessonID == done.ID {
			t.Fatalf("completed lesson was recommended")
		}
		if rec.Difficulty != types.DifficultyBeginner {
			t.Fatalf("difficulty: want=beginner got=%s", rec.Difficulty)
		}
		if rec.Reason == "" {
			t.Fatalf("recommendation is missing a reason")
		}
	}
}
