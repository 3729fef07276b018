package insights

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/freddy-ai/freddy-backend/internal/types"
)

func scoredRow(lessonID uuid.UUID, score int) *types.LessonProgress {
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	return &types.LessonProgress{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		LessonID:    lessonID,
		Status:      types.ProgressCompleted,
		Score:       &score,
		CompletedAt: &now,
	}
}

func lessonIn(category string) *types.Lesson {
	return &types.Lesson{ID: uuid.New(), Title: category + " basics", Category: category, Difficulty: types.DifficultyBeginner, IsPublished: true}
}

func TestStrongestAndImprovementAreas(t *testing.T) {
	grammarA := lessonIn("grammar")
	grammarB := lessonIn("grammar")
	vocabA := lessonIn("vocabulary")
	vocabB := lessonIn("vocabulary")
	lessons := map[uuid.UUID]*types.Lesson{
		grammarA.ID: grammarA,
		grammarB.ID: grammarB,
		vocabA.ID:   vocabA,
		vocabB.ID:   vocabB,
	}
	progress := []*types.LessonProgress{
		scoredRow(grammarA.ID, 90),
		scoredRow(grammarB.ID, 95),
		scoredRow(vocabA.ID, 60),
		scoredRow(vocabB.ID, 70),
	}

	strongest := StrongestAreas(progress, lessons)
	if len(strongest) != 2 {
		t.Fatalf("strongest areas: want=2 got=%d", len(strongest))
	}
	if strongest[0].Category != "grammar" || strongest[0].AverageScore != 93 {
		t.Fatalf("strongest[0]: want=grammar/93 got=%s/%d", strongest[0].Category, strongest[0].AverageScore)
	}

	weakest := ImprovementAreas(progress, lessons)
	if len(weakest) != 1 {
		t.Fatalf("improvement areas: want=1 got=%d", len(weakest))
	}
	if weakest[0].Category != "vocabulary" || weakest[0].AverageScore != 65 {
		t.Fatalf("weakest[0]: want=vocabulary/65 got=%s/%d", weakest[0].Category, weakest[0].AverageScore)
	}
	if weakest[0].ImprovementNeeded != 15 {
		t.Fatalf("improvementNeeded: want=15 got=%d", weakest[0].ImprovementNeeded)
	}
}

func TestAreasIgnoreUnscoredAndUnfinished(t *testing.T) {
	lesson := lessonIn("grammar")
	lessons := map[uuid.UUID]*types.Lesson{lesson.ID: lesson}
	now := time.Now().UTC()
	progress := []*types.LessonProgress{
		{ID: uuid.New(), LessonID: lesson.ID, Status: types.ProgressCompleted, CompletedAt: &now},
		{ID: uuid.New(), LessonID: lesson.ID, Status: types.ProgressInProgress},
	}
	if got := StrongestAreas(progress, lessons); len(got) != 0 {
		t.Fatalf("strongest areas over unscored rows: want=0 got=%d", len(got))
	}
	if got := ImprovementAreas(progress, lessons); len(got) != 0 {
		t.Fatalf("improvement areas over unscored rows: want=0 got=%d", len(got))
	}
}
