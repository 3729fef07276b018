package insights

import (
	"testing"
	"time"

	"github.com/freddy-ai/freddy-backend/internal/types"
)

func completedRowAtHour(hour, timeSpentSeconds int) *types.LessonProgress {
	at := time.Date(2026, 8, 15, hour, 30, 0, 0, time.UTC)
	return progressRow(types.ProgressCompleted, &at, nil, timeSpentSeconds)
}

func TestStudyPatterns(t *testing.T) {
	t.Run("empty defaults", func(t *testing.T) {
		got := StudyPatterns(nil)
		want := StudyPattern{PreferredTime: "morning", Frequency: "irregular"}
		if got != want {
			t.Fatalf("StudyPatterns: want=%+v got=%+v", want, got)
		}
	})

	t.Run("evening learner", func(t *testing.T) {
		progress := []*types.LessonProgress{
			completedRowAtHour(19, 600),
			completedRowAtHour(20, 1200),
			completedRowAtHour(9, 600),
		}
		got := StudyPatterns(progress)
		if got.PreferredTime != "evening" {
			t.Fatalf("preferred time: want=evening got=%s", got.PreferredTime)
		}
		// (600+1200+600)/3 seconds = 800s -> 13.33 minutes -> 13.
		if got.AverageSessionMinutes != 13 {
			t.Fatalf("average minutes: want=13 got=%d", got.AverageSessionMinutes)
		}
		if got.Frequency != "irregular" {
			t.Fatalf("frequency: want=irregular got=%s", got.Frequency)
		}
	})

	t.Run("regular after more than ten completions", func(t *testing.T) {
		var progress []*types.LessonProgress
		for i := 0; i < 11; i++ {
			progress = append(progress, completedRowAtHour(13, 300))
		}
		got := StudyPatterns(progress)
		if got.Frequency != "regular" {
			t.Fatalf("frequency: want=regular got=%s", got.Frequency)
		}
		if got.PreferredTime != "afternoon" {
			t.Fatalf("preferred time: want=afternoon got=%s", got.PreferredTime)
		}
	})
}
