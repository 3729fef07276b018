package insights

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/freddy-ai/freddy-backend/internal/types"
)

type Recommendation struct {
	LessonID   uuid.UUID `json:"lessonId"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Difficulty string    `json:"difficulty"`
	Reason     string    `json:"reason"`
}

// RecommendedLevel maps completed-lesson count onto a difficulty tier.
func RecommendedLevel(completedCount int) string {
	switch {
	case completedCount >= 20:
		return types.DifficultyAdvanced
	case completedCount >= 10:
		return types.DifficultyIntermediate
	default:
		return types.DifficultyBeginner
	}
}

// Recommendations picks up to three published lessons at the learner's
// current level that they haven't completed yet.
func Recommendations(progress []*types.LessonProgress, published []*types.Lesson) []Recommendation {
	completedIDs := map[uuid.UUID]struct{}{}
	completedCount := 0
	for _, p := range progress {
		if p.Status == types.ProgressCompleted {
			completedIDs[p.LessonID] = struct{}{}
			completedCount++
		}
	}
	level := RecommendedLevel(completedCount)

	candidates := make([]*types.Lesson, 0, len(published))
	for _, lesson := range published {
		if !lesson.IsPublished {
			continue
		}
		if _, done := completedIDs[lesson.ID]; done {
			continue
		}
		if lesson.Difficulty != level {
			continue
		}
		candidates = append(candidates, lesson)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Title == candidates[j].Title {
			return candidates[i].ID.String() < candidates[j].ID.String()
		}
		return candidates[i].Title < candidates[j].Title
	})
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}

	recs := make([]Recommendation, 0, len(candidates))
	for _, lesson := range candidates {
		recs = append(recs, Recommendation{
			LessonID:   lesson.ID,
			Title:      lesson.Title,
			Category:   lesson.Category,
			Difficulty: lesson.Difficulty,
			Reason:     fmt.Sprintf("Matches your current %s level", level),
		})
	}
	return recs
}
