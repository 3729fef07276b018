package insights

import (
	"sort"

	"github.com/google/uuid"

	"github.com/freddy-ai/freddy-backend/internal/types"
)

const improvementThreshold = 80

type CategoryScore struct {
	Category          string `json:"category"`
	AverageScore      int    `json:"averageScore"`
	LessonCount       int    `json:"lessonCount"`
	ImprovementNeeded int    `json:"improvementNeeded,omitempty"`
}

type categoryAgg struct {
	total float64
	count int
}

// categoryAverages folds completed, scored progress rows into a mean score
// per lesson category. Unscored or unfinished rows don't count.
func categoryAverages(progress []*types.LessonProgress, lessonsByID map[uuid.UUID]*types.Lesson) map[string]categoryAgg {
	byCategory := map[string]categoryAgg{}
	for _, p := range progress {
		if p.Status != types.ProgressCompleted || p.Score == nil {
			continue
		}
		lesson, ok := lessonsByID[p.LessonID]
		if !ok {
			continue
		}
		agg := byCategory[lesson.Category]
		agg.total += float64(*p.Score)
		agg.count++
		byCategory[lesson.Category] = agg
	}
	return byCategory
}

// StrongestAreas returns up to three categories with the highest average
// score, ties broken by category name.
func StrongestAreas(progress []*types.LessonProgress, lessonsByID map[uuid.UUID]*types.Lesson) []CategoryScore {
	byCategory := categoryAverages(progress, lessonsByID)
	scores := make([]CategoryScore, 0, len(byCategory))
	for category, agg := range byCategory {
		scores = append(scores, CategoryScore{
			Category:     category,
			AverageScore: round(agg.total / float64(agg.count)),
			LessonCount:  agg.count,
		})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].AverageScore == scores[j].AverageScore {
			return scores[i].Category < scores[j].Category
		}
		return scores[i].AverageScore > scores[j].AverageScore
	})
	if len(scores) > 3 {
		scores = scores[:3]
	}
	return scores
}

// ImprovementAreas returns up to three categories averaging under 80,
// weakest first, each annotated with the points needed to reach 80.
func ImprovementAreas(progress []*types.LessonProgress, lessonsByID map[uuid.UUID]*types.Lesson) []CategoryScore {
	byCategory := categoryAverages(progress, lessonsByID)
	scores := make([]CategoryScore, 0, len(byCategory))
	for category, agg := range byCategory {
		avg := round(agg.total / float64(agg.count))
		if avg >= improvementThreshold {
			continue
		}
		scores = append(scores, CategoryScore{
			Category:          category,
			AverageScore:      avg,
			LessonCount:       agg.count,
			ImprovementNeeded: improvementThreshold - avg,
		})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].AverageScore == scores[j].AverageScore {
			return scores[i].Category < scores[j].Category
		}
		return scores[i].AverageScore < scores[j].AverageScore
	})
	if len(scores) > 3 {
		scores = scores[:3]
	}
	return scores
}
