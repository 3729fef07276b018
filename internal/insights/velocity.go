package insights

import (
	"sort"

	"github.com/freddy-ai/freddy-backend/internal/types"
)

// LearningVelocity returns completed lessons per day across the span from
// the first to the last completion. Fewer than two completions, or all
// completions at the same instant, yield 0.
func LearningVelocity(progress []*types.LessonProgress) float64 {
	completed := make([]*types.LessonProgress, 0, len(progress))
	for _, p := range progress {
		if p.Status == types.ProgressCompleted && p.CompletedAt != nil {
			completed = append(completed, p)
		}
	}
	if len(completed) < 2 {
		return 0
	}
	sort.SliceStable(completed, func(i, j int) bool {
		a, b := completed[i], completed[j]
		if a.CompletedAt.Equal(*b.CompletedAt) {
			return a.ID.String() < b.ID.String()
		}
		return a.CompletedAt.Before(*b.CompletedAt)
	})
	first := *completed[0].CompletedAt
	last := *completed[len(completed)-1].CompletedAt
	daysSpan := last.Sub(first).Hours() / 24
	if daysSpan <= 0 {
		return 0
	}
	return float64(len(completed)) / daysSpan
}
