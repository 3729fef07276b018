package insights

import (
	"github.com/freddy-ai/freddy-backend/internal/types"
)

type StudyPattern struct {
	PreferredTime         string `json:"preferredTime"`
	AverageSessionMinutes int    `json:"averageSessionMinutes"`
	Frequency             string `json:"frequency"`
}

// StudyPatterns derives when and how long the learner tends to study from
// their completed lessons. The preferred time buckets are morning (<12),
// afternoon [12,17) and evening (>=17) by completion hour, taking the
// modal bucket's hour.
func StudyPatterns(progress []*types.LessonProgress) StudyPattern {
	pattern := StudyPattern{PreferredTime: "morning", Frequency: "irregular"}

	var completed int
	var totalSeconds float64
	hourCounts := map[int]int{}
	for _, p := range progress {
		if p.Status != types.ProgressCompleted {
			continue
		}
		completed++
		totalSeconds += float64(p.TimeSpentSeconds)
		if p.CompletedAt != nil {
			hourCounts[p.CompletedAt.UTC().Hour()]++
		}
	}
	if completed == 0 {
		return pattern
	}

	modalHour, modalCount := 0, -1
	for hour, count := range hourCounts {
		if count > modalCount || (count == modalCount && hour < modalHour) {
			modalHour, modalCount = hour, count
		}
	}
	switch {
	case modalHour < 12:
		pattern.PreferredTime = "morning"
	case modalHour < 17:
		pattern.PreferredTime = "afternoon"
	default:
		pattern.PreferredTime = "evening"
	}

	pattern.AverageSessionMinutes = round(totalSeconds / float64(completed) / 60)
	if completed > 10 {
		pattern.Frequency = "regular"
	}
	return pattern
}
