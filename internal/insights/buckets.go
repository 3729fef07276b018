package insights

import (
	"time"

	"github.com/freddy-ai/freddy-backend/internal/types"
)

type WeekBucket struct {
	WeekStart        string `json:"weekStart"`
	LessonsCompleted int    `json:"lessonsCompleted"`
	AverageScore     int    `json:"averageScore"`
	StudyTimeMinutes int    `json:"studyTimeMinutes"`
}

// WeeklyProgress buckets completions into the trailing `weeks` calendar
// weeks ending at now, oldest first. Each bucket covers [start, start+7d).
func WeeklyProgress(progress []*types.LessonProgress, now time.Time, weeks int) []WeekBucket {
	if weeks <= 0 {
		return []WeekBucket{}
	}
	day := now.UTC().Truncate(24 * time.Hour)
	end := day.AddDate(0, 0, 1)

	buckets := make([]WeekBucket, weeks)
	for i := 0; i < weeks; i++ {
		bucketEnd := end.AddDate(0, 0, -7*(weeks-1-i))
		bucketStart := bucketEnd.AddDate(0, 0, -7)
		bucket := WeekBucket{WeekStart: bucketStart.Format("2006-01-02")}

		var scoreTotal, scoreCount int
		for _, p := range progress {
			if p.Status != types.ProgressCompleted || p.CompletedAt == nil {
				continue
			}
			at := p.CompletedAt.UTC()
			if at.Before(bucketStart) || !at.Before(bucketEnd) {
				continue
			}
			bucket.LessonsCompleted++
			bucket.StudyTimeMinutes += p.TimeSpentSeconds / 60
			if p.Score != nil {
				scoreTotal += *p.Score
				scoreCount++
			}
		}
		if scoreCount > 0 {
			bucket.AverageScore = round(float64(scoreTotal) / float64(scoreCount))
		}
		buckets[i] = bucket
	}
	return buckets
}

type ActivityBucket struct {
	WeekStart     string `json:"weekStart"`
	Conversations int    `json:"conversations"`
	Messages      int    `json:"messages"`
}

// WeeklyConversationActivity buckets conversations by their last-message
// time into the trailing `weeks` calendar weeks ending at now, oldest
// first, each bucket covering [start, start+7d). A conversation counts
// toward the week it was last active in and contributes its full message
// count there; conversations that never received a message are skipped.
func WeeklyConversationActivity(convs []*types.Conversation, now time.Time, weeks int) []ActivityBucket {
	if weeks <= 0 {
		return []ActivityBucket{}
	}
	day := now.UTC().Truncate(24 * time.Hour)
	end := day.AddDate(0, 0, 1)

	buckets := make([]ActivityBucket, weeks)
	for i := 0; i < weeks; i++ {
		bucketEnd := end.AddDate(0, 0, -7*(weeks-1-i))
		bucketStart := bucketEnd.AddDate(0, 0, -7)
		bucket := ActivityBucket{WeekStart: bucketStart.Format("2006-01-02")}
		for _, conv := range convs {
			if conv.LastMessageAt == nil {
				continue
			}
			at := conv.LastMessageAt.UTC()
			if !at.Before(bucketStart) && at.Before(bucketEnd) {
				bucket.Conversations++
				bucket.Messages += conv.MessageCount
			}
		}
		buckets[i] = bucket
	}
	return buckets
}

// StudyTimeMinutes sums finished-session durations starting at or after
// since.
func StudyTimeMinutes(sessions []*types.StudySession, since time.Time) int {
	var totalMs int64
	for _, s := range sessions {
		if s.DurationMs == nil || s.StartTime.Before(since) {
			continue
		}
		totalMs += *s.DurationMs
	}
	return int(totalMs / int64(time.Minute/time.Millisecond))
}
