package insights

import (
	"time"

	"github.com/freddy-ai/freddy-backend/internal/types"
)

// Engagement score weights: up to 30 points for session length (30 minutes
// saturates), up to 35 for messages per conversation (20 saturates), up to
// 35 for the share of lessons completed.
const (
	fullSessionDuration      = 30 * time.Minute
	fullConversationMessages = 20
	durationWeight           = 30.0
	messagesWeight           = 35.0
	completionWeight         = 35.0
)

// EngagementScore folds sessions, conversations and lesson progress into a
// 0-100 score. Each term contributes 0 when its input list is empty.
func EngagementScore(sessions []*types.StudySession, conversations []*types.Conversation, progress []*types.LessonProgress) int {
	var score float64

	if len(sessions) > 0 {
		var totalDurationMs int64
		for _, s := range sessions {
			if s.DurationMs != nil {
				totalDurationMs += *s.DurationMs
			}
		}
		avgDuration := float64(totalDurationMs) / float64(len(sessions))
		durationPoints := avgDuration / float64(fullSessionDuration.Milliseconds()) * durationWeight
		if durationPoints > durationWeight {
			durationPoints = durationWeight
		}
		score += durationPoints
	}

	if len(conversations) > 0 {
		var totalMessages int
		for _, c := range conversations {
			totalMessages += c.MessageCount
		}
		avgMessages := float64(totalMessages) / float64(len(conversations))
		messagePoints := avgMessages / fullConversationMessages * messagesWeight
		if messagePoints > messagesWeight {
			messagePoints = messagesWeight
		}
		score += messagePoints
	}

	if len(progress) > 0 {
		var completed int
		for _, p := range progress {
			if p.Status == types.ProgressCompleted {
				completed++
			}
		}
		score += float64(completed) / float64(len(progress)) * completionWeight
	}

	return clamp(round(score), 0, 100)
}
