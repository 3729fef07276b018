package insights

import (
	"testing"
	"time"

	"github.com/freddy-ai/freddy-backend/internal/types"
)

func TestWeeklyProgressBuckets(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	score := 80
	inThisWeek := now.AddDate(0, 0, -2)
	inLastWeek := now.AddDate(0, 0, -9)
	tooOld := now.AddDate(0, 0, -40)

	progress := []*types.LessonProgress{
		progressRow(types.ProgressCompleted, &inThisWeek, &score, 1800),
		progressRow(types.ProgressCompleted, &inLastWeek, nil, 600),
		progressRow(types.ProgressCompleted, &tooOld, &score, 600),
		progressRow(types.ProgressInProgress, nil, nil, 600),
	}

	buckets := WeeklyProgress(progress, now, 4)
	if len(buckets) != 4 {
		t.Fatalf("buckets: want=4 got=%d", len(buckets))
	}
	last := buckets[3]
	if last.LessonsCompleted != 1 || last.StudyTimeMinutes != 30 || last.AverageScore != 80 {
		t.Fatalf("latest bucket: got=%+v", last)
	}
	prev := buckets[2]
	if prev.LessonsCompleted != 1 || prev.AverageScore != 0 {
		t.Fatalf("previous bucket: got=%+v", prev)
	}
	if buckets[0].LessonsCompleted != 0 {
		t.Fatalf("oldest bucket should be empty, got=%+v", buckets[0])
	}
}

func lastActive(messages int, at time.Time) *types.Conversation {
	conv := conversation(messages)
	conv.LastMessageAt = &at
	return conv
}

func TestWeeklyConversationActivity(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 30, 0, 0, time.UTC)
	// Bucket edges are [start, end): a last-message time exactly on the
	// latest bucket's start belongs to it, one on its end does not exist
	// yet.
	latestStart := now.Truncate(24*time.Hour).AddDate(0, 0, 1).AddDate(0, 0, -7)

	convs := []*types.Conversation{
		lastActive(8, latestStart),
		lastActive(3, latestStart.AddDate(0, 0, 2)),
		lastActive(5, latestStart.AddDate(0, 0, -1)),
		conversation(99), // never active, belongs nowhere
	}
	buckets := WeeklyConversationActivity(convs, now, 2)
	if len(buckets) != 2 {
		t.Fatalf("buckets: want=2 got=%d", len(buckets))
	}
	if buckets[1].Conversations != 2 || buckets[1].Messages != 11 {
		t.Fatalf("latest week: got=%+v", buckets[1])
	}
	if buckets[0].Conversations != 1 || buckets[0].Messages != 5 {
		t.Fatalf("previous week: got=%+v", buckets[0])
	}
}

func TestStudyTimeMinutes(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	recent := session(45, 0, true)
	recent.StartTime = now.AddDate(0, 0, -1)
	old := session(60, 0, true)
	old.StartTime = now.AddDate(0, 0, -20)
	open := session(0, 0, false)
	open.StartTime = now

	got := StudyTimeMinutes([]*types.StudySession{recent, old, open}, now.AddDate(0, 0, -7))
	if got != 45 {
		t.Fatalf("StudyTimeMinutes: want=45 got=%d", got)
	}
}
