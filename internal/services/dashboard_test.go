package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/repos"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

func newDashboardService(gdb *gorm.DB) DashboardService {
	log := testLog()
	return NewDashboardService(
		repos.NewUserRepo(gdb, log),
		repos.NewConversationRepo(gdb, log),
		repos.NewLessonProgressRepo(gdb, log),
		repos.NewLessonRepo(gdb, log),
		repos.NewLearningGoalRepo(gdb, log),
		repos.NewStudySessionRepo(gdb, log),
		log,
	)
}

func TestGetDashboardComposesAllBlocks(t *testing.T) {
	gdb := testDB(t)
	_, ctx := seedUser(t, gdb)
	dashSvc := newDashboardService(gdb)
	convSvc := newConversationService(gdb)
	msgSvc := newMessageService(gdb)
	goalSvc := newGoalService(gdb)
	lessonSvc := newLessonService(gdb)
	sessionSvc := newSessionService(gdb)

	conv, err := convSvc.Create(ctx, CreateConversationInput{Title: "Warmup"})
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	if _, err := msgSvc.Send(ctx, SendMessageInput{ConversationID: conv.ID, Role: types.MessageRoleUser, Content: "hi"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	grammar := seedLesson(t, gdb, "Articles", "grammar", types.DifficultyBeginner)
	vocab := seedLesson(t, gdb, "Food Words", "vocabulary", types.DifficultyBeginner)
	score := 90
	if _, err := lessonSvc.RecordProgress(ctx, ProgressInput{LessonID: grammar.ID, Status: types.ProgressCompleted, Score: &score, TimeSpentSeconds: 600}); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}
	if _, err := lessonSvc.RecordProgress(ctx, ProgressInput{LessonID: vocab.ID, Status: types.ProgressInProgress, TimeSpentSeconds: 120}); err != nil {
		t.Fatalf("start lesson: %v", err)
	}

	if _, err := goalSvc.Create(ctx, CreateGoalInput{Title: "Daily practice", Target: 7}); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	session, err := sessionSvc.Start(ctx)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if _, err := sessionSvc.End(ctx, session.ID, EndSessionInput{MessagesCount: 2}); err != nil {
		t.Fatalf("end session: %v", err)
	}

	dashboard, err := dashSvc.GetDashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if dashboard.Lessons.Completed != 1 || dashboard.Lessons.Total != 2 {
		t.Fatalf("lesson block: %+v", dashboard.Lessons)
	}
	if dashboard.Lessons.AverageScore != 90 {
		t.Fatalf("average score: want=90 got=%d", dashboard.Lessons.AverageScore)
	}
	if dashboard.Lessons.TotalStudyMinutes != 12 {
		t.Fatalf("study minutes: want=12 got=%d", dashboard.Lessons.TotalStudyMinutes)
	}
	if dashboard.Conversations.Total != 1 || dashboard.Conversations.TotalMessages != 1 {
		t.Fatalf("conversation block: %+v", dashboard.Conversations)
	}
	if dashboard.Goals.Total != 1 || dashboard.Goals.Completed != 0 {
		t.Fatalf("goal block: %+v", dashboard.Goals)
	}
	if dashboard.Stats.TotalConversations != 1 || dashboard.Stats.TotalMessages != 1 {
		t.Fatalf("stats block: %+v", dashboard.Stats)
	}
	if len(dashboard.WeeklyProgress) != 4 {
		t.Fatalf("weekly buckets: want=4 got=%d", len(dashboard.WeeklyProgress))
	}
	if dashboard.WeeklyProgress[3].LessonsCompleted != 1 {
		t.Fatalf("latest week should hold today's completion: %+v", dashboard.WeeklyProgress[3])
	}
	// Today's activity alone is a one-day streak.
	if dashboard.StreakDays != 1 {
		t.Fatalf("streak: want=1 got=%d", dashboard.StreakDays)
	}
	if len(dashboard.RecentAchievements) != 1 {
		t.Fatalf("achievements: want=1 got=%d", len(dashboard.RecentAchievements))
	}
}

// Streaks follow study-session days, so finishing a lesson without ever
// opening a session leaves the streak at zero.
func TestStreakIgnoresLessonCompletions(t *testing.T) {
	gdb := testDB(t)
	_, ctx := seedUser(t, gdb)
	dashSvc := newDashboardService(gdb)
	lessonSvc := newLessonService(gdb)

	lesson := seedLesson(t, gdb, "Articles", "grammar", types.DifficultyBeginner)
	if _, err := lessonSvc.RecordProgress(ctx, ProgressInput{LessonID: lesson.ID, Status: types.ProgressCompleted, TimeSpentSeconds: 300}); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}

	dashboard, err := dashSvc.GetDashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dashboard.Lessons.Completed != 1 {
		t.Fatalf("lesson block: %+v", dashboard.Lessons)
	}
	if dashboard.StreakDays != 0 {
		t.Fatalf("streak without sessions: want=0 got=%d", dashboard.StreakDays)
	}
}

func TestGetLessonAnalyticsForNewLearner(t *testing.T) {
	gdb := testDB(t)
	_, ctx := seedUser(t, gdb)
	dashSvc := newDashboardService(gdb)
	seedLesson(t, gdb, "Starter", "grammar", types.DifficultyBeginner)

	analytics, err := dashSvc.GetLessonAnalytics(ctx)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if analytics.LearningVelocity != 0 {
		t.Fatalf("velocity for new learner: want=0 got=%v", analytics.LearningVelocity)
	}
	if analytics.StudyPattern.PreferredTime != "morning" || analytics.StudyPattern.Frequency != "irregular" {
		t.Fatalf("default pattern: %+v", analytics.StudyPattern)
	}
	if len(analytics.Recommendations) != 1 {
		t.Fatalf("recommendations: want=1 got=%d", len(analytics.Recommendations))
	}
	if analytics.Recommendations[0].Difficulty != types.DifficultyBeginner {
		t.Fatalf("new learners start at beginner: %+v", analytics.Recommendations[0])
	}
	if len(analytics.Insights) == 0 {
		t.Fatalf("insights should never be empty")
	}
}

func TestDashboardRequiresAuth(t *testing.T) {
	gdb := testDB(t)
	dashSvc := newDashboardService(gdb)

	if _, err := dashSvc.GetDashboard(context.Background()); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("anonymous dashboard: want=ErrUnauthorized got=%v", err)
	}
	if _, err := dashSvc.GetLessonAnalytics(context.Background()); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("anonymous analytics: want=ErrUnauthorized got=%v", err)
	}
}
