package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/repos"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

func newUserService(gdb *gorm.DB) UserService {
	log := testLog()
	return NewUserService(
		gdb,
		repos.NewUserRepo(gdb, log),
		repos.NewUserTokenRepo(gdb, log),
		repos.NewConversationRepo(gdb, log),
		repos.NewMessageRepo(gdb, log),
		repos.NewLessonProgressRepo(gdb, log),
		repos.NewLearningGoalRepo(gdb, log),
		repos.NewStudySessionRepo(gdb, log),
		repos.NewAnalyticsEventRepo(gdb, log),
		nil,
		log,
	)
}

func TestUpdateStatsPatchesOnlyProvidedFields(t *testing.T) {
	gdb := testDB(t)
	_, ctx := seedUser(t, gdb)
	userSvc := newUserService(gdb)

	streak := 4
	updated, err := userSvc.UpdateStats(ctx, StatsPatch{StreakDays: &streak})
	if err != nil {
		t.Fatalf("update stats: %v", err)
	}
	stats := updated.Stats.Data()
	if stats.StreakDays != 4 {
		t.Fatalf("streak: want=4 got=%d", stats.StreakDays)
	}
	if stats.CurrentLevel != "beginner" {
		t.Fatalf("untouched field changed: %q", stats.CurrentLevel)
	}
}

func TestDeleteAccountRemovesEverything(t *testing.T) {
	gdb := testDB(t)
	user, ctx := seedUser(t, gdb)
	userSvc := newUserService(gdb)
	convSvc := newConversationService(gdb)
	msgSvc := newMessageService(gdb)
	log := testLog()
	goalSvc := NewGoalService(repos.NewLearningGoalRepo(gdb, log), log)
	sessionSvc := NewStudySessionService(gdb, repos.NewStudySessionRepo(gdb, log), repos.NewConversationRepo(gdb, log), repos.NewLessonProgressRepo(gdb, log), repos.NewUserRepo(gdb, log), log)
	eventSvc := NewEventService(repos.NewAnalyticsEventRepo(gdb, log), log)
	lessonSvc := NewLessonService(repos.NewLessonRepo(gdb, log), repos.NewLessonProgressRepo(gdb, log), log)

	conv, err := convSvc.Create(ctx, CreateConversationInput{Title: "Everything"})
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	if _, err := msgSvc.Send(ctx, SendMessageInput{ConversationID: conv.ID, Role: types.MessageRoleUser, Content: "hi"}); err != nil {
		t.Fatalf("send message: %v", err)
	}
	if _, err := goalSvc.Create(ctx, CreateGoalInput{Title: "Pass the exam", Target: 5}); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if _, err := sessionSvc.Start(ctx); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if _, err := eventSvc.Record(ctx, EventInput{Event: "app.opened"}); err != nil {
		t.Fatalf("record event: %v", err)
	}
	lesson := seedLesson(t, gdb, "Basics", "grammar", types.DifficultyBeginner)
	if _, err := lessonSvc.RecordProgress(ctx, ProgressInput{LessonID: lesson.ID, Status: types.ProgressInProgress}); err != nil {
		t.Fatalf("record progress: %v", err)
	}

	if err := userSvc.DeleteAccount(ctx); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	// Hard deletes: not even soft-deleted rows may survive for this user.
	models := []struct {
		name  string
		model interface{}
	}{
		{"messages", &types.Message{}},
		{"conversations", &types.Conversation{}},
		{"lesson progress", &types.LessonProgress{}},
		{"goals", &types.LearningGoal{}},
		{"sessions", &types.StudySession{}},
		{"events", &types.AnalyticsEvent{}},
		{"tokens", &types.UserToken{}},
	}
	for _, m := range models {
		var n int64
		if err := gdb.Unscoped().Model(m.model).Where("user_id = ?", user.ID).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", m.name, err)
		}
		if n != 0 {
			t.Fatalf("%s left behind: %d rows", m.name, n)
		}
	}
	var users int64
	if err := gdb.Unscoped().Model(&types.User{}).Where("id = ?", user.ID).Count(&users).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 0 {
		t.Fatalf("user row left behind")
	}

	// Published lessons are shared content and stay.
	var lessons int64
	if err := gdb.Model(&types.Lesson{}).Count(&lessons).Error; err != nil {
		t.Fatalf("count lessons: %v", err)
	}
	if lessons != 1 {
		t.Fatalf("lessons: want=1 got=%d", lessons)
	}

	if _, err := userSvc.GetProfile(ctx); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("profile after delete: want=ErrNotFound got=%v", err)
	}
}
