package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/freddy-ai/freddy-backend/internal/db"
	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/repos"
	"github.com/freddy-ai/freddy-backend/internal/requestdata"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

func testLog() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// testDB opens a per-test in-memory database. The DSN embeds the test name
// so parallel tests never share a connection pool.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB) (*types.User, context.Context) {
	t.Helper()
	user := &types.User{
		ID:            uuid.New(),
		Email:         uuid.NewString() + "@example.com",
		PasswordHash:  "not-a-real-hash",
		Role:          "user",
		LearningGoals: datatypes.NewJSONSlice([]string{}),
		Preferences:   datatypes.NewJSONType(types.DefaultPreferences()),
		Subscription:  datatypes.NewJSONType(types.DefaultSubscription()),
		Stats:         datatypes.NewJSONType(types.DefaultStats("")),
	}
	if err := gdb.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	return user, ctx
}

func seedLesson(t *testing.T, gdb *gorm.DB, title, category, difficulty string) *types.Lesson {
	t.Helper()
	lesson := &types.Lesson{
		ID:          uuid.New(),
		Title:       title,
		Category:    category,
		Difficulty:  difficulty,
		IsPublished: true,
	}
	if err := gdb.Create(lesson).Error; err != nil {
		t.Fatalf("seed lesson: %v", err)
	}
	return lesson
}

func newConversationService(gdb *gorm.DB) ConversationService {
	log := testLog()
	return NewConversationService(gdb, repos.NewConversationRepo(gdb, log), repos.NewMessageRepo(gdb, log), repos.NewUserRepo(gdb, log), log)
}

func newMessageService(gdb *gorm.DB) MessageService {
	log := testLog()
	return NewMessageService(gdb, repos.NewMessageRepo(gdb, log), repos.NewConversationRepo(gdb, log), repos.NewUserRepo(gdb, log), log)
}

func reloadUser(t *testing.T, gdb *gorm.DB, id uuid.UUID) *types.User {
	t.Helper()
	var user types.User
	if err := gdb.First(&user, "id = ?", id).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return &user
}

func reloadConversation(t *testing.T, gdb *gorm.DB, id uuid.UUID) *types.Conversation {
	t.Helper()
	var conv types.Conversation
	if err := gdb.First(&conv, "id = ?", id).Error; err != nil {
		t.Fatalf("reload conversation: %v", err)
	}
	return &conv
}
