package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	User         services.UserService
	Conversation services.ConversationService
	Message      services.MessageService
	Goal         services.GoalService
	Lesson       services.LessonService
	Session      services.StudySessionService
	Event        services.EventService
	Dashboard    services.DashboardService
	Chat         services.ChatService
	RAG          services.RAGService
	Talks        services.TalkClient
	Voices       services.VoiceCache
	Document     services.DocumentService
}

func wireServices(ctx context.Context, db *gorm.DB, r *Repos, cfg *Config, log *logger.Logger) (*Services, error) {
	bucket, err := services.NewBucketService(ctx, log)
	if err != nil {
		return nil, err
	}
	avatars, err := services.NewAvatarImageService(bucket, log)
	if err != nil {
		return nil, err
	}
	rag, err := services.NewRAGService(log)
	if err != nil {
		return nil, err
	}
	rdb, err := services.NewRedisClient(log)
	if err != nil {
		return nil, err
	}

	chatClient := services.NewChatClient(log)
	talks := services.NewTalkClient(log)

	return &Services{
		Auth:         services.NewAuthService(db, r.User, r.UserToken, avatars, cfg.Auth, log),
		User:         services.NewUserService(db, r.User, r.UserToken, r.Conversation, r.Message, r.LessonProgress, r.LearningGoal, r.StudySession, r.AnalyticsEvent, bucket, log),
		Conversation: services.NewConversationService(db, r.Conversation, r.Message, r.User, log),
		Message:      services.NewMessageService(db, r.Message, r.Conversation, r.User, log),
		Goal:         services.NewGoalService(r.LearningGoal, log),
		Lesson:       services.NewLessonService(r.Lesson, r.LessonProgress, log),
		Session:      services.NewStudySessionService(db, r.StudySession, r.Conversation, r.LessonProgress, r.User, log),
		Event:        services.NewEventService(r.AnalyticsEvent, log),
		Dashboard:    services.NewDashboardService(r.User, r.Conversation, r.LessonProgress, r.Lesson, r.LearningGoal, r.StudySession, log),
		Chat:         services.NewChatService(chatClient, rag, log),
		RAG:          rag,
		Talks:        talks,
		Voices:       services.NewVoiceCache(rdb, talks, log),
		Document:     services.NewDocumentService(r.Document, bucket, rag, log),
	}, nil
}
