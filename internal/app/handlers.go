package app

import (
	"github.com/freddy-ai/freddy-backend/internal/handlers"
	"github.com/freddy-ai/freddy-backend/internal/logger"
)

type Handlers struct {
	Healthcheck  *handlers.HealthcheckHandler
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Conversation *handlers.ConversationHandler
	Message      *handlers.MessageHandler
	Goal         *handlers.GoalHandler
	Lesson       *handlers.LessonHandler
	Session      *handlers.SessionHandler
	Event        *handlers.EventHandler
	Dashboard    *handlers.DashboardHandler
	Chat         *handlers.ChatHandler
	Avatar       *handlers.AvatarHandler
	Document     *handlers.DocumentHandler
}

func wireHandlers(s *Services, log *logger.Logger) *Handlers {
	return &Handlers{
		Healthcheck:  handlers.NewHealthcheckHandler(),
		Auth:         handlers.NewAuthHandler(s.Auth, log),
		User:         handlers.NewUserHandler(s.User, log),
		Conversation: handlers.NewConversationHandler(s.Conversation, log),
		Message:      handlers.NewMessageHandler(s.Message, log),
		Goal:         handlers.NewGoalHandler(s.Goal, log),
		Lesson:       handlers.NewLessonHandler(s.Lesson, log),
		Session:      handlers.NewSessionHandler(s.Session, log),
		Event:        handlers.NewEventHandler(s.Event, log),
		Dashboard:    handlers.NewDashboardHandler(s.Dashboard, log),
		Chat:         handlers.NewChatHandler(s.Chat, log),
		Avatar:       handlers.NewAvatarHandler(s.Talks, s.Voices, log),
		Document:     handlers.NewDocumentHandler(s.Document, log),
	}
}
