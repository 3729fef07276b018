package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/freddy-ai/freddy-backend/internal/handlers"
	"github.com/freddy-ai/freddy-backend/internal/middleware"
)

type RouterConfig struct {
	AllowOrigins   string
	AuthMiddleware *middleware.AuthMiddleware
	Healthcheck    *handlers.HealthcheckHandler
	Auth           *handlers.AuthHandler
	User           *handlers.UserHandler
	Conversation   *handlers.ConversationHandler
	Message        *handlers.MessageHandler
	Goal           *handlers.GoalHandler
	Lesson         *handlers.LessonHandler
	Session        *handlers.SessionHandler
	Event          *handlers.EventHandler
	Dashboard      *handlers.DashboardHandler
	Chat           *handlers.ChatHandler
	Avatar         *handlers.AvatarHandler
	Document       *handlers.DocumentHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", cfg.Healthcheck.Healthcheck)
	router.POST("/api/auth/register", cfg.Auth.Register)
	router.POST("/api/auth/login", cfg.Auth.Login)
	router.POST("/api/auth/refresh", cfg.Auth.Refresh)
	router.POST("/api/auth/logout", cfg.Auth.Logout)

	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.GET("/users/me", cfg.User.GetProfile)
		protected.PATCH("/users/me", cfg.User.UpdateProfile)
		protected.PUT("/users/me/preferences", cfg.User.UpdatePreferences)
		protected.PATCH("/users/me/stats", cfg.User.UpdateStats)
		protected.PUT("/users/me/subscription", cfg.User.UpdateSubscription)
		protected.DELETE("/users/me", cfg.User.DeleteAccount)

		protected.POST("/conversations", cfg.Conversation.Create)
		protected.GET("/conversations", cfg.Conversation.List)
		protected.GET("/conversations/summaries", cfg.Conversation.Summaries)
		protected.GET("/conversations/stats", cfg.Conversation.Stats)
		protected.GET("/conversations/:id", cfg.Conversation.Get)
		protected.PATCH("/conversations/:id", cfg.Conversation.Update)
		protected.PUT("/conversations/:id/archive", cfg.Conversation.Archive)
		protected.DELETE("/conversations/:id", cfg.Conversation.Delete)
		protected.GET("/conversations/:id/messages", cfg.Message.ListByConversation)

		protected.POST("/messages", cfg.Message.Send)
		protected.GET("/messages/recent", cfg.Message.Recent)
		protected.PATCH("/messages/:id/metadata", cfg.Message.UpdateMetadata)
		protected.DELETE("/messages/:id", cfg.Message.Delete)

		protected.POST("/goals", cfg.Goal.Create)
		protected.GET("/goals", cfg.Goal.List)
		protected.PATCH("/goals/:id", cfg.Goal.Update)
		protected.DELETE("/goals/:id", cfg.Goal.Delete)

		protected.GET("/lessons", cfg.Lesson.List)
		protected.GET("/lessons/progress", cfg.Lesson.ListProgress)
		protected.POST("/lessons/progress", cfg.Lesson.RecordProgress)

		protected.POST("/sessions", cfg.Session.Start)
		protected.POST("/sessions/:id/end", cfg.Session.End)
		protected.GET("/sessions/engagement", cfg.Session.Engagement)

		protected.POST("/events", cfg.Event.Record)
		protected.GET("/events/analytics", cfg.Event.Analytics)

		protected.GET("/dashboard", cfg.Dashboard.Dashboard)
		protected.GET("/dashboard/lessons", cfg.Dashboard.LessonAnalytics)

		protected.POST("/chat", cfg.Chat.Respond)
		protected.GET("/chat", cfg.Chat.Info)

		protected.POST("/avatar/talks", cfg.Avatar.CreateTalk)
		protected.GET("/avatar/talks", cfg.Avatar.ListTalks)
		protected.GET("/avatar/talks/:id", cfg.Avatar.GetTalk)
		protected.GET("/avatar/talks/:id/wait", cfg.Avatar.WaitTalk)
		protected.DELETE("/avatar/talks/:id", cfg.Avatar.DeleteTalk)
		protected.GET("/avatar/voices", cfg.Avatar.ListVoices)
	}

	admin := router.Group("/api/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
	{
		admin.POST("/documents", cfg.Document.Upload)
		admin.GET("/documents", cfg.Document.List)
		admin.DELETE("/documents/:id", cfg.Document.Delete)
	}

	return router
}
