package app

import (
	"gorm.io/gorm"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/repos"
)

type Repos struct {
	User           repos.UserRepo
	UserToken      repos.UserTokenRepo
	Conversation   repos.ConversationRepo
	Message        repos.MessageRepo
	Lesson         repos.LessonRepo
	LessonProgress repos.LessonProgressRepo
	LearningGoal   repos.LearningGoalRepo
	StudySession   repos.StudySessionRepo
	AnalyticsEvent repos.AnalyticsEventRepo
	Document       repos.DocumentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) *Repos {
	return &Repos{
		User:           repos.NewUserRepo(db, log),
		UserToken:      repos.NewUserTokenRepo(db, log),
		Conversation:   repos.NewConversationRepo(db, log),
		Message:        repos.NewMessageRepo(db, log),
		Lesson:         repos.NewLessonRepo(db, log),
		LessonProgress: repos.NewLessonProgressRepo(db, log),
		LearningGoal:   repos.NewLearningGoalRepo(db, log),
		StudySession:   repos.NewStudySessionRepo(db, log),
		AnalyticsEvent: repos.NewAnalyticsEventRepo(db, log),
		Document:       repos.NewDocumentRepo(db, log),
	}
}
