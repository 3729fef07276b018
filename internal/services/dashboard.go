package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/insights"
	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/repos"
	"github.com/freddy-ai/freddy-backend/internal/requestdata"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

type LessonSummary struct {
	Completed         int `json:"completed"`
	Total             int `json:"total"`
	AverageScore      int `json:"averageScore"`
	TotalStudyMinutes int `json:"totalStudyMinutes"`
}

type ConversationSummaryBlock struct {
	Total         int `json:"total"`
	TotalMessages int `json:"totalMessages"`
}

type GoalSummary struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
}

type StudyTimeBlock struct {
	ThisWeekMinutes  int `json:"thisWeekMinutes"`
	ThisMonthMinutes int `json:"thisMonthMinutes"`
}

type Dashboard struct {
	Stats              types.UserStats          `json:"stats"`
	Lessons            LessonSummary            `json:"lessons"`
	Conversations      ConversationSummaryBlock `json:"conversations"`
	Goals              GoalSummary              `json:"goals"`
	CategoryStats      []insights.CategoryScore `json:"categoryStats"`
	WeeklyProgress     []insights.WeekBucket    `json:"weeklyProgress"`
	RecentAchievements []insights.Achievement   `json:"recentAchievements"`
	StreakDays         int                      `json:"streakDays"`
	StudyTime          StudyTimeBlock           `json:"studyTime"`
}

type LessonAnalytics struct {
	LearningVelocity float64                   `json:"learningVelocity"`
	StrongestAreas   []insights.CategoryScore  `json:"strongestAreas"`
	ImprovementAreas []insights.CategoryScore  `json:"improvementAreas"`
	StudyPattern     insights.StudyPattern     `json:"studyPattern"`
	Recommendations  []insights.Recommendation `json:"recommendations"`
	Achievements     []insights.Achievement    `json:"achievements"`
	Insights         []string                  `json:"insights"`
}

type DashboardService interface {
	GetDashboard(ctx context.Context) (*Dashboard, error)
	GetLessonAnalytics(ctx context.Context) (*LessonAnalytics, error)
}

type dashboardService struct {
	userRepo     repos.UserRepo
	convRepo     repos.ConversationRepo
	progressRepo repos.LessonProgressRepo
	lessonRepo   repos.LessonRepo
	goalRepo     repos.LearningGoalRepo
	sessionRepo  repos.StudySessionRepo
	log          *logger.Logger
}

func NewDashboardService(
	userRepo repos.UserRepo,
	convRepo repos.ConversationRepo,
	progressRepo repos.LessonProgressRepo,
	lessonRepo repos.LessonRepo,
	goalRepo repos.LearningGoalRepo,
	sessionRepo repos.StudySessionRepo,
	baseLog *logger.Logger,
) DashboardService {
	return &dashboardService{
		userRepo:     userRepo,
		convRepo:     convRepo,
		progressRepo: progressRepo,
		lessonRepo:   lessonRepo,
		goalRepo:     goalRepo,
		sessionRepo:  sessionRepo,
		log:          baseLog.With("service", "DashboardService"),
	}
}

// GetDashboard fans the five reads out concurrently and folds the results
// into one response.
func (s *dashboardService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	now := time.Now().UTC()

	var (
		user     *types.User
		progress []*types.LessonProgress
		lessons  []*types.Lesson
		convs    []*types.Conversation
		goals    []*types.LearningGoal
		sessions []*types.StudySession
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.userRepo.GetByID(gctx, nil, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}
		user = u
		return nil
	})
	g.Go(func() error {
		rows, err := s.progressRepo.ListByUserID(gctx, nil, userID)
		if err != nil {
			return err
		}
		progress = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.lessonRepo.ListPublished(gctx, nil)
		if err != nil {
			return err
		}
		lessons = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.convRepo.ListByUserID(gctx, nil, userID, true, 0)
		if err != nil {
			return err
		}
		convs = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.goalRepo.ListByUserID(gctx, nil, userID)
		if err != nil {
			return err
		}
		goals = rows
		return nil
	})
	g.Go(func() error {
		// A year of sessions: the study-time blocks narrow to their own
		// windows, while the streak walk can reach back up to 365 days.
		rows, err := s.sessionRepo.ListByUserIDSince(gctx, nil, userID, now.AddDate(-1, 0, 0))
		if err != nil {
			return err
		}
		sessions = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lessonsByID := make(map[uuid.UUID]*types.Lesson, len(lessons))
	for _, lesson := range lessons {
		lessonsByID[lesson.ID] = lesson
	}

	dashboard := &Dashboard{
		Stats:          user.Stats.Data(),
		CategoryStats:  insights.StrongestAreas(progress, lessonsByID),
		WeeklyProgress: insights.WeeklyProgress(progress, now, 4),
	}

	var completed, scoreTotal, scoreCount int
	for _, p := range progress {
		dashboard.Lessons.TotalStudyMinutes += p.TimeSpentSeconds / 60
		if p.Status != types.ProgressCompleted {
			continue
		}
		completed++
		if p.Score != nil {
			scoreTotal += *p.Score
			scoreCount++
		}
	}
	dashboard.Lessons.Completed = completed
	dashboard.Lessons.Total = len(lessons)
	if scoreCount > 0 {
		dashboard.Lessons.AverageScore = int(float64(scoreTotal)/float64(scoreCount) + 0.5)
	}

	dashboard.Conversations.Total = len(convs)
	for _, conv := range convs {
		dashboard.Conversations.TotalMessages += conv.MessageCount
	}

	dashboard.Goals.Total = len(goals)
	for _, goal := range goals {
		if goal.Completed {
			dashboard.Goals.Completed++
		} else if goal.Progress > 0 {
			dashboard.Goals.InProgress++
		}
	}

	// A day only counts toward the streak when a study session started on
	// it; lesson completions alone do not keep a streak alive.
	sessionDays := make([]time.Time, 0, len(sessions))
	for _, session := range sessions {
		sessionDays = append(sessionDays, session.StartTime)
	}
	dashboard.StreakDays = insights.StreakDays(sessionDays, now)
	dashboard.RecentAchievements = insights.RecentAchievements(progress)
	dashboard.StudyTime = StudyTimeBlock{
		ThisWeekMinutes:  insights.StudyTimeMinutes(sessions, now.AddDate(0, 0, -7)),
		ThisMonthMinutes: insights.StudyTimeMinutes(sessions, now.AddDate(0, -1, 0)),
	}
	return dashboard, nil
}

func (s *dashboardService) GetLessonAnalytics(ctx context.Context) (*LessonAnalytics, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}

	now := time.Now().UTC()
	var (
		progress []*types.LessonProgress
		lessons  []*types.Lesson
		sessions []*types.StudySession
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.progressRepo.ListByUserID(gctx, nil, userID)
		if err != nil {
			return err
		}
		progress = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.lessonRepo.ListPublished(gctx, nil)
		if err != nil {
			return err
		}
		lessons = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.sessionRepo.ListByUserIDSince(gctx, nil, userID, now.AddDate(-1, 0, 0))
		if err != nil {
			return err
		}
		sessions = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lessonsByID := make(map[uuid.UUID]*types.Lesson, len(lessons))
	for _, lesson := range lessons {
		lessonsByID[lesson.ID] = lesson
	}
	completed := 0
	for _, p := range progress {
		if p.Status == types.ProgressCompleted {
			completed++
		}
	}
	sessionDays := make([]time.Time, 0, len(sessions))
	for _, session := range sessions {
		sessionDays = append(sessionDays, session.StartTime)
	}

	return &LessonAnalytics{
		LearningVelocity: insights.LearningVelocity(progress),
		StrongestAreas:   insights.StrongestAreas(progress, lessonsByID),
		ImprovementAreas: insights.ImprovementAreas(progress, lessonsByID),
		StudyPattern:     insights.StudyPatterns(progress),
		Recommendations:  insights.Recommendations(progress, lessons),
		Achievements:     insights.RecentAchievements(progress),
		Insights: insights.MotivationalInsights(
			completed,
			insights.StreakDays(sessionDays, now),
		),
	}, nil
}
