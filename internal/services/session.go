package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/insights"
	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/repos"
	"github.com/freddy-ai/freddy-backend/internal/requestdata"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

type EndSessionInput struct {
	Activities         []string                  `json:"activities"`
	MessagesCount      int                       `json:"messages_count"`
	TopicsDiscussed    []string                  `json:"topics_discussed"`
	GoalsWorkedOn      []string                  `json:"goals_worked_on"`
	PerformanceMetrics *types.PerformanceMetrics `json:"performance_metrics"`
}

type EngagementMetrics struct {
	Timeframe             string         `json:"timeframe"`
	TotalSessions         int            `json:"totalSessions"`
	TotalMinutes          int            `json:"totalMinutes"`
	AverageSessionMinutes int            `json:"averageSessionMinutes"`
	LessonsCompleted      int            `json:"lessonsCompleted"`
	ConversationsStarted  int            `json:"conversationsStarted"`
	TotalMessages         int            `json:"totalMessages"`
	EngagementScore       int            `json:"engagementScore"`
	DailyActivity         map[string]int `json:"dailyActivity"`
}

type StudySessionService interface {
	Start(ctx context.Context) (*types.StudySession, error)
	End(ctx context.Context, id uuid.UUID, input EndSessionInput) (*types.StudySession, error)
	GetEngagementMetrics(ctx context.Context, timeframe string) (*EngagementMetrics, error)
}

type studySessionService struct {
	db           *gorm.DB
	sessionRepo  repos.StudySessionRepo
	convRepo     repos.ConversationRepo
	progressRepo repos.LessonProgressRepo
	userRepo     repos.UserRepo
	log          *logger.Logger
}

func NewStudySessionService(db *gorm.DB, sessionRepo repos.StudySessionRepo, convRepo repos.ConversationRepo, progressRepo repos.LessonProgressRepo, userRepo repos.UserRepo, baseLog *logger.Logger) StudySessionService {
	return &studySessionService{
		db:           db,
		sessionRepo:  sessionRepo,
		convRepo:     convRepo,
		progressRepo: progressRepo,
		userRepo:     userRepo,
		log:          baseLog.With("service", "StudySessionService"),
	}
}

func (s *studySessionService) Start(ctx context.Context) (*types.StudySession, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	session := &types.StudySession{
		ID:              uuid.New(),
		UserID:          userID,
		StartTime:       time.Now().UTC(),
		Activities:      datatypes.NewJSONSlice([]string{}),
		TopicsDiscussed: datatypes.NewJSONSlice([]string{}),
		GoalsWorkedOn:   datatypes.NewJSONSlice([]string{}),
	}
	if err := s.sessionRepo.Create(ctx, nil, session); err != nil {
		return nil, err
	}
	return session, nil
}

// End finalizes a session exactly once and folds the elapsed time into the
// user's hoursSpent counter inside the same transaction.
func (s *studySessionService) End(ctx context.Context, id uuid.UUID, input EndSessionInput) (*types.StudySession, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	session, err := s.sessionRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, apperr.ErrAccessDenied
	}
	if session.Ended() {
		return nil, fmt.Errorf("%w: session already ended", apperr.ErrInvalidState)
	}

	now := time.Now().UTC()
	durationMs := now.Sub(session.StartTime).Milliseconds()
	session.EndTime = &now
	session.DurationMs = &durationMs
	session.MessagesCount = input.MessagesCount
	if input.Activities != nil {
		session.Activities = datatypes.NewJSONSlice(input.Activities)
	}
	if input.TopicsDiscussed != nil {
		session.TopicsDiscussed = datatypes.NewJSONSlice(input.TopicsDiscussed)
	}
	if input.GoalsWorkedOn != nil {
		session.GoalsWorkedOn = datatypes.NewJSONSlice(input.GoalsWorkedOn)
	}
	if input.PerformanceMetrics != nil {
		session.PerformanceMetrics = datatypes.NewJSONType(*input.PerformanceMetrics)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.sessionRepo.Update(ctx, tx, session); err != nil {
			return err
		}
		user, err := s.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return err
		}
		stats := user.Stats.Data()
		stats.HoursSpent += float64(durationMs) / float64(time.Hour.Milliseconds())
		user.Stats = datatypes.NewJSONType(stats)
		return s.userRepo.Update(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func timeframeStart(timeframe string, now time.Time) (time.Time, error) {
	switch timeframe {
	case "", "week":
		return now.AddDate(0, 0, -7), nil
	case "month":
		return now.AddDate(0, -1, 0), nil
	case "quarter":
		return now.AddDate(0, -3, 0), nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown timeframe %q", apperr.ErrValidation, timeframe)
}

func (s *studySessionService) GetEngagementMetrics(ctx context.Context, timeframe string) (*EngagementMetrics, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	now := time.Now().UTC()
	since, err := timeframeStart(timeframe, now)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByUserIDSince(ctx, nil, userID, since)
	if err != nil {
		return nil, err
	}
	allConvs, err := s.convRepo.ListByUserID(ctx, nil, userID, true, 0)
	if err != nil {
		return nil, err
	}
	conversations := make([]*types.Conversation, 0, len(allConvs))
	for _, conv := range allConvs {
		if !conv.CreatedAt.Before(since) {
			conversations = append(conversations, conv)
		}
	}
	progress, err := s.progressRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	metrics := &EngagementMetrics{
		Timeframe:            timeframe,
		TotalSessions:        len(sessions),
		ConversationsStarted: len(conversations),
		EngagementScore:      insights.EngagementScore(sessions, conversations, progress),
		DailyActivity:        map[string]int{},
	}
	if metrics.Timeframe == "" {
		metrics.Timeframe = "week"
	}

	var totalMs int64
	for _, session := range sessions {
		metrics.DailyActivity[session.StartTime.UTC().Format("2006-01-02")]++
		if session.DurationMs != nil {
			totalMs += *session.DurationMs
		}
	}
	metrics.TotalMinutes = int(totalMs / time.Minute.Milliseconds())
	if len(sessions) > 0 {
		metrics.AverageSessionMinutes = int(totalMs / int64(len(sessions)) / time.Minute.Milliseconds())
	}
	for _, conv := range conversations {
		metrics.TotalMessages += conv.MessageCount
	}
	for _, p := range progress {
		if p.Status == types.ProgressCompleted {
			metrics.LessonsCompleted++
		}
	}
	return metrics, nil
}
