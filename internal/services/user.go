package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/repos"
	"github.com/freddy-ai/freddy-backend/internal/requestdata"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

type ProfileInput struct {
	FirstName       *string  `json:"first_name"`
	LastName        *string  `json:"last_name"`
	ProfileImageURL *string  `json:"profile_image_url"`
	EnglishLevel    *string  `json:"english_level"`
	NativeLanguage  *string  `json:"native_language"`
	LearningGoals   []string `json:"learning_goals"`
}

// StatsPatch is a partial update; nil fields keep their current value.
type StatsPatch struct {
	TotalMessages      *int     `json:"totalMessages"`
	TotalConversations *int     `json:"totalConversations"`
	HoursSpent         *float64 `json:"hoursSpent"`
	StreakDays         *int     `json:"streakDays"`
	CurrentLevel       *string  `json:"currentLevel"`
	ImprovementScore   *int     `json:"improvementScore"`
}

type UserService interface {
	GetProfile(ctx context.Context) (*types.User, error)
	UpdateProfile(ctx context.Context, input ProfileInput) (*types.User, error)
	UpdatePreferences(ctx context.Context, prefs types.Preferences) (*types.User, error)
	UpdateStats(ctx context.Context, patch StatsPatch) (*types.User, error)
	UpdateSubscription(ctx context.Context, sub types.Subscription) (*types.User, error)
	DeleteAccount(ctx context.Context) error
}

type userService struct {
	db           *gorm.DB
	userRepo     repos.UserRepo
	tokenRepo    repos.UserTokenRepo
	convRepo     repos.ConversationRepo
	messageRepo  repos.MessageRepo
	progressRepo repos.LessonProgressRepo
	goalRepo     repos.LearningGoalRepo
	sessionRepo  repos.StudySessionRepo
	eventRepo    repos.AnalyticsEventRepo
	bucket       BucketService
	log          *logger.Logger
}

func NewUserService(
	db *gorm.DB,
	userRepo repos.UserRepo,
	tokenRepo repos.UserTokenRepo,
	convRepo repos.ConversationRepo,
	messageRepo repos.MessageRepo,
	progressRepo repos.LessonProgressRepo,
	goalRepo repos.LearningGoalRepo,
	sessionRepo repos.StudySessionRepo,
	eventRepo repos.AnalyticsEventRepo,
	bucket BucketService,
	baseLog *logger.Logger,
) UserService {
	return &userService{
		db:           db,
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		convRepo:     convRepo,
		messageRepo:  messageRepo,
		progressRepo: progressRepo,
		goalRepo:     goalRepo,
		sessionRepo:  sessionRepo,
		eventRepo:    eventRepo,
		bucket:       bucket,
		log:          baseLog.With("service", "UserService"),
	}
}

func (s *userService) caller(ctx context.Context) (uuid.UUID, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return uuid.Nil, apperr.ErrUnauthorized
	}
	return userID, nil
}

func (s *userService) GetProfile(ctx context.Context) (*types.User, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, input ProfileInput) (*types.User, error) {
	user, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.ProfileImageURL != nil {
		user.ProfileImageURL = *input.ProfileImageURL
	}
	if input.EnglishLevel != nil {
		user.EnglishLevel = *input.EnglishLevel
	}
	if input.NativeLanguage != nil {
		user.NativeLanguage = *input.NativeLanguage
	}
	if input.LearningGoals != nil {
		user.LearningGoals = datatypes.NewJSONSlice(input.LearningGoals)
	}
	now := time.Now().UTC()
	user.LastActiveAt = &now
	if err := s.userRepo.Update(ctx, nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdatePreferences(ctx context.Context, prefs types.Preferences) (*types.User, error) {
	user, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if prefs.Topics == nil {
		prefs.Topics = []string{}
	}
	user.Preferences = datatypes.NewJSONType(prefs)
	if err := s.userRepo.Update(ctx, nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateStats(ctx context.Context, patch StatsPatch) (*types.User, error) {
	user, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	stats := user.Stats.Data()
	if patch.TotalMessages != nil {
		stats.TotalMessages = *patch.TotalMessages
	}
	if patch.TotalConversations != nil {
		stats.TotalConversations = *patch.TotalConversations
	}
	if patch.HoursSpent != nil {
		stats.HoursSpent = *patch.HoursSpent
	}
	if patch.StreakDays != nil {
		stats.StreakDays = *patch.StreakDays
	}
	if patch.CurrentLevel != nil {
		stats.CurrentLevel = *patch.CurrentLevel
	}
	if patch.ImprovementScore != nil {
		stats.ImprovementScore = *patch.ImprovementScore
	}
	user.Stats = datatypes.NewJSONType(stats)
	if err := s.userRepo.Update(ctx, nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateSubscription(ctx context.Context, sub types.Subscription) (*types.User, error) {
	user, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	user.Subscription = datatypes.NewJSONType(sub)
	if err := s.userRepo.Update(ctx, nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes every row the user owns, children before parent, in
// one transaction. Admin-uploaded documents are organization data and stay.
func (s *userService) DeleteAccount(ctx context.Context) error {
	userID, err := s.caller(ctx)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.messageRepo.FullDeleteByUserID(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.convRepo.FullDeleteByUserID(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.progressRepo.FullDeleteByUserID(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.goalRepo.FullDeleteByUserID(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.sessionRepo.FullDeleteByUserID(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.eventRepo.FullDeleteByUserID(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.tokenRepo.FullDeleteByUserID(ctx, tx, userID); err != nil {
			return err
		}
		return s.userRepo.FullDeleteByID(ctx, tx, userID)
	})
	if err != nil {
		return err
	}

	if s.bucket != nil && user.AvatarKey != "" {
		if err := s.bucket.Delete(ctx, user.AvatarKey); err != nil {
			s.log.Warn("Failed to delete avatar object", "key", user.AvatarKey, "error", err)
		}
	}
	return nil
}
