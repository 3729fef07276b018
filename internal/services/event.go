package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/repos"
	"github.com/freddy-ai/freddy-backend/internal/requestdata"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

type EventInput struct {
	Event      string                 `json:"event"`
	Properties map[string]interface{} `json:"properties"`
	SessionID  *uuid.UUID             `json:"session_id"`
}

type ActionCount struct {
	Event string `json:"event"`
	Count int    `json:"count"`
}

type UserAnalytics struct {
	TotalEvents       int            `json:"totalEvents"`
	UniqueSessions    int            `json:"uniqueSessions"`
	EventBreakdown    map[string]int `json:"eventBreakdown"`
	CategoryBreakdown map[string]int `json:"categoryBreakdown"`
	DailyActivity     map[string]int `json:"dailyActivity"`
	TopActions        []ActionCount  `json:"topActions"`
}

type EventService interface {
	Record(ctx context.Context, input EventInput) (*types.AnalyticsEvent, error)
	GetUserAnalytics(ctx context.Context, start, end *time.Time) (*UserAnalytics, error)
}

type eventService struct {
	eventRepo repos.AnalyticsEventRepo
	log       *logger.Logger
}

func NewEventService(eventRepo repos.AnalyticsEventRepo, baseLog *logger.Logger) EventService {
	return &eventService{eventRepo: eventRepo, log: baseLog.With("service", "EventService")}
}

// Record appends one event with a server-assigned timestamp. Event names are
// free-form; only an empty name is rejected. Event rows are never updated or
// deleted outside account erasure.
func (s *eventService) Record(ctx context.Context, input EventInput) (*types.AnalyticsEvent, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if input.Event == "" {
		return nil, fmt.Errorf("%w: event name is required", apperr.ErrValidation)
	}
	event := &types.AnalyticsEvent{
		ID:         uuid.New(),
		UserID:     userID,
		Event:      input.Event,
		Properties: datatypes.JSONMap(input.Properties),
		SessionID:  input.SessionID,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.eventRepo.Create(ctx, nil, []*types.AnalyticsEvent{event}); err != nil {
		return nil, err
	}
	return event, nil
}

// eventCategory is the segment before the first dot, or "general" for flat
// names.
func eventCategory(event string) string {
	if i := strings.IndexByte(event, '.'); i > 0 {
		return event[:i]
	}
	return "general"
}

func (s *eventService) GetUserAnalytics(ctx context.Context, start, end *time.Time) (*UserAnalytics, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	now := time.Now().UTC()
	rangeEnd := now
	if end != nil {
		rangeEnd = end.UTC()
	}
	rangeStart := rangeEnd.AddDate(0, 0, -30)
	if start != nil {
		rangeStart = start.UTC()
	}
	if rangeEnd.Before(rangeStart) {
		return nil, fmt.Errorf("%w: end precedes start", apperr.ErrValidation)
	}

	events, err := s.eventRepo.ListByUserIDBetween(ctx, nil, userID, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	analytics := &UserAnalytics{
		TotalEvents:       len(events),
		EventBreakdown:    map[string]int{},
		CategoryBreakdown: map[string]int{},
		DailyActivity:     map[string]int{},
		TopActions:        []ActionCount{},
	}
	sessions := map[uuid.UUID]struct{}{}
	for _, event := range events {
		analytics.EventBreakdown[event.Event]++
		analytics.CategoryBreakdown[eventCategory(event.Event)]++
		analytics.DailyActivity[event.Timestamp.UTC().Format("2006-01-02")]++
		if event.SessionID != nil {
			sessions[*event.SessionID] = struct{}{}
		}
	}
	analytics.UniqueSessions = len(sessions)

	for event, count := range analytics.EventBreakdown {
		analytics.TopActions = append(analytics.TopActions, ActionCount{Event: event, Count: count})
	}
	sort.Slice(analytics.TopActions, func(i, j int) bool {
		if analytics.TopActions[i].Count == analytics.TopActions[j].Count {
			return analytics.TopActions[i].Event < analytics.TopActions[j].Event
		}
		return analytics.TopActions[i].Count > analytics.TopActions[j].Count
	})
	if len(analytics.TopActions) > 5 {
		analytics.TopActions = analytics.TopActions[:5]
	}
	return analytics, nil
}
