package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/response"
	"github.com/freddy-ai/freddy-backend/internal/services"
)

type EventHandler struct {
	eventService services.EventService
	log          *logger.Logger
}

func NewEventHandler(eventService services.EventService, baseLog *logger.Logger) *EventHandler {
	return &EventHandler{eventService: eventService, log: baseLog.With("handler", "EventHandler")}
}

func (h *EventHandler) Record(c *gin.Context) {
	var input services.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	event, err := h.eventService.Record(c.Request.Context(), input)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, event)
}

func (h *EventHandler) Analytics(c *gin.Context) {
	var start, end *time.Time
	if raw := c.Query("start"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			start = &t
		}
	}
	if raw := c.Query("end"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			end = &t
		}
	}
	analytics, err := h.eventService.GetUserAnalytics(c.Request.Context(), start, end)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, analytics)
}
