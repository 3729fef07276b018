package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/response"
	"github.com/freddy-ai/freddy-backend/internal/services"
)

type SessionHandler struct {
	sessionService services.StudySessionService
	log            *logger.Logger
}

func NewSessionHandler(sessionService services.StudySessionService, baseLog *logger.Logger) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, log: baseLog.With("handler", "SessionHandler")}
}

func (h *SessionHandler) Start(c *gin.Context) {
	session, err := h.sessionService.Start(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, session)
}

func (h *SessionHandler) End(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var input services.EndSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	session, err := h.sessionService.End(c.Request.Context(), id, input)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, session)
}

func (h *SessionHandler) Engagement(c *gin.Context) {
	metrics, err := h.sessionService.GetEngagementMetrics(c.Request.Context(), c.Query("timeframe"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, metrics)
}
