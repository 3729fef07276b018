package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/response"
	"github.com/freddy-ai/freddy-backend/internal/services"
)

type LessonHandler struct {
	lessonService services.LessonService
	log           *logger.Logger
}

func NewLessonHandler(lessonService services.LessonService, baseLog *logger.Logger) *LessonHandler {
	return &LessonHandler{lessonService: lessonService, log: baseLog.With("handler", "LessonHandler")}
}

func (h *LessonHandler) List(c *gin.Context) {
	lessons, err := h.lessonService.ListPublished(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, lessons)
}

func (h *LessonHandler) RecordProgress(c *gin.Context) {
	var input services.ProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	progress, err := h.lessonService.RecordProgress(c.Request.Context(), input)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, progress)
}

func (h *LessonHandler) ListProgress(c *gin.Context) {
	progress, err := h.lessonService.ListProgress(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, progress)
}
