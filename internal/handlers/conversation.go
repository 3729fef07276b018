package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/response"
	"github.com/freddy-ai/freddy-backend/internal/services"
)

type ConversationHandler struct {
	convService services.ConversationService
	log         *logger.Logger
}

func NewConversationHandler(convService services.ConversationService, baseLog *logger.Logger) *ConversationHandler {
	return &ConversationHandler{convService: convService, log: baseLog.With("handler", "ConversationHandler")}
}

func (h *ConversationHandler) Create(c *gin.Context) {
	var input services.CreateConversationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	conv, err := h.convService.Create(c.Request.Context(), input)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, conv)
}

func (h *ConversationHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	conv, err := h.convService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, conv)
}

func (h *ConversationHandler) List(c *gin.Context) {
	convs, err := h.convService.List(c.Request.Context(),
		queryBool(c, "include_archived", false), queryInt(c, "limit", 0))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, convs)
}

func (h *ConversationHandler) Summaries(c *gin.Context) {
	summaries, err := h.convService.Summaries(c.Request.Context(),
		queryBool(c, "include_archived", false), queryInt(c, "limit", 20))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, summaries)
}

func (h *ConversationHandler) Update(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var input services.UpdateConversationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	conv, err := h.convService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, conv)
}

func (h *ConversationHandler) Archive(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var input struct {
		Archived bool `json:"archived"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	conv, err := h.convService.SetArchived(c.Request.Context(), id, input.Archived)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, conv)
}

func (h *ConversationHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.convService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (h *ConversationHandler) Stats(c *gin.Context) {
	stats, err := h.convService.Stats(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, stats)
}
