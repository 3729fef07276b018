package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/response"
	"github.com/freddy-ai/freddy-backend/internal/services"
)

type MessageHandler struct {
	messageService services.MessageService
	log            *logger.Logger
}

func NewMessageHandler(messageService services.MessageService, baseLog *logger.Logger) *MessageHandler {
	return &MessageHandler{messageService: messageService, log: baseLog.With("handler", "MessageHandler")}
}

func (h *MessageHandler) Send(c *gin.Context) {
	var input services.SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	msg, err := h.messageService.Send(c.Request.Context(), input)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, msg)
}

func (h *MessageHandler) ListByConversation(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	msgs, err := h.messageService.ListByConversation(c.Request.Context(), id, queryInt(c, "limit", 0))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, msgs)
}

func (h *MessageHandler) Recent(c *gin.Context) {
	msgs, err := h.messageService.Recent(c.Request.Context(), queryInt(c, "limit", 20))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, msgs)
}

func (h *MessageHandler) UpdateMetadata(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	msg, err := h.messageService.UpdateMetadata(c.Request.Context(), id, patch)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, msg)
}

func (h *MessageHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.messageService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}
