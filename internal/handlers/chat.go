package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/response"
	"github.com/freddy-ai/freddy-backend/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
	log         *logger.Logger
}

func NewChatHandler(chatService services.ChatService, baseLog *logger.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, log: baseLog.With("handler", "ChatHandler")}
}

func (h *ChatHandler) Respond(c *gin.Context) {
	var req services.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	resp, err := h.chatService.Respond(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, resp)
}

func (h *ChatHandler) Info(c *gin.Context) {
	response.RespondOK(c, h.chatService.Info())
}
