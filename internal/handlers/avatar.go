package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/response"
	"github.com/freddy-ai/freddy-backend/internal/services"
)

// AvatarHandler proxies the talking-avatar API.
type AvatarHandler struct {
	talks  services.TalkClient
	voices services.VoiceCache
	log    *logger.Logger
}

func NewAvatarHandler(talks services.TalkClient, voices services.VoiceCache, baseLog *logger.Logger) *AvatarHandler {
	return &AvatarHandler{talks: talks, voices: voices, log: baseLog.With("handler", "AvatarHandler")}
}

func (h *AvatarHandler) CreateTalk(c *gin.Context) {
	var req services.CreateTalkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	talk, err := h.talks.CreateTalk(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, talk)
}

func (h *AvatarHandler) GetTalk(c *gin.Context) {
	talk, err := h.talks.GetTalk(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, talk)
}

// WaitTalk blocks until the render finishes or the poll budget runs out.
func (h *AvatarHandler) WaitTalk(c *gin.Context) {
	talk, err := h.talks.WaitForTalk(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, talk)
}

func (h *AvatarHandler) ListTalks(c *gin.Context) {
	list, err := h.talks.ListTalks(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, list)
}

func (h *AvatarHandler) DeleteTalk(c *gin.Context) {
	if err := h.talks.DeleteTalk(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (h *AvatarHandler) ListVoices(c *gin.Context) {
	voices, err := h.voices.ListVoices(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, voices)
}
