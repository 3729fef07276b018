package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/response"
	"github.com/freddy-ai/freddy-backend/internal/services"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

type UserHandler struct {
	userService services.UserService
	log         *logger.Logger
}

func NewUserHandler(userService services.UserService, baseLog *logger.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: baseLog.With("handler", "UserHandler")}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	user, err := h.userService.UpdateProfile(c.Request.Context(), input)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, user)
}

func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	var prefs types.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	user, err := h.userService.UpdatePreferences(c.Request.Context(), prefs)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, user)
}

func (h *UserHandler) UpdateStats(c *gin.Context) {
	var patch services.StatsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	user, err := h.userService.UpdateStats(c.Request.Context(), patch)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, user)
}

func (h *UserHandler) UpdateSubscription(c *gin.Context) {
	var sub types.Subscription
	if err := c.ShouldBindJSON(&sub); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	user, err := h.userService.UpdateSubscription(c.Request.Context(), sub)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, user)
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.userService.DeleteAccount(c.Request.Context()); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}
