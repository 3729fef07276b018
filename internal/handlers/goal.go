package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/response"
	"github.com/freddy-ai/freddy-backend/internal/services"
)

type GoalHandler struct {
	goalService services.GoalService
	log         *logger.Logger
}

func NewGoalHandler(goalService services.GoalService, baseLog *logger.Logger) *GoalHandler {
	return &GoalHandler{goalService: goalService, log: baseLog.With("handler", "GoalHandler")}
}

func (h *GoalHandler) Create(c *gin.Context) {
	var input services.CreateGoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	goal, err := h.goalService.Create(c.Request.Context(), input)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, goal)
}

func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.goalService.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, goals)
}

func (h *GoalHandler) Update(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var input services.UpdateGoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	goal, err := h.goalService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, goal)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.goalService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}
