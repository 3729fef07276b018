package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/response"
	"github.com/freddy-ai/freddy-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	log         *logger.Logger
}

func NewAuthHandler(authService services.AuthService, baseLog *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: baseLog.With("handler", "AuthHandler")}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	result, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, result)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	result, err := h.authService.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	result, err := h.authService.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, bindError(err))
		return
	}
	if err := h.authService.Logout(c.Request.Context(), input.RefreshToken); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}
