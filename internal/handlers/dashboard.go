package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/response"
	"github.com/freddy-ai/freddy-backend/internal/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
	log              *logger.Logger
}

func NewDashboardHandler(dashboardService services.DashboardService, baseLog *logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, log: baseLog.With("handler", "DashboardHandler")}
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, dashboard)
}

func (h *DashboardHandler) LessonAnalytics(c *gin.Context) {
	analytics, err := h.dashboardService.GetLessonAnalytics(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, analytics)
}
