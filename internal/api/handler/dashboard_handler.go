package handler

import (
	"github.com/gin-gonic/gin"

	"lab-scheduler/internal/service"
	"lab-scheduler/pkg/response"
)

// DashboardHandler 管理端首页统计
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Summary GET /api/v1/dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	resp, err := h.dashboardSvc.Summary(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, resp)
}
