package handler

import (
	"net/http"

	"github.com/centime/centime-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// DashboardHandler handles the month overview endpoint
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard?year=&month=
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	period, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err, "Invalid period")
	}

	dashboard, err := h.dashboardService.GetDashboard(period)
	if err != nil {
		return respondError(c, err, "Failed to build dashboard")
	}
	return c.JSON(http.StatusOK, dashboard)
}
