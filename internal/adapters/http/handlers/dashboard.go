package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelier-studio/atelier-service/internal/adapters/http/dto"
	"github.com/atelier-studio/atelier-service/internal/adapters/http/middleware"
	"github.com/atelier-studio/atelier-service/internal/app"
)

// DashboardHandler serves the home and dashboard screens.
type DashboardHandler struct {
	service *app.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service *app.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Home handles GET /api/v1/dashboard/home
//
// @Summary Recent orders and quick stats
// @Tags dashboard
// @Produce json
// @Security SessionToken
// @Success 200 {object} dto.HomeResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/dashboard/home [get]
func (h *DashboardHandler) Home(c *gin.Context) {
	home, err := h.service.Home(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHomeResponse(home))
}

// Summary handles GET /api/v1/dashboard/summary
//
// @Summary Recent quotes and today's agenda
// @Tags dashboard
// @Produce json
// @Security SessionToken
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(summary))
}

// RegisterDashboardRoutes registers dashboard routes on the given router group.
func (h *DashboardHandler) RegisterDashboardRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	dashboard.GET("/home", h.Home)
	dashboard.GET("/summary", h.Summary)
}
