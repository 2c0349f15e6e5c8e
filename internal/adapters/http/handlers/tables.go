package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelier-studio/atelier-service/internal/adapters/http/dto"
	"github.com/atelier-studio/atelier-service/internal/app"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

// TableHandler proxies rows of the external table store.
type TableHandler struct {
	service *app.TableService
}

// NewTableHandler creates a new table handler.
func NewTableHandler(service *app.TableService) *TableHandler {
	return &TableHandler{service: service}
}

// ListRows handles GET /api/v1/tables/:tableId/rows
//
// @Summary List table rows
// @Tags tables
// @Produce json
// @Security SessionToken
// @Param tableId path string true "Table ID"
// @Success 200 {object} dto.RowsResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/tables/{tableId}/rows [get]
func (h *TableHandler) ListRows(c *gin.Context) {
	rows, err := h.service.ListRows(c.Request.Context(), c.Param("tableId"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRowsResponse(rows))
}

// CreateRow handles POST /api/v1/tables/:tableId/rows
// The body is a JSON object keyed by field name.
//
// @Summary Append a table row
// @Tags tables
// @Accept json
// @Produce json
// @Security SessionToken
// @Param tableId path string true "Table ID"
// @Param body body object true "Row"
// @Success 201 {object} object
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/tables/{tableId}/rows [post]
func (h *TableHandler) CreateRow(c *gin.Context) {
	var row ports.TableRow
	if err := c.ShouldBindJSON(&row); err != nil {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "row must be a JSON object")
		return
	}

	created, err := h.service.CreateRow(c.Request.Context(), c.Param("tableId"), row)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// RegisterTableRoutes registers table routes on the given router group.
func (h *TableHandler) RegisterTableRoutes(rg *gin.RouterGroup) {
	tables := rg.Group("/tables/:tableId")
	tables.GET("/rows", h.ListRows)
	tables.POST("/rows", h.CreateRow)
}
