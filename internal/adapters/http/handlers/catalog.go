package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelier-studio/atelier-service/internal/adapters/http/dto"
	"github.com/atelier-studio/atelier-service/internal/domain"
)

// CatalogHandler serves the priced options of the quote builder.
type CatalogHandler struct {
	catalog *domain.Catalog
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog *domain.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GetCatalog handles GET /api/v1/catalog
//
// @Summary Full catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.CatalogResponse
// @Router /api/v1/catalog [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToCatalogResponse(h.catalog))
}

// ListAgeCategories handles GET /api/v1/catalog/age-categories
//
// @Summary Age categories and base prices
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.AgeCategoryResponse
// @Router /api/v1/catalog/age-categories [get]
func (h *CatalogHandler) ListAgeCategories(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToAgeCategories(h.catalog.AgeCategories()))
}

// ListServiceTypes handles GET /api/v1/catalog/service-types
//
// @Summary Sale or rental options
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.ServiceTypeResponse
// @Router /api/v1/catalog/service-types [get]
func (h *CatalogHandler) ListServiceTypes(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ServiceTypes())
}

// ListItems handles GET /api/v1/catalog/:category
// An unknown category yields an empty list.
//
// @Summary Items of a category
// @Tags catalog
// @Produce json
// @Param category path string true "Category code (finishing, fabric)"
// @Success 200 {array} dto.CatalogItemResponse
// @Router /api/v1/catalog/{category} [get]
func (h *CatalogHandler) ListItems(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToCatalogItems(h.catalog.ListItems(c.Param("category"))))
}

// RegisterCatalogRoutes registers catalog routes on the given router group.
func (h *CatalogHandler) RegisterCatalogRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/catalog")
	catalog.GET("", h.GetCatalog)
	catalog.GET("/age-categories", h.ListAgeCategories)
	catalog.GET("/service-types", h.ListServiceTypes)
	catalog.GET("/:category", h.ListItems)
}
