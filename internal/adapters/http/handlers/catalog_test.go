package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-studio/atelier-service/internal/adapters/http/dto"
	"github.com/atelier-studio/atelier-service/internal/domain"
)

func catalogRouter() *gin.Engine {
	engine := gin.New()
	NewCatalogHandler(domain.DefaultCatalog()).RegisterCatalogRoutes(engine.Group("/api/v1"))

	return engine
}

func TestCatalogHandler_GetCatalog(t *testing.T) {
	w := serve(t, catalogRouter(), http.MethodGet, "/api/v1/catalog", "")

	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.CatalogResponse](t, w)
	require.Len(t, resp.Categories, 2)
	assert.Equal(t, "Acabamentos", resp.Categories[0].Label)
	assert.Equal(t, "Tecidos", resp.Categories[1].Label)
	assert.Len(t, resp.AgeCategories, 3)
}

func TestCatalogHandler_ListAgeCategories(t *testing.T) {
	w := serve(t, catalogRouter(), http.MethodGet, "/api/v1/catalog/age-categories", "")

	require.Equal(t, http.StatusOK, w.Code)

	ages := decode[[]dto.AgeCategoryResponse](t, w)
	require.Len(t, ages, 3)
	assert.Equal(t, "5-10a", ages[2].Code)
	assert.Equal(t, "R$ 250,00", ages[2].BasePrice.Formatted)
}

func TestCatalogHandler_ListServiceTypes(t *testing.T) {
	w := serve(t, catalogRouter(), http.MethodGet, "/api/v1/catalog/service-types", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"code":"venda","label":"Venda"},{"code":"aluguel","label":"Aluguel"}]`, w.Body.String())
}

func TestCatalogHandler_ListItems(t *testing.T) {
	tests := []struct {
		category string
		wantLen  int
	}{
		{domain.CategoryFinishing, 14},
		{domain.CategoryFabric, 10},
		{"buttons", 0},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			w := serve(t, catalogRouter(), http.MethodGet, "/api/v1/catalog/"+tt.category, "")

			require.Equal(t, http.StatusOK, w.Code)

			items := decode[[]dto.CatalogItemResponse](t, w)
			assert.Len(t, items, tt.wantLen)
			assert.NotNil(t, items)
		})
	}
}
