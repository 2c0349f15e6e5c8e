package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_Contents(t *testing.T) {
	c := DefaultCatalog()

	cats := c.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, CategoryFinishing, cats[0].Code)
	assert.Equal(t, "Acabamentos", cats[0].Label)
	assert.Len(t, cats[0].Items, 14)
	assert.Equal(t, CategoryFabric, cats[1].Code)
	assert.Len(t, cats[1].Items, 10)

	item, ok := c.Item(CategoryFinishing, "Bordado Máquina")
	require.True(t, ok)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("20")))
	assert.Equal(t, CategoryFinishing, item.Category)

	item, ok = c.Item(CategoryFabric, "Tule Cristal")
	require.True(t, ok)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("15")))

	ages := c.AgeCategories()
	require.Len(t, ages, 3)
	assert.Equal(t, "0-11m", ages[0].Code)
	assert.Equal(t, "1 a 4 anos", ages[1].Label)
}

func TestCatalog_ListItems(t *testing.T) {
	c := DefaultCatalog()

	t.Run("known category keeps display order", func(t *testing.T) {
		items := c.ListItems(CategoryFabric)
		require.NotEmpty(t, items)
		assert.Equal(t, "Sublimação", items[0].Name)
		assert.Equal(t, "Organza Cristal", items[len(items)-1].Name)
	})

	t.Run("unknown category is empty not nil", func(t *testing.T) {
		items := c.ListItems("lace")
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		items := c.ListItems(CategoryFabric)
		items[0].Name = "changed"
		assert.Equal(t, "Sublimação", c.ListItems(CategoryFabric)[0].Name)
	})
}

func TestCatalog_BasePrice(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		code string
		want string
	}{
		{"0-11m", "150"},
		{"1-4a", "200"},
		{"5-10a", "250"},
		{"", "0"},
		{"11-15a", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.True(t, c.BasePrice(tt.code).Equal(decimal.RequireFromString(tt.want)))
		})
	}
}

func TestNewCatalog_Validation(t *testing.T) {
	ten := decimal.NewFromInt(10)

	tests := []struct {
		name  string
		cats  []Category
		ages  []AgeCategory
		field string
	}{
		{
			name:  "missing category code",
			cats:  []Category{{Label: "x"}},
			field: "category.code",
		},
		{
			name:  "duplicate category",
			cats:  []Category{{Code: "a"}, {Code: "a"}},
			field: "category.code",
		},
		{
			name: "duplicate item name",
			cats: []Category{{Code: "a", Items: []CatalogItem{
				{Name: "Linho", UnitPrice: ten},
				{Name: "Linho", UnitPrice: ten},
			}}},
			field: "item.name",
		},
		{
			name:  "negative price",
			cats:  []Category{{Code: "a", Items: []CatalogItem{{Name: "x", UnitPrice: ten.Neg()}}}},
			field: "item.unitPrice",
		},
		{
			name:  "duplicate age code",
			ages:  []AgeCategory{{Code: "1-4a"}, {Code: "1-4a"}},
			field: "ageCategory.code",
		},
		{
			name:  "negative base price",
			ages:  []AgeCategory{{Code: "1-4a", BasePrice: ten.Neg()}},
			field: "ageCategory.basePrice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.cats, tt.ages)
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestNewCatalog_SameNameAcrossCategories(t *testing.T) {
	_, err := NewCatalog([]Category{
		{Code: "a", Items: []CatalogItem{{Name: "Crinol"}}},
		{Code: "b", Items: []CatalogItem{{Name: "Crinol"}}},
	}, nil)

	require.NoError(t, err)
}

func TestServiceType(t *testing.T) {
	assert.True(t, ServiceTypeSale.Valid())
	assert.True(t, ServiceTypeRental.Valid())
	assert.False(t, ServiceType("troca").Valid())
	assert.Equal(t, "Aluguel", ServiceTypeRental.Label())
	assert.Equal(t, []ServiceType{ServiceTypeSale, ServiceTypeRental}, ServiceTypes())
}
