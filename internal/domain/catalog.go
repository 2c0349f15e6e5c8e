package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Catalog category codes.
const (
	CategoryFinishing = "finishing"
	CategoryFabric    = "fabric"
)

// CatalogItem is a named, priced option selectable for a quote.
type CatalogItem struct {
	Category  string
	Name      string
	UnitPrice decimal.Decimal
}

// Category groups catalog items under a display label.
type Category struct {
	Code  string
	Label string
	Items []CatalogItem
}

// AgeCategory is a price tier keyed by a child's age range.
type AgeCategory struct {
	Code      string
	Label     string
	BasePrice decimal.Decimal
}

// ServiceType says whether a piece is sold or rented.
type ServiceType string

// Supported service types.
const (
	ServiceTypeSale   ServiceType = "venda"
	ServiceTypeRental ServiceType = "aluguel"
)

// Label returns the display name of the service type.
func (s ServiceType) Label() string {
	switch s {
	case ServiceTypeSale:
		return "Venda"
	case ServiceTypeRental:
		return "Aluguel"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the supported service types.
func (s ServiceType) Valid() bool {
	return s == ServiceTypeSale || s == ServiceTypeRental
}

// ServiceTypes returns the supported service types in display order.
func ServiceTypes() []ServiceType {
	return []ServiceType{ServiceTypeSale, ServiceTypeRental}
}

// Catalog is the read-only price table: item categories plus age tiers.
// It is safe for concurrent use because it is never mutated after construction.
type Catalog struct {
	categories []Category
	byCode     map[string]int
	ages       []AgeCategory
	agesByCode map[string]int
}

// NewCatalog builds a catalog, rejecting duplicate codes, duplicate item
// names within a category, and negative prices.
func NewCatalog(categories []Category, ages []AgeCategory) (*Catalog, error) {
	c := &Catalog{
		byCode:     make(map[string]int, len(categories)),
		agesByCode: make(map[string]int, len(ages)),
	}

	for _, cat := range categories {
		if cat.Code == "" {
			return nil, NewValidationError("category.code", "is required")
		}

		if _, dup := c.byCode[cat.Code]; dup {
			return nil, NewValidationErrorWithValue("category.code", "is duplicated", cat.Code)
		}

		names := make(map[string]struct{}, len(cat.Items))
		items := make([]CatalogItem, 0, len(cat.Items))

		for _, item := range cat.Items {
			if _, dup := names[item.Name]; dup {
				return nil, NewValidationErrorWithValue(
					"item.name", fmt.Sprintf("is duplicated in category %s", cat.Code), item.Name)
			}

			if item.UnitPrice.IsNegative() {
				return nil, NewValidationErrorWithValue("item.unitPrice", "must not be negative", item.Name)
			}

			names[item.Name] = struct{}{}
			item.Category = cat.Code
			items = append(items, item)
		}

		c.byCode[cat.Code] = len(c.categories)
		c.categories = append(c.categories, Category{Code: cat.Code, Label: cat.Label, Items: items})
	}

	for _, age := range ages {
		if age.Code == "" {
			return nil, NewValidationError("ageCategory.code", "is required")
		}

		if _, dup := c.agesByCode[age.Code]; dup {
			return nil, NewValidationErrorWithValue("ageCategory.code", "is duplicated", age.Code)
		}

		if age.BasePrice.IsNegative() {
			return nil, NewValidationErrorWithValue("ageCategory.basePrice", "must not be negative", age.Code)
		}

		c.agesByCode[age.Code] = len(c.ages)
		c.ages = append(c.ages, age)
	}

	return c, nil
}

// ListItems returns the items of a category in display order.
// An unknown category yields an empty, non-nil slice.
func (c *Catalog) ListItems(category string) []CatalogItem {
	idx, ok := c.byCode[category]
	if !ok {
		return []CatalogItem{}
	}

	items := c.categories[idx].Items
	out := make([]CatalogItem, len(items))
	copy(out, items)

	return out
}

// Item looks up a single item by category and name.
func (c *Catalog) Item(category, name string) (CatalogItem, bool) {
	idx, ok := c.byCode[category]
	if !ok {
		return CatalogItem{}, false
	}

	for _, item := range c.categories[idx].Items {
		if item.Name == name {
			return item, true
		}
	}

	return CatalogItem{}, false
}

// Categories returns every category with its items.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{Code: cat.Code, Label: cat.Label, Items: c.ListItems(cat.Code)}
	}

	return out
}

// AgeCategories returns the age tiers in display order.
func (c *Catalog) AgeCategories() []AgeCategory {
	out := make([]AgeCategory, len(c.ages))
	copy(out, c.ages)

	return out
}

// AgeCategory looks up an age tier by code.
func (c *Catalog) AgeCategory(code string) (AgeCategory, bool) {
	idx, ok := c.agesByCode[code]
	if !ok {
		return AgeCategory{}, false
	}

	return c.ages[idx], true
}

// BasePrice returns the base price for an age category code, or zero when
// the code is empty or unknown.
func (c *Catalog) BasePrice(code string) decimal.Decimal {
	age, ok := c.AgeCategory(code)
	if !ok {
		return decimal.Zero
	}

	return age.BasePrice
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultCatalog returns the studio's standard price table.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		[]Category{
			{
				Code:  CategoryFinishing,
				Label: "Acabamentos",
				Items: []CatalogItem{
					{Name: "Aplicação Flores Pétalas", UnitPrice: price("2.50")},
					{Name: "Aplicação Raminhos", UnitPrice: price("2.50")},
					{Name: "Aplicação Borboletas", UnitPrice: price("1.50")},
					{Name: "Aplicação Flores Delicadas", UnitPrice: price("3.00")},
					{Name: "Aplicação Folhas", UnitPrice: price("1.50")},
					{Name: "Bordado Máquina", UnitPrice: price("20.00")},
					{Name: "Bordado Mão", UnitPrice: price("10.00")},
					{Name: "Bordado com Pedraria", UnitPrice: price("30.00")},
					{Name: "Cinto Pedraria/Pérola", UnitPrice: price("20.00")},
					{Name: "Cinto Fita Veludo", UnitPrice: price("20.00")},
					{Name: "Cinto Tubo Silicone Brilhoso", UnitPrice: price("20.00")},
					{Name: "Botão Forrado", UnitPrice: price("1.20")},
					{Name: "Laços Cetim Lycra 35x45", UnitPrice: price("1.20")},
					{Name: "Crinol", UnitPrice: price("4.00")},
				},
			},
			{
				Code:  CategoryFabric,
				Label: "Tecidos",
				Items: []CatalogItem{
					{Name: "Sublimação", UnitPrice: price("20.00")},
					{Name: "Tule Noiva", UnitPrice: price("22.00")},
					{Name: "Zibeline", UnitPrice: price("30.00")},
					{Name: "Cetim Eucol", UnitPrice: price("30.00")},
					{Name: "Tricoline", UnitPrice: price("30.00")},
					{Name: "Tule Cristal", UnitPrice: price("15.00")},
					{Name: "Tule Ilusão", UnitPrice: price("19.00")},
					{Name: "Crepe Amanda", UnitPrice: price("30.00")},
					{Name: "Linho", UnitPrice: price("50.00")},
					{Name: "Organza Cristal", UnitPrice: price("25.00")},
				},
			},
		},
		[]AgeCategory{
			{Code: "0-11m", Label: "0 a 11 meses", BasePrice: price("150.00")},
			{Code: "1-4a", Label: "1 a 4 anos", BasePrice: price("200.00")},
			{Code: "5-10a", Label: "5 a 10 anos", BasePrice: price("250.00")},
		},
	)
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}

	return c
}
