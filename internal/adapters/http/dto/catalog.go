package dto

import (
	"github.com/shopspring/decimal"

	"github.com/atelier-studio/atelier-service/internal/domain"
)

// Money is an amount as a fixed two-decimal string plus its BRL rendering.
type Money struct {
	Amount    string `json:"amount"`
	Formatted string `json:"formatted"`
}

// NewMoney renders d for the wire.
func NewMoney(d decimal.Decimal) Money {
	return Money{
		Amount:    d.StringFixed(2),
		Formatted: domain.FormatBRL(d),
	}
}

// CatalogItemResponse is one selectable service.
type CatalogItemResponse struct {
	Category  string `json:"category"`
	Name      string `json:"name"`
	UnitPrice Money  `json:"unitPrice"`
}

// CategoryResponse is a category with its items in display order.
type CategoryResponse struct {
	Code  string                `json:"code"`
	Label string                `json:"label"`
	Items []CatalogItemResponse `json:"items"`
}

// AgeCategoryResponse is a price tier.
type AgeCategoryResponse struct {
	Code      string `json:"code"`
	Label     string `json:"label"`
	BasePrice Money  `json:"basePrice"`
}

// CatalogResponse is the whole catalog.
type CatalogResponse struct {
	Categories    []CategoryResponse    `json:"categories"`
	AgeCategories []AgeCategoryResponse `json:"ageCategories"`
}

// ServiceTypeResponse is one of the sale/rental options.
type ServiceTypeResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// ToCatalogItems converts catalog items.
func ToCatalogItems(items []domain.CatalogItem) []CatalogItemResponse {
	out := make([]CatalogItemResponse, len(items))
	for i, item := range items {
		out[i] = CatalogItemResponse{
			Category:  item.Category,
			Name:      item.Name,
			UnitPrice: NewMoney(item.UnitPrice),
		}
	}

	return out
}

// ToCategories converts categories with their items.
func ToCategories(cats []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(cats))
	for i, cat := range cats {
		out[i] = CategoryResponse{
			Code:  cat.Code,
			Label: cat.Label,
			Items: ToCatalogItems(cat.Items),
		}
	}

	return out
}

// ToAgeCategories converts the age tiers.
func ToAgeCategories(ages []domain.AgeCategory) []AgeCategoryResponse {
	out := make([]AgeCategoryResponse, len(ages))
	for i, age := range ages {
		out[i] = AgeCategoryResponse{
			Code:      age.Code,
			Label:     age.Label,
			BasePrice: NewMoney(age.BasePrice),
		}
	}

	return out
}

// ToCatalogResponse converts the full catalog.
func ToCatalogResponse(c *domain.Catalog) CatalogResponse {
	return CatalogResponse{
		Categories:    ToCategories(c.Categories()),
		AgeCategories: ToAgeCategories(c.AgeCategories()),
	}
}

// ServiceTypes lists the sale/rental options.
func ServiceTypes() []ServiceTypeResponse {
	types := []domain.ServiceType{domain.ServiceTypeSale, domain.ServiceTypeRental}

	out := make([]ServiceTypeResponse, len(types))
	for i, st := range types {
		out[i] = ServiceTypeResponse{Code: string(st), Label: st.Label()}
	}

	return out
}
