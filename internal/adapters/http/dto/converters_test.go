package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-studio/atelier-service/internal/app"
	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

func TestNewMoney(t *testing.T) {
	m := NewMoney(decimal.RequireFromString("1234.5"))

	assert.Equal(t, "1234.50", m.Amount)
	assert.Equal(t, "R$ 1.234,50", m.Formatted)
}

func TestToCatalogResponse(t *testing.T) {
	resp := ToCatalogResponse(domain.DefaultCatalog())

	require.Len(t, resp.Categories, 2)
	assert.Equal(t, domain.CategoryFinishing, resp.Categories[0].Code)
	assert.Len(t, resp.Categories[0].Items, 14)
	assert.Len(t, resp.Categories[1].Items, 10)

	require.Len(t, resp.AgeCategories, 3)
	assert.Equal(t, "0-11m", resp.AgeCategories[0].Code)
	assert.Equal(t, "150.00", resp.AgeCategories[0].BasePrice.Amount)
}

func TestServiceTypes(t *testing.T) {
	assert.Equal(t, []ServiceTypeResponse{
		{Code: "venda", Label: "Venda"},
		{Code: "aluguel", Label: "Aluguel"},
	}, ServiceTypes())
}

func TestSubmitQuoteRequest_Decode(t *testing.T) {
	body := `{
		"client": {"name": "Ana", "email": "ana@example.com", "phone": "11 99999-0000"},
		"ageCategory": "1-4a",
		"serviceType": "aluguel",
		"description": "Vestido de daminha",
		"lines": [{"category": "fabric", "name": "Tule Cristal", "quantity": 2, "unitPrice": 15, "total": "30.00"}],
		"totalValue": 230
	}`

	var req SubmitQuoteRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	sub := req.ToSubmission("u-1")

	assert.Equal(t, "u-1", sub.UserID)
	assert.Equal(t, domain.ClientIdentity{Name: "Ana", Email: "ana@example.com", Phone: "11 99999-0000"}, sub.Client)
	assert.Equal(t, domain.ServiceTypeRental, sub.ServiceType)
	require.Len(t, sub.Lines, 1)
	assert.True(t, sub.Lines[0].UnitPrice.Equal(decimal.NewFromInt(15)))
	assert.True(t, sub.Lines[0].Total.Equal(decimal.NewFromInt(30)))
	assert.True(t, sub.TotalValue.Equal(decimal.NewFromInt(230)))
}

func TestToSubmitQuoteResponse(t *testing.T) {
	raw, err := json.Marshal(ToSubmitQuoteResponse(&domain.QuoteCreated{
		QuoteID: "q-1",
		Total:   decimal.NewFromInt(230),
		Message: app.QuoteCreatedMessage,
	}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"success": true,
		"message": "Orçamento criado com sucesso!",
		"quoteId": "q-1",
		"total": {"amount": "230.00", "formatted": "R$ 230,00"}
	}`, string(raw))
}

func TestToQuoteResponse(t *testing.T) {
	q := &domain.Quote{
		ID:          "q-1",
		ClientName:  "Ana",
		Status:      domain.StatusPending,
		TotalValue:  decimal.NewFromInt(215),
		ServiceType: domain.ServiceTypeSale,
		CreatedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	resp := ToQuoteResponse(q)
	assert.Equal(t, "venda", resp.ServiceType)
	assert.Equal(t, "R$ 215,00", resp.TotalValue.Formatted)
	assert.Nil(t, resp.Items)

	q.Items = []domain.QuoteItem{{ID: "i-1", Name: "Bordado Máquina", Quantity: 1, UnitPrice: decimal.NewFromInt(20), Total: decimal.NewFromInt(20)}}
	resp = ToQuoteResponse(q)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "20.00", resp.Items[0].Total.Amount)
}

func TestToDraftResponse(t *testing.T) {
	view := &app.DraftView{
		ID:          "d-1",
		AgeCategory: "5-10a",
		Lines: []domain.QuoteLine{{
			ID: "l-1", Category: "finishing", Name: "Botão Forrado", Quantity: 10,
			UnitPrice: decimal.RequireFromString("1.20"), Total: decimal.NewFromInt(12),
		}},
		Breakdown: domain.Breakdown{
			BasePrice:  decimal.NewFromInt(250),
			ItemsTotal: decimal.NewFromInt(12),
			Subtotal:   decimal.NewFromInt(262),
			Total:      decimal.NewFromInt(262),
		},
	}

	resp := ToDraftResponse(view)

	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "1.20", resp.Lines[0].UnitPrice.Amount)
	assert.Equal(t, "R$ 262,00", resp.Breakdown.Total.Formatted)
}

func TestSubmitDraftRequest_ToDraftSubmission(t *testing.T) {
	req := SubmitDraftRequest{
		Client:      ClientRequest{Name: "Ana", Email: "ana@example.com"},
		ServiceType: "venda",
		Description: "Batizado",
	}

	got := req.ToDraftSubmission()

	assert.Equal(t, domain.ServiceTypeSale, got.ServiceType)
	assert.Equal(t, "Ana", got.Client.Name)
	assert.Equal(t, "Batizado", got.Description)
}

func TestToHomeResponse_Fallbacks(t *testing.T) {
	resp := ToHomeResponse(&domain.HomeSummary{
		RecentOrders: []domain.Order{{ID: "o-1", Status: domain.StatusInProduction, Value: decimal.NewFromInt(300)}},
		QuickStats:   []domain.QuickStat{{Label: domain.StatActiveOrders, Value: "1", Icon: domain.IconScissors}},
	})

	require.Len(t, resp.RecentOrders, 1)
	assert.Equal(t, domain.FallbackClientName, resp.RecentOrders[0].ClientName)
	assert.Equal(t, domain.FallbackServiceName, resp.RecentOrders[0].ProductName)
	assert.Equal(t, string(domain.ToneForStatus(domain.StatusInProduction)), resp.RecentOrders[0].Tone)
	assert.Equal(t, "Scissors", resp.QuickStats[0].Icon)
}

func TestToDashboardResponse(t *testing.T) {
	resp := ToDashboardResponse(&domain.DashboardSummary{
		RecentQuotes: []domain.RecentQuote{{ID: "q-1", Client: "Ana", Value: "R$ 215,00", Tone: domain.ToneWarning, Date: "01/03/2026"}},
		Agenda:       []domain.AgendaEntry{{ID: "o-1", Client: "Bia", Service: "Vestido", Time: "14:30"}},
	})

	assert.Equal(t, "warning", resp.RecentQuotes[0].Tone)
	assert.Equal(t, "14:30", resp.Agenda[0].Time)

	empty := ToDashboardResponse(&domain.DashboardSummary{})
	raw, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"recentQuotes":[],"agenda":[]}`, string(raw))
}

func TestToRowsResponse(t *testing.T) {
	resp := ToRowsResponse([]ports.TableRow{{"id": float64(1), "Cliente": "Ana"}})

	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "Ana", resp.Rows[0]["Cliente"])
}
