package handlers

import (
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atelier-studio/atelier-service/internal/adapters/http/dto"
	"github.com/atelier-studio/atelier-service/internal/app"
	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/mocks"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

// 1-4a base 200.00 plus two Tule Cristal at 15.00.
const validQuoteBody = `{
	"client": {"name": "Ana Souza", "email": "ana@example.com", "phone": "11 99999-0000"},
	"ageCategory": "1-4a",
	"serviceType": "venda",
	"description": "Vestido de daminha",
	"lines": [{"category": "fabric", "name": "Tule Cristal", "quantity": 2, "unitPrice": "15.00", "total": "30.00"}],
	"totalValue": "230.00"
}`

type quoteFixture struct {
	repo   *mocks.MockQuoteRepository
	svc    *app.QuoteService
	engine http.Handler
}

func newQuoteFixture(t *testing.T) *quoteFixture {
	t.Helper()

	repo := mocks.NewMockQuoteRepository(t)
	svc := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:  repo,
		Catalog: domain.DefaultCatalog(),
	})

	engine, api := newAPI(testUserID)
	NewQuoteHandler(svc).RegisterQuoteRoutes(api)

	return &quoteFixture{repo: repo, svc: svc, engine: engine}
}

func TestQuoteHandler_SubmitQuote(t *testing.T) {
	f := newQuoteFixture(t)
	f.repo.On("SubmitQuote", mock.Anything, mock.MatchedBy(func(sub domain.QuoteSubmission) bool {
		return sub.UserID == testUserID && sub.Client.Email == "ana@example.com" && len(sub.Lines) == 1
	})).Return(&domain.QuoteCreated{
		QuoteID:  "9b2e4f6a-1c3d-4e5f-8a7b-6c5d4e3f2a1b",
		ClientID: "c-1",
		Total:    decimal.NewFromInt(230),
	}, nil)

	w := serve(t, f.engine, http.MethodPost, "/api/v1/quotes", validQuoteBody)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[dto.SubmitQuoteResponse](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, app.QuoteCreatedMessage, resp.Message)
	assert.Equal(t, "9b2e4f6a-1c3d-4e5f-8a7b-6c5d4e3f2a1b", resp.QuoteID)
	assert.Equal(t, "230.00", resp.Total.Amount)
}

func TestQuoteHandler_SubmitQuote_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCode  string
		wantField string
	}{
		{
			name:     "malformed json",
			body:     `{"client":`,
			wantCode: dto.ErrorCodeBadRequest,
		},
		{
			name:      "missing client email",
			body:      `{"client":{"name":"Ana"},"ageCategory":"1-4a","serviceType":"venda","totalValue":"200"}`,
			wantCode:  dto.ErrorCodeValidation,
			wantField: "email",
		},
		{
			name:      "stale total",
			body:      `{"client":{"name":"Ana","email":"ana@example.com"},"ageCategory":"1-4a","serviceType":"venda","totalValue":"199.90"}`,
			wantCode:  dto.ErrorCodeValidation,
			wantField: "totalValue",
		},
		{
			name:      "unknown age category",
			body:      `{"client":{"name":"Ana","email":"ana@example.com"},"ageCategory":"adulto","serviceType":"venda","totalValue":"200"}`,
			wantCode:  dto.ErrorCodeValidation,
			wantField: "ageCategory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQuoteFixture(t)

			w := serve(t, f.engine, http.MethodPost, "/api/v1/quotes", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			resp := decode[dto.ErrorResponse](t, w)
			assert.Equal(t, tt.wantCode, resp.Error.Code)

			if tt.wantField != "" {
				assert.Contains(t, resp.Error.Details, tt.wantField)
			}

			f.repo.AssertNotCalled(t, "SubmitQuote", mock.Anything, mock.Anything)
		})
	}
}

func TestQuoteHandler_SubmitQuote_StoreDown(t *testing.T) {
	f := newQuoteFixture(t)
	f.repo.On("SubmitQuote", mock.Anything, mock.Anything).
		Return(nil, domain.NewUnavailableError("postgres", "connection refused"))

	w := serve(t, f.engine, http.MethodPost, "/api/v1/quotes", validQuoteBody)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, dto.ErrorCodeUnavailable, errorCode(t, w))
}

func TestQuoteHandler_ListQuotes(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	page := []domain.Quote{
		{ID: "q-3", ClientName: "Ana", Status: domain.StatusPending, TotalValue: decimal.NewFromInt(230), CreatedAt: base.Add(2 * time.Hour)},
		{ID: "q-2", ClientName: "Bia", Status: domain.StatusApproved, TotalValue: decimal.NewFromInt(150), CreatedAt: base.Add(time.Hour)},
		{ID: "q-1", ClientName: "Cris", Status: domain.StatusFinished, TotalValue: decimal.NewFromInt(310), CreatedAt: base},
	}

	f := newQuoteFixture(t)
	f.repo.On("ListQuotes", mock.Anything, testUserID, ports.QueryPage{Limit: 3}).Return(page, nil).Once()

	w := serve(t, f.engine, http.MethodGet, "/api/v1/quotes?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	first := decode[dto.Page[dto.QuoteResponse]](t, w)
	require.Len(t, first.Items, 2)
	assert.True(t, first.HasMore)
	assert.Equal(t, "q-3", first.Items[0].ID)
	require.NotEmpty(t, first.NextCursor)

	f.repo.On("ListQuotes", mock.Anything, testUserID, mock.MatchedBy(func(p ports.QueryPage) bool {
		return p.Limit == 3 && p.AfterID == "q-2" && p.After.Equal(base.Add(time.Hour))
	})).Return(page[2:], nil).Once()

	w = serve(t, f.engine, http.MethodGet, "/api/v1/quotes?limit=2&cursor="+first.NextCursor, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	second := decode[dto.Page[dto.QuoteResponse]](t, w)
	require.Len(t, second.Items, 1)
	assert.False(t, second.HasMore)
	assert.Empty(t, second.NextCursor)
}

func TestQuoteHandler_ListQuotes_BadQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"garbage cursor", "?cursor=not-a-cursor"},
		{"foreign cursor", "?cursor=" + base64.RawURLEncoding.EncodeToString([]byte(`{"name":"Ana"}`))},
		{"limit too large", "?limit=1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQuoteFixture(t)

			w := serve(t, f.engine, http.MethodGet, "/api/v1/quotes"+tt.query, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestQuoteHandler_GetQuote(t *testing.T) {
	f := newQuoteFixture(t)
	f.repo.On("GetQuote", mock.Anything, testUserID, "q-1").Return(&domain.Quote{
		ID:         "q-1",
		ClientName: "Ana",
		Status:     domain.StatusPending,
		TotalValue: decimal.NewFromInt(220),
		Items: []domain.QuoteItem{
			{ID: "i-1", Name: "Bordado Máquina", Quantity: 1, UnitPrice: decimal.NewFromInt(20), Total: decimal.NewFromInt(20)},
		},
	}, nil)
	f.repo.On("GetQuote", mock.Anything, testUserID, "q-404").Return(nil, domain.NewNotFoundError("quote", "q-404"))

	w := serve(t, f.engine, http.MethodGet, "/api/v1/quotes/q-1", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.QuoteResponse](t, w)
	assert.Equal(t, "R$ 220,00", resp.TotalValue.Formatted)
	require.Len(t, resp.Items, 1)

	w = serve(t, f.engine, http.MethodGet, "/api/v1/quotes/q-404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeNotFound, errorCode(t, w))
}

func TestQuoteHandler_Preview(t *testing.T) {
	f := newQuoteFixture(t)

	w := serve(t, f.engine, http.MethodPost, "/api/v1/quotes/preview", `{
		"ageCategory": "0-11m",
		"items": [
			{"category": "finishing", "name": "Botão Forrado", "quantity": 10},
			{"category": "fabric", "name": "Tule Cristal", "quantity": 0}
		]
	}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[dto.PreviewResponse](t, w)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, 1, resp.Lines[1].Quantity)
	assert.Equal(t, "150.00", resp.Breakdown.BasePrice.Amount)
	assert.Equal(t, "27.00", resp.Breakdown.ItemsTotal.Amount)
	assert.Equal(t, "177.00", resp.Breakdown.Total.Amount)
}

func TestQuoteHandler_Preview_UnknownItem(t *testing.T) {
	f := newQuoteFixture(t)

	w := serve(t, f.engine, http.MethodPost, "/api/v1/quotes/preview",
		`{"items":[{"category":"fabric","name":"Seda Pura","quantity":1}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidation, errorCode(t, w))
}
