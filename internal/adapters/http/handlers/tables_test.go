package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atelier-studio/atelier-service/internal/adapters/http/dto"
	"github.com/atelier-studio/atelier-service/internal/app"
	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/mocks"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

func newTableRouter(store ports.TableStore, allowed ...string) *gin.Engine {
	engine, api := newAPI(testUserID)
	NewTableHandler(app.NewTableService(store, allowed, nil)).RegisterTableRoutes(api)

	return engine
}

func TestTableHandler_ListRows(t *testing.T) {
	store := mocks.NewMockTableStore(t)
	store.On("ListRows", mock.Anything, "42").Return([]ports.TableRow{
		{"id": float64(1), "Nome": "Ana"},
		{"id": float64(2), "Nome": "Bia"},
	}, nil)

	w := serve(t, newTableRouter(store), http.MethodGet, "/api/v1/tables/42/rows", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[dto.RowsResponse](t, w)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "Bia", resp.Rows[1]["Nome"])
}

func TestTableHandler_CreateRow(t *testing.T) {
	store := mocks.NewMockTableStore(t)
	store.On("CreateRow", mock.Anything, "42", ports.TableRow{"Nome": "Ana"}).
		Return(ports.TableRow{"id": float64(7), "Nome": "Ana"}, nil)

	w := serve(t, newTableRouter(store, "42"), http.MethodPost, "/api/v1/tables/42/rows", `{"Nome":"Ana"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":7,"Nome":"Ana"}`, w.Body.String())
}

func TestTableHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		store      func(t *testing.T) ports.TableStore
		allowed    []string
		method     string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not configured",
			store:      func(*testing.T) ports.TableStore { return nil },
			method:     http.MethodGet,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   dto.ErrorCodeUnavailable,
		},
		{
			name:       "table not allowed",
			store:      func(t *testing.T) ports.TableStore { return mocks.NewMockTableStore(t) },
			allowed:    []string{"7"},
			method:     http.MethodGet,
			wantStatus: http.StatusForbidden,
			wantCode:   dto.ErrorCodeForbidden,
		},
		{
			name:       "body is an array",
			store:      func(t *testing.T) ports.TableStore { return mocks.NewMockTableStore(t) },
			method:     http.MethodPost,
			body:       `[1,2]`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeBadRequest,
		},
		{
			name:       "empty row",
			store:      func(t *testing.T) ports.TableStore { return mocks.NewMockTableStore(t) },
			method:     http.MethodPost,
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeValidation,
		},
		{
			name: "table missing upstream",
			store: func(t *testing.T) ports.TableStore {
				s := mocks.NewMockTableStore(t)
				s.On("ListRows", mock.Anything, "42").Return(nil, domain.NewNotFoundError("table", "42"))

				return s
			},
			method:     http.MethodGet,
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrorCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTableRouter(tt.store(t), tt.allowed...)

			w := serve(t, r, tt.method, "/api/v1/tables/42/rows", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}
