package acl

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-studio/atelier-service/internal/adapters/clients"
	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/platform/config"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

func newTestBaserow(t *testing.T, handler http.HandlerFunc) *BaserowClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := clients.New(&clients.Config{
		ServiceName: BaserowServiceName,
		BaseURL:     server.URL + "/api",
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
		AuthFunc: TokenAuth("secret-token"),
	})
	require.NoError(t, err)

	return NewBaserowClient(BaserowClientConfig{Client: client})
}

func TestNewBaserowClient_PanicsWithoutClient(t *testing.T) {
	assert.PanicsWithValue(t, "BaserowClient: Client is required", func() {
		NewBaserowClient(BaserowClientConfig{})
	})
}

func TestBaserowClient_ListRows(t *testing.T) {
	client := newTestBaserow(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/database/rows/table/42/", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("user_field_names"))
		assert.Equal(t, "Token secret-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"count": 2,
			"next": null,
			"results": [
				{"id": 1, "order": "1.00000000000000000000", "Cliente": "Ana", "Total": "370.00"},
				{"id": 2, "order": "2.00000000000000000000", "Cliente": "Bia", "Total": "95.00"}
			]
		}`)
	})

	rows, err := client.ListRows(t.Context(), "42")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana", rows[0]["Cliente"])
	assert.InDelta(t, 1.0, rows[0]["id"], 0)
	assert.NotContains(t, rows[0], "order")
	assert.Equal(t, "95.00", rows[1]["Total"])
}

func TestBaserowClient_ListRows_Empty(t *testing.T) {
	client := newTestBaserow(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"count":0,"next":null,"results":[]}`)
	})

	rows, err := client.ListRows(t.Context(), "42")

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestBaserowClient_ListRows_RequiresTableID(t *testing.T) {
	client := newTestBaserow(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.ListRows(t.Context(), "")

	assert.True(t, domain.IsValidation(err))
}

func TestBaserowClient_ListRows_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{"missing table", http.StatusNotFound, `{"error":"ERROR_TABLE_DOES_NOT_EXIST"}`, domain.IsNotFound},
		{"bad token", http.StatusUnauthorized, `{"error":"ERROR_TOKEN_DOES_NOT_EXIST"}`, domain.IsForbidden},
		{"server down", http.StatusServiceUnavailable, ``, domain.IsUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestBaserow(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.ListRows(t.Context(), "42")

			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}

func TestBaserowClient_ListRows_InvalidJSON(t *testing.T) {
	client := newTestBaserow(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{not json`)
	})

	_, err := client.ListRows(t.Context(), "42")

	assert.True(t, domain.IsUnavailable(err))
}

func TestBaserowClient_CreateRow(t *testing.T) {
	client := newTestBaserow(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/database/rows/table/42/", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("user_field_names"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ana", body["Cliente"])

		body["id"] = 9
		body["order"] = "9.0"
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(body)
	})

	row, err := client.CreateRow(t.Context(), "42", ports.TableRow{"Cliente": "Ana", "Total": "370.00"})

	require.NoError(t, err)
	assert.Equal(t, "Ana", row["Cliente"])
	assert.Equal(t, "370.00", row["Total"])
	assert.InDelta(t, 9.0, row["id"], 0)
	assert.NotContains(t, row, "order")
}

func TestBaserowClient_CreateRow_ValidationError(t *testing.T) {
	client := newTestBaserow(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"ERROR_REQUEST_BODY_VALIDATION","detail":{"Total":[{"error":"A valid number is required.","code":"invalid"}]}}`)
	})

	_, err := client.CreateRow(t.Context(), "42", ports.TableRow{"Total": "abc"})

	require.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "Total")
}

func TestBaserowClient_CreateRow_UnencodableRow(t *testing.T) {
	client := newTestBaserow(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.CreateRow(t.Context(), "42", ports.TableRow{"bad": make(chan int)})

	assert.True(t, domain.IsValidation(err))
}

func TestBaserowClient_Health(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)

	client := newTestBaserow(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/_health/", r.URL.Path)

		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		w.WriteHeader(http.StatusOK)
	})

	assert.Equal(t, "baserow", client.Name())
	require.NoError(t, client.Check(t.Context()))

	healthy.Store(false)
	assert.Error(t, client.Check(t.Context()))
}

func TestTranslateSlice(t *testing.T) {
	double := func(v *int) (int, error) { return *v * 2, nil }

	out, err := TranslateSlice([]int{1, 2, 3}, double)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, out)

	failing := func(v *int) (int, error) {
		if *v == 2 {
			return 0, domain.NewValidationError("v", "bad")
		}

		return *v, nil
	}

	_, err = TranslateSlice([]int{1, 2, 3}, failing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "translating item 1")
	assert.True(t, domain.IsValidation(err))
}

func TestDecodeResponse_NilBody(t *testing.T) {
	_, err := DecodeResponse[baserowRowList](nil)

	assert.Error(t, err)
}
