//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-studio/atelier-service/internal/adapters/clients"
	"github.com/atelier-studio/atelier-service/internal/adapters/clients/acl"
	"github.com/atelier-studio/atelier-service/internal/adapters/http/middleware"
	"github.com/atelier-studio/atelier-service/internal/app"
	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/platform/config"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

const testToken = "db-token"

// fakeBaserow serves one table of rows the way the Baserow REST API does.
type fakeBaserow struct {
	mu       sync.Mutex
	rows     []map[string]any
	nextID   int
	failures atomic.Int32
	calls    atomic.Int32
	headers  http.Header
}

func newFakeBaserow() *fakeBaserow {
	return &fakeBaserow{nextID: 1}
}

func (f *fakeBaserow) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)

	f.mu.Lock()
	f.headers = r.Header.Clone()
	f.mu.Unlock()

	if f.failures.Load() > 0 {
		f.failures.Add(-1)
		w.WriteHeader(http.StatusServiceUnavailable)

		return
	}

	if r.Header.Get("Authorization") != "Token "+testToken {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"ERROR_INVALID_TOKEN","detail":"Token does not exist."}`))

		return
	}

	switch {
	case r.URL.Path == "/api/_health/":
		w.WriteHeader(http.StatusOK)

	case r.URL.Path == "/api/database/rows/table/42/":
		f.serveRows(w, r)

	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"ERROR_TABLE_DOES_NOT_EXIST","detail":"The requested table does not exist."}`))
	}
}

func (f *fakeBaserow) serveRows(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(map[string]any{"count": len(f.rows), "next": nil, "results": f.rows})

	case http.MethodPost:
		var row map[string]any
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		row["id"] = f.nextID
		row["order"] = "1.00000000000000000000"
		f.nextID++
		f.rows = append(f.rows, row)

		_ = json.NewEncoder(w).Encode(row)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeBaserow) lastHeader(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.headers.Get(name)
}

func baserowClientConfig(baseURL, token string) *clients.Config {
	return &clients.Config{
		ServiceName: acl.BaserowServiceName,
		BaseURL:     baseURL + "/api",
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       100 * time.Millisecond,
			HalfOpenLimit: 1,
		},
		AuthFunc: acl.TokenAuth(token),
	}
}

func newBaserow(t *testing.T, fake *fakeBaserow, token string, tweak ...func(*clients.Config)) *acl.BaserowClient {
	t.Helper()

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	cfg := baserowClientConfig(server.URL, token)
	for _, fn := range tweak {
		fn(cfg)
	}

	httpClient, err := clients.New(cfg)
	require.NoError(t, err)

	return acl.NewBaserowClient(acl.BaserowClientConfig{Client: httpClient})
}

func TestBaserow_CreateThenList(t *testing.T) {
	fake := newFakeBaserow()
	store := newBaserow(t, fake, testToken)

	created, err := store.CreateRow(t.Context(), "42", ports.TableRow{"Nome": "Helena", "Valor": "310.00"})
	require.NoError(t, err)
	assert.Equal(t, "Helena", created["Nome"])
	assert.NotContains(t, created, "order")

	rows, err := store.ListRows(t.Context(), "42")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "310.00", rows[0]["Valor"])
	assert.NotContains(t, rows[0], "order")
}

func TestBaserow_TableServiceRoundTrip(t *testing.T) {
	fake := newFakeBaserow()
	tables := app.NewTableService(newBaserow(t, fake, testToken), []string{"42"}, nil)

	_, err := tables.CreateRow(t.Context(), "42", ports.TableRow{"Nome": "Alice"})
	require.NoError(t, err)

	rows, err := tables.ListRows(t.Context(), "42")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = tables.ListRows(t.Context(), "7")
	assert.True(t, domain.IsForbidden(err))
}

func TestBaserow_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		tableID string
		check   func(error) bool
	}{
		{name: "unknown table", token: testToken, tableID: "99", check: domain.IsNotFound},
		{name: "bad token", token: "stale", tableID: "42", check: domain.IsForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newBaserow(t, newFakeBaserow(), tt.token)

			_, err := store.ListRows(t.Context(), tt.tableID)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}

func TestBaserow_RetriesTransientFailures(t *testing.T) {
	fake := newFakeBaserow()
	fake.failures.Store(2)

	store := newBaserow(t, fake, testToken)

	_, err := store.ListRows(t.Context(), "42")
	require.NoError(t, err)
	assert.Equal(t, int32(3), fake.calls.Load())
}

func TestBaserow_CircuitOpensAndRecovers(t *testing.T) {
	fake := newFakeBaserow()
	fake.failures.Store(100)

	store := newBaserow(t, fake, testToken, func(cfg *clients.Config) {
		cfg.Retry.MaxAttempts = 1
		cfg.Circuit.MaxFailures = 2
		cfg.Circuit.Timeout = 50 * time.Millisecond
	})

	for range 2 {
		_, err := store.ListRows(t.Context(), "42")
		require.Error(t, err)
	}

	assert.Equal(t, clients.StateOpen, store.Client().CircuitState())

	before := fake.calls.Load()
	_, err := store.ListRows(t.Context(), "42")
	assert.True(t, domain.IsUnavailable(err))
	assert.Equal(t, before, fake.calls.Load(), "open circuit must not reach Baserow")

	fake.failures.Store(0)
	time.Sleep(60 * time.Millisecond)

	_, err = store.ListRows(t.Context(), "42")
	require.NoError(t, err)
	assert.Equal(t, clients.StateClosed, store.Client().CircuitState())
}

func TestBaserow_PropagatesRequestHeaders(t *testing.T) {
	fake := newFakeBaserow()
	store := newBaserow(t, fake, testToken)

	ctx := middleware.ContextWithRequestID(t.Context(), "req-123")
	ctx = middleware.ContextWithCorrelationID(ctx, "corr-456")

	_, err := store.ListRows(ctx, "42")
	require.NoError(t, err)

	assert.Equal(t, "req-123", fake.lastHeader(middleware.HeaderRequestID))
	assert.Equal(t, "corr-456", fake.lastHeader(middleware.HeaderCorrelationID))
	assert.Equal(t, "Token "+testToken, fake.lastHeader("Authorization"))
}

func TestBaserow_Health(t *testing.T) {
	fake := newFakeBaserow()
	store := newBaserow(t, fake, testToken)

	require.NoError(t, store.Check(t.Context()))

	fake.failures.Store(100)

	err := store.Check(t.Context())
	require.Error(t, err)
}

func TestBaserow_ContextCancellation(t *testing.T) {
	started := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	httpClient, err := clients.New(baserowClientConfig(server.URL, testToken))
	require.NoError(t, err)

	store := acl.NewBaserowClient(acl.BaserowClientConfig{Client: httpClient})

	ctx, cancel := context.WithCancel(t.Context())

	go func() {
		<-started
		cancel()
	}()

	start := time.Now()
	_, err = store.ListRows(ctx, "42")

	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestBaserow_ConcurrentCreates(t *testing.T) {
	fake := newFakeBaserow()
	store := newBaserow(t, fake, testToken)

	const writers = 10

	var wg sync.WaitGroup
	for i := range writers {
		wg.Go(func() {
			_, err := store.CreateRow(context.Background(), "42",
				ports.TableRow{"Nome": strings.Repeat("a", i+1)})
			assert.NoError(t, err)
		})
	}

	wg.Wait()

	rows, err := store.ListRows(t.Context(), "42")
	require.NoError(t, err)
	assert.Len(t, rows, writers)
}
