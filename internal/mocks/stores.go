package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

// MockCache mocks ports.Cache.
type MockCache struct {
	mock.Mock
}

// NewMockCache creates a mock that asserts its expectations on cleanup.
func NewMockCache(t TestingT) *MockCache {
	m := &MockCache{}
	register(&m.Mock, t)

	return m
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)

	return ret[[]byte](args, 0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

// MockSessionStore mocks ports.SessionStore.
type MockSessionStore struct {
	mock.Mock
}

// NewMockSessionStore creates a mock that asserts its expectations on cleanup.
func NewMockSessionStore(t TestingT) *MockSessionStore {
	m := &MockSessionStore{}
	register(&m.Mock, t)

	return m
}

func (m *MockSessionStore) Save(ctx context.Context, session *domain.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)

	return ret[*domain.Session](args, 0), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

// MockTableStore mocks ports.TableStore.
type MockTableStore struct {
	mock.Mock
}

// NewMockTableStore creates a mock that asserts its expectations on cleanup.
func NewMockTableStore(t TestingT) *MockTableStore {
	m := &MockTableStore{}
	register(&m.Mock, t)

	return m
}

func (m *MockTableStore) ListRows(ctx context.Context, tableID string) ([]ports.TableRow, error) {
	args := m.Called(ctx, tableID)

	return ret[[]ports.TableRow](args, 0), args.Error(1)
}

func (m *MockTableStore) CreateRow(ctx context.Context, tableID string, row ports.TableRow) (ports.TableRow, error) {
	args := m.Called(ctx, tableID, row)

	return ret[ports.TableRow](args, 0), args.Error(1)
}

// MockFeatureFlags mocks ports.FeatureFlags.
type MockFeatureFlags struct {
	mock.Mock
}

// NewMockFeatureFlags creates a mock that asserts its expectations on cleanup.
func NewMockFeatureFlags(t TestingT) *MockFeatureFlags {
	m := &MockFeatureFlags{}
	register(&m.Mock, t)

	return m
}

func (m *MockFeatureFlags) IsEnabled(ctx context.Context, flag string, defaultValue bool) bool {
	return m.Called(ctx, flag, defaultValue).Bool(0)
}

func (m *MockFeatureFlags) GetInt(ctx context.Context, flag string, defaultValue int) int {
	return m.Called(ctx, flag, defaultValue).Int(0)
}

// MockHealthRegistry mocks ports.HealthRegistry.
type MockHealthRegistry struct {
	mock.Mock
}

// NewMockHealthRegistry creates a mock that asserts its expectations on cleanup.
func NewMockHealthRegistry(t TestingT) *MockHealthRegistry {
	m := &MockHealthRegistry{}
	register(&m.Mock, t)

	return m
}

func (m *MockHealthRegistry) Register(checker ports.HealthChecker) error {
	return m.Called(checker).Error(0)
}

func (m *MockHealthRegistry) CheckAll(ctx context.Context) *ports.HealthResult {
	return ret[*ports.HealthResult](m.Called(ctx), 0)
}
