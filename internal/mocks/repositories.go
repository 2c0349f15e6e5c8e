package mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

// MockUserRepository mocks ports.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock that asserts its expectations on cleanup.
func NewMockUserRepository(t TestingT) *MockUserRepository {
	m := &MockUserRepository{}
	register(&m.Mock, t)

	return m
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)

	return ret[*domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)

	return ret[*domain.User](args, 0), args.Error(1)
}

// MockQuoteRepository mocks ports.QuoteRepository.
type MockQuoteRepository struct {
	mock.Mock
}

// NewMockQuoteRepository creates a mock that asserts its expectations on cleanup.
func NewMockQuoteRepository(t TestingT) *MockQuoteRepository {
	m := &MockQuoteRepository{}
	register(&m.Mock, t)

	return m
}

func (m *MockQuoteRepository) SubmitQuote(ctx context.Context, sub domain.QuoteSubmission) (*domain.QuoteCreated, error) {
	args := m.Called(ctx, sub)

	return ret[*domain.QuoteCreated](args, 0), args.Error(1)
}

func (m *MockQuoteRepository) ListQuotes(ctx context.Context, userID string, page ports.QueryPage) ([]domain.Quote, error) {
	args := m.Called(ctx, userID, page)

	return ret[[]domain.Quote](args, 0), args.Error(1)
}

func (m *MockQuoteRepository) GetQuote(ctx context.Context, userID, quoteID string) (*domain.Quote, error) {
	args := m.Called(ctx, userID, quoteID)

	return ret[*domain.Quote](args, 0), args.Error(1)
}

// MockDashboardRepository mocks ports.DashboardRepository.
type MockDashboardRepository struct {
	mock.Mock
}

// NewMockDashboardRepository creates a mock that asserts its expectations on cleanup.
func NewMockDashboardRepository(t TestingT) *MockDashboardRepository {
	m := &MockDashboardRepository{}
	register(&m.Mock, t)

	return m
}

func (m *MockDashboardRepository) ListRecentOrders(ctx context.Context, userID string, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, userID, limit)

	return ret[[]domain.Order](args, 0), args.Error(1)
}

func (m *MockDashboardRepository) ListOrdersDueOn(ctx context.Context, userID string, day time.Time, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, userID, day, limit)

	return ret[[]domain.Order](args, 0), args.Error(1)
}

func (m *MockDashboardRepository) ListRecentQuotes(ctx context.Context, userID string, limit int) ([]domain.Quote, error) {
	args := m.Called(ctx, userID, limit)

	return ret[[]domain.Quote](args, 0), args.Error(1)
}

func (m *MockDashboardRepository) SumApprovedQuoteValue(ctx context.Context, userID string, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, since)

	return ret[decimal.Decimal](args, 0), args.Error(1)
}

func (m *MockDashboardRepository) CountActiveOrders(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)

	return args.Int(0), args.Error(1)
}

func (m *MockDashboardRepository) CountDistinctClientsWithStatus(ctx context.Context, userID, status string) (int, error) {
	args := m.Called(ctx, userID, status)

	return args.Int(0), args.Error(1)
}
