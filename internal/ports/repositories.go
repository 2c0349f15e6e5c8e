// Package ports defines the contracts the application layer depends on.
// Adapters implement them; use cases never see SQL rows, Redis replies or
// HTTP payloads of downstream services.
//
// Conventions:
//   - context first on every method
//   - domain types in and out
//   - failures reported with domain errors (ErrNotFound, ErrConflict, ...)
package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/atelier-studio/atelier-service/internal/domain"
)

// UserRepository persists accounts.
type UserRepository interface {
	// CreateUser stores a new user. Returns domain.ErrConflict when the email is taken.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUserByEmail returns domain.ErrNotFound when no account matches.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetUserByID returns domain.ErrNotFound when no account matches.
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// QueryPage is a keyset page request ordered by creation time, newest first.
// A zero After means the first page.
type QueryPage struct {
	After   time.Time
	AfterID string
	Limit   int
}

// QuoteRepository persists submitted quotes.
type QuoteRepository interface {
	// SubmitQuote finds or creates the client by (user, email), then inserts
	// the quote with status Pendente and its items, all in one transaction.
	SubmitQuote(ctx context.Context, sub domain.QuoteSubmission) (*domain.QuoteCreated, error)

	// ListQuotes returns up to page.Limit quotes of a user, newest first,
	// with client names joined.
	ListQuotes(ctx context.Context, userID string, page QueryPage) ([]domain.Quote, error)

	// GetQuote returns a quote with its items. Quotes of other users are not found.
	GetQuote(ctx context.Context, userID, quoteID string) (*domain.Quote, error)
}

// DashboardRepository answers the aggregate queries behind the home and
// dashboard screens. Every method is scoped to one user.
type DashboardRepository interface {
	// ListRecentOrders returns the newest orders with client and product names.
	ListRecentOrders(ctx context.Context, userID string, limit int) ([]domain.Order, error)

	// ListOrdersDueOn returns orders whose due date falls on day.
	ListOrdersDueOn(ctx context.Context, userID string, day time.Time, limit int) ([]domain.Order, error)

	// ListRecentQuotes returns the newest quotes with client names.
	ListRecentQuotes(ctx context.Context, userID string, limit int) ([]domain.Quote, error)

	// SumApprovedQuoteValue sums total values of approved quotes created at or after since.
	SumApprovedQuoteValue(ctx context.Context, userID string, since time.Time) (decimal.Decimal, error)

	// CountActiveOrders counts orders in production or awaiting fitting.
	CountActiveOrders(ctx context.Context, userID string) (int, error)

	// CountDistinctClientsWithStatus counts distinct clients having an order in status.
	CountDistinctClientsWithStatus(ctx context.Context, userID, status string) (int, error)
}
