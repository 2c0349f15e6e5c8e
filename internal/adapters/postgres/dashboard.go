package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

// DashboardRepository implements ports.DashboardRepository.
type DashboardRepository struct {
	db *sql.DB
}

var _ ports.DashboardRepository = (*DashboardRepository)(nil)

// NewDashboardRepository creates a dashboard repository.
func NewDashboardRepository(db *sql.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

const orderColumns = `
	o.id, o.user_id, o.client_id, c.name, COALESCE(o.product_id::text, ''), COALESCE(p.name, ''),
	o.status, o.due_date, o.value, o.priority, COALESCE(o.age_category, ''), o.created_at, o.updated_at`

const orderJoins = `
	FROM orders o
	JOIN clients c ON c.id = o.client_id
	LEFT JOIN products p ON p.id = o.product_id`

// ListRecentOrders implements ports.DashboardRepository.
func (r *DashboardRepository) ListRecentOrders(ctx context.Context, userID string, limit int) ([]domain.Order, error) {
	ctx, span := startSpan(ctx, "ListRecentOrders")
	defer span.End()

	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+orderJoins+`
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fail(span, mapError(err, "order", ""))
	}

	orders, err := collectOrders(rows)

	return orders, fail(span, err)
}

// ListOrdersDueOn implements ports.DashboardRepository. The day boundaries
// are taken in day's location.
func (r *DashboardRepository) ListOrdersDueOn(ctx context.Context, userID string, day time.Time, limit int) ([]domain.Order, error) {
	ctx, span := startSpan(ctx, "ListOrdersDueOn")
	defer span.End()

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+orderJoins+`
		WHERE o.user_id = $1 AND o.due_date >= $2 AND o.due_date < $3
		ORDER BY o.due_date, o.id
		LIMIT $4`, userID, start, end, limit)
	if err != nil {
		return nil, fail(span, mapError(err, "order", ""))
	}

	orders, err := collectOrders(rows)

	return orders, fail(span, err)
}

// ListRecentQuotes implements ports.DashboardRepository.
func (r *DashboardRepository) ListRecentQuotes(ctx context.Context, userID string, limit int) ([]domain.Quote, error) {
	ctx, span := startSpan(ctx, "ListRecentQuotes")
	defer span.End()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+quoteColumns+`
		FROM quotes q JOIN clients c ON c.id = q.client_id
		WHERE q.user_id = $1
		ORDER BY q.created_at DESC, q.id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fail(span, mapError(err, "quote", ""))
	}

	quotes, err := collectQuotes(rows)

	return quotes, fail(span, err)
}

// SumApprovedQuoteValue implements ports.DashboardRepository.
func (r *DashboardRepository) SumApprovedQuoteValue(ctx context.Context, userID string, since time.Time) (decimal.Decimal, error) {
	ctx, span := startSpan(ctx, "SumApprovedQuoteValue")
	defer span.End()

	var sum decimal.Decimal

	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_value), 0)
		FROM quotes
		WHERE user_id = $1 AND status = $2 AND created_at >= $3`,
		userID, domain.StatusApproved, since).Scan(&sum)
	if err != nil {
		return decimal.Zero, fail(span, mapError(err, "quote", ""))
	}

	return sum, nil
}

// CountActiveOrders implements ports.DashboardRepository.
func (r *DashboardRepository) CountActiveOrders(ctx context.Context, userID string) (int, error) {
	ctx, span := startSpan(ctx, "CountActiveOrders")
	defer span.End()

	var n int

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders
		WHERE user_id = $1 AND status = ANY($2)`,
		userID, pq.Array(domain.ActiveOrderStatuses())).Scan(&n)
	if err != nil {
		return 0, fail(span, mapError(err, "order", ""))
	}

	return n, nil
}

// CountDistinctClientsWithStatus implements ports.DashboardRepository.
func (r *DashboardRepository) CountDistinctClientsWithStatus(ctx context.Context, userID, status string) (int, error) {
	ctx, span := startSpan(ctx, "CountDistinctClientsWithStatus")
	defer span.End()

	var n int

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT client_id) FROM orders
		WHERE user_id = $1 AND status = $2`,
		userID, status).Scan(&n)
	if err != nil {
		return 0, fail(span, mapError(err, "order", ""))
	}

	return n, nil
}

func collectOrders(rows *sql.Rows) ([]domain.Order, error) {
	defer func() { _ = rows.Close() }()

	orders := make([]domain.Order, 0)

	for rows.Next() {
		var o domain.Order

		err := rows.Scan(&o.ID, &o.UserID, &o.ClientID, &o.ClientName, &o.ProductID, &o.ProductName,
			&o.Status, &o.DueDate, &o.Value, &o.Priority, &o.AgeCategory, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}
