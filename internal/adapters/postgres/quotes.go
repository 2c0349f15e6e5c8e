package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

// QuoteRepository implements ports.QuoteRepository.
type QuoteRepository struct {
	db *sql.DB
}

var _ ports.QuoteRepository = (*QuoteRepository)(nil)

// NewQuoteRepository creates a quote repository.
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// SubmitQuote implements ports.QuoteRepository.
func (r *QuoteRepository) SubmitQuote(ctx context.Context, sub domain.QuoteSubmission) (*domain.QuoteCreated, error) {
	ctx, span := startSpan(ctx, "SubmitQuote", attribute.Int("quote.lines", len(sub.Lines)))
	defer span.End()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fail(span, fmt.Errorf("begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	var created domain.QuoteCreated

	// The no-op update makes RETURNING yield the existing row on conflict.
	err = tx.QueryRowContext(ctx, `
		INSERT INTO clients (user_id, name, email, phone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id`,
		sub.UserID, sub.Client.Name, sub.Client.Email, nullString(sub.Client.Phone),
	).Scan(&created.ClientID)
	if err != nil {
		return nil, fail(span, mapError(err, "client", sub.Client.Email))
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO quotes (client_id, user_id, status, total_value, description, service_type, age_category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, total_value`,
		created.ClientID, sub.UserID, domain.StatusPending, sub.TotalValue,
		nullString(sub.Description), nullString(string(sub.ServiceType)), nullString(sub.AgeCategory),
	).Scan(&created.QuoteID, &created.Total)
	if err != nil {
		return nil, fail(span, mapError(err, "quote", ""))
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quote_items (quote_id, position, product_id, custom_item_name, quantity, unit_price, total)
		VALUES ($1, $2, NULL, $3, $4, $5, $6)`)
	if err != nil {
		return nil, fail(span, fmt.Errorf("prepare quote items: %w", err))
	}
	defer func() { _ = stmt.Close() }()

	for i, line := range sub.Lines {
		if _, err := stmt.ExecContext(ctx, created.QuoteID, i, line.Name, line.Quantity, line.UnitPrice, line.Total); err != nil {
			return nil, fail(span, fmt.Errorf("insert quote item %d: %w", i, mapError(err, "quote item", line.Name)))
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fail(span, fmt.Errorf("commit: %w", err))
	}

	span.SetAttributes(attribute.String("quote.id", created.QuoteID))

	return &created, nil
}

const quoteColumns = `
	q.id, q.user_id, q.client_id, c.name, c.email, q.status, q.total_value,
	q.description, q.service_type, q.age_category, q.created_at, q.updated_at`

// ListQuotes implements ports.QuoteRepository.
func (r *QuoteRepository) ListQuotes(ctx context.Context, userID string, page ports.QueryPage) ([]domain.Quote, error) {
	ctx, span := startSpan(ctx, "ListQuotes", attribute.Int("page.limit", page.Limit))
	defer span.End()

	var (
		rows *sql.Rows
		err  error
	)

	if page.After.IsZero() {
		rows, err = r.db.QueryContext(ctx, `
			SELECT `+quoteColumns+`
			FROM quotes q JOIN clients c ON c.id = q.client_id
			WHERE q.user_id = $1
			ORDER BY q.created_at DESC, q.id DESC
			LIMIT $2`, userID, page.Limit)
	} else {
		rows, err = r.db.QueryContext(ctx, `
			SELECT `+quoteColumns+`
			FROM quotes q JOIN clients c ON c.id = q.client_id
			WHERE q.user_id = $1 AND (q.created_at, q.id) < ($2, $3::uuid)
			ORDER BY q.created_at DESC, q.id DESC
			LIMIT $4`, userID, page.After, page.AfterID, page.Limit)
	}

	if err != nil {
		return nil, fail(span, mapError(err, "quote", ""))
	}

	quotes, err := collectQuotes(rows)

	return quotes, fail(span, err)
}

// GetQuote implements ports.QuoteRepository.
func (r *QuoteRepository) GetQuote(ctx context.Context, userID, quoteID string) (*domain.Quote, error) {
	ctx, span := startSpan(ctx, "GetQuote", attribute.String("quote.id", quoteID))
	defer span.End()

	row := r.db.QueryRowContext(ctx, `
		SELECT `+quoteColumns+`
		FROM quotes q JOIN clients c ON c.id = q.client_id
		WHERE q.id = $1 AND q.user_id = $2`, quoteID, userID)

	quote, err := scanQuote(row)
	if err != nil {
		return nil, fail(span, mapError(err, "quote", quoteID))
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, quote_id, COALESCE(product_id::text, ''), COALESCE(custom_item_name, ''),
		       quantity, unit_price, total
		FROM quote_items WHERE quote_id = $1
		ORDER BY position`, quoteID)
	if err != nil {
		return nil, fail(span, mapError(err, "quote item", quoteID))
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var it domain.QuoteItem
		if err := rows.Scan(&it.ID, &it.QuoteID, &it.ProductID, &it.Name, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, fail(span, fmt.Errorf("scan quote item: %w", err))
		}

		quote.Items = append(quote.Items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fail(span, fmt.Errorf("iterate quote items: %w", err))
	}

	return quote, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuote(s scanner) (*domain.Quote, error) {
	var (
		q                                     domain.Quote
		description, serviceType, ageCategory sql.NullString
	)

	err := s.Scan(&q.ID, &q.UserID, &q.ClientID, &q.ClientName, &q.ClientEmail, &q.Status, &q.TotalValue,
		&description, &serviceType, &ageCategory, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}

	q.Description = description.String
	q.ServiceType = domain.ServiceType(serviceType.String)
	q.AgeCategory = ageCategory.String

	return &q, nil
}

func collectQuotes(rows *sql.Rows) ([]domain.Quote, error) {
	defer func() { _ = rows.Close() }()

	quotes := make([]domain.Quote, 0)

	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}

		quotes = append(quotes, *q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return quotes, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
