package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

// QuoteCreatedMessage is returned with every successful submission.
const QuoteCreatedMessage = "Orçamento criado com sucesso!"

// Quote listing page sizes. The maximum is one past the largest page the
// API serves so callers can probe for a following page.
const (
	DefaultQuotePageSize = 20
	MaxQuotePageSize     = 101
)

// DashboardInvalidator drops cached dashboard summaries of a user.
type DashboardInvalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// QuoteService submits, lists and prices quotes.
type QuoteService struct {
	quotes        ports.QuoteRepository
	catalog       *domain.Catalog
	calc          *domain.Calculator
	tables        ports.TableStore
	mirrorTableID string
	flags         ports.FeatureFlags
	dashboard     DashboardInvalidator
	metrics       Metrics
	exec          *Executor
	logger        *slog.Logger
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Quotes     ports.QuoteRepository
	Catalog    *domain.Catalog
	Calculator *domain.Calculator

	// Tables and MirrorTableID enable copying submitted quotes to an
	// external table when the mirror flag is on. Both are optional.
	Tables        ports.TableStore
	MirrorTableID string

	Flags     ports.FeatureFlags
	Dashboard DashboardInvalidator
	Metrics   Metrics
	Executor  *Executor
	Logger    *slog.Logger
}

// NewQuoteService creates a quote service. It panics without a repository
// or catalog.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Quotes == nil {
		panic("app: quote service requires a quote repository")
	}

	if cfg.Catalog == nil {
		panic("app: quote service requires a catalog")
	}

	if cfg.Calculator == nil {
		cfg.Calculator = domain.NewCalculator(cfg.Catalog)
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.Metrics == nil {
		cfg.Metrics = noopMetrics{}
	}

	if cfg.Executor == nil {
		cfg.Executor = NewExecutor(cfg.Logger)
	}

	return &QuoteService{
		quotes:        cfg.Quotes,
		catalog:       cfg.Catalog,
		calc:          cfg.Calculator,
		tables:        cfg.Tables,
		mirrorTableID: cfg.MirrorTableID,
		flags:         cfg.Flags,
		dashboard:     cfg.Dashboard,
		metrics:       cfg.Metrics,
		exec:          cfg.Executor,
		logger:        cfg.Logger.With(slog.String("component", "app.QuoteService")),
	}
}

// Calculator returns the calculator quotes are priced with.
func (s *QuoteService) Calculator() *domain.Calculator {
	return s.calc
}

// SubmitQuote persists a quote after checking it against the catalog.
func (s *QuoteService) SubmitQuote(ctx context.Context, sub domain.QuoteSubmission) (*domain.QuoteCreated, error) {
	op := Operation[domain.QuoteSubmission, *domain.QuoteCreated, *domain.QuoteCreated, *domain.QuoteCreated]{
		Name:     "submit_quote",
		Validate: s.validateSubmission,
		Perform: func(ctx context.Context, sub domain.QuoteSubmission) (*domain.QuoteCreated, error) {
			return s.quotes.SubmitQuote(ctx, sub)
		},
		Verify:  verifyCreated,
		Archive: s.archiveSubmission,
		Respond: func(_ context.Context, _ domain.QuoteSubmission, created *domain.QuoteCreated) (*domain.QuoteCreated, error) {
			created.Message = QuoteCreatedMessage

			return created, nil
		},
	}

	created, err := Execute(ctx, s.exec, op, normalizeSubmission(sub))
	if err != nil {
		s.metrics.SubmitFailed(failureReason(err))

		return nil, err
	}

	return created, nil
}

func normalizeSubmission(sub domain.QuoteSubmission) domain.QuoteSubmission {
	sub.Client.Name = strings.TrimSpace(sub.Client.Name)
	sub.Client.Email = normalizeEmail(sub.Client.Email)
	sub.Client.Phone = strings.TrimSpace(sub.Client.Phone)
	sub.Description = strings.TrimSpace(sub.Description)

	return sub
}

func (s *QuoteService) validateSubmission(_ context.Context, sub domain.QuoteSubmission) error {
	switch {
	case sub.UserID == "":
		return domain.NewUnauthorizedError("missing user")
	case sub.Client.Name == "":
		return domain.NewValidationError("clientName", "is required")
	case sub.Client.Email == "":
		return domain.NewValidationError("clientEmail", "is required")
	case validate.Var(sub.Client.Email, "email") != nil:
		return domain.NewValidationErrorWithValue("clientEmail", "must be a valid email address", sub.Client.Email)
	case sub.AgeCategory == "":
		return domain.NewValidationError("ageCategory", "is required")
	case !sub.ServiceType.Valid():
		return domain.NewValidationErrorWithValue("serviceType", "must be venda or aluguel", string(sub.ServiceType))
	case !sub.TotalValue.IsPositive():
		return domain.NewValidationError("totalValue", "must be positive")
	}

	if _, ok := s.catalog.AgeCategory(sub.AgeCategory); !ok {
		return domain.NewValidationErrorWithValue("ageCategory", "unknown age category", sub.AgeCategory)
	}

	total, err := s.recompute(sub)
	if err != nil {
		return err
	}

	if total.GreaterThan(domain.MaxAmount) {
		return domain.NewValidationErrorWithValue("totalValue", "exceeds "+domain.MaxAmount.StringFixed(2), total.StringFixed(2))
	}

	if !total.Equal(sub.TotalValue) {
		return domain.NewValidationErrorWithValue(
			"totalValue",
			"does not match the calculated total "+total.StringFixed(2),
			sub.TotalValue.StringFixed(2),
		)
	}

	return nil
}

// recompute prices the submitted lines against the catalog.
func (s *QuoteService) recompute(sub domain.QuoteSubmission) (decimal.Decimal, error) {
	q := domain.NewWorkingQuote()
	q.SetAgeCategory(sub.AgeCategory)

	for i, line := range sub.Lines {
		field := fmt.Sprintf("lines[%d]", i)

		item, ok := s.catalog.Item(line.Category, line.Name)
		if !ok {
			return decimal.Zero, domain.NewValidationErrorWithValue(field, "unknown catalog item", line.Name)
		}

		if line.Quantity < 1 {
			return decimal.Zero, domain.NewValidationError(field+".quantity", "must be at least 1")
		}

		if line.Quantity > domain.MaxLineQuantity {
			return decimal.Zero, domain.NewValidationErrorWithValue(field+".quantity",
				fmt.Sprintf("must be at most %d", domain.MaxLineQuantity), line.Quantity)
		}

		if !line.UnitPrice.Equal(item.UnitPrice) {
			return decimal.Zero, domain.NewValidationErrorWithValue(field+".unitPrice", "does not match the catalog", line.UnitPrice.StringFixed(2))
		}

		added := q.AddItem(item)
		q.SetQuantity(added.ID, line.Quantity)

		priced, _ := q.Line(added.ID)
		if !line.Total.Equal(priced.Total) {
			return decimal.Zero, domain.NewValidationErrorWithValue(field+".total", "must be quantity times unit price", line.Total.StringFixed(2))
		}
	}

	return s.calc.Total(q), nil
}

func verifyCreated(_ context.Context, sub domain.QuoteSubmission, created *domain.QuoteCreated) (*domain.QuoteCreated, error) {
	if created == nil || created.QuoteID == "" {
		return nil, errors.New("repository returned no quote id")
	}

	if !created.Total.Equal(sub.TotalValue) {
		return nil, fmt.Errorf("stored total %s differs from submitted %s", created.Total.StringFixed(2), sub.TotalValue.StringFixed(2))
	}

	return created, nil
}

// archiveSubmission runs the side effects of a stored quote. None of them
// can fail the submission: the quote is already committed.
func (s *QuoteService) archiveSubmission(ctx context.Context, sub domain.QuoteSubmission, created *domain.QuoteCreated) error {
	if s.dashboard != nil {
		if err := s.dashboard.Invalidate(ctx, sub.UserID); err != nil {
			s.logger.WarnContext(ctx, "dashboard cache invalidation failed",
				slog.String("user_id", sub.UserID),
				slog.Any("error", err),
			)
		}
	}

	s.mirror(ctx, sub, created)
	s.metrics.QuoteSubmitted(string(sub.ServiceType), created.Total)

	s.logger.InfoContext(ctx, "quote submitted",
		slog.String("quote_id", created.QuoteID),
		slog.String("client_id", created.ClientID),
		slog.String("total", created.Total.StringFixed(2)),
	)

	return nil
}

func (s *QuoteService) mirror(ctx context.Context, sub domain.QuoteSubmission, created *domain.QuoteCreated) {
	if s.flags == nil || !s.flags.IsEnabled(ctx, ports.FlagMirrorQuotesToBaserow, false) {
		return
	}

	if s.tables == nil || s.mirrorTableID == "" {
		s.metrics.BaserowMirror(MirrorSkipped)

		return
	}

	row := ports.TableRow{
		"Quote ID":     created.QuoteID,
		"Cliente":      sub.Client.Name,
		"Email":        sub.Client.Email,
		"Telefone":     sub.Client.Phone,
		"Serviço":      sub.ServiceType.Label(),
		"Faixa Etária": s.ageLabel(sub.AgeCategory),
		"Descrição":    sub.Description,
		"Itens":        len(sub.Lines),
		"Total":        created.Total.StringFixed(2),
		"Status":       domain.StatusPending,
	}

	if _, err := s.tables.CreateRow(ctx, s.mirrorTableID, row); err != nil {
		s.metrics.BaserowMirror(MirrorFailed)
		s.logger.WarnContext(ctx, "quote mirror failed",
			slog.String("quote_id", created.QuoteID),
			slog.String("table_id", s.mirrorTableID),
			slog.Any("error", err),
		)

		return
	}

	s.metrics.BaserowMirror(MirrorOK)
}

func (s *QuoteService) ageLabel(code string) string {
	if age, ok := s.catalog.AgeCategory(code); ok {
		return age.Label
	}

	return code
}

// ListQuotes returns a page of the user's quotes, newest first.
func (s *QuoteService) ListQuotes(ctx context.Context, userID string, page ports.QueryPage) ([]domain.Quote, error) {
	switch {
	case page.Limit <= 0:
		page.Limit = DefaultQuotePageSize
	case page.Limit > MaxQuotePageSize:
		page.Limit = MaxQuotePageSize
	}

	quotes, err := s.quotes.ListQuotes(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	return quotes, nil
}

// GetQuote returns one of the user's quotes with its items.
func (s *QuoteService) GetQuote(ctx context.Context, userID, quoteID string) (*domain.Quote, error) {
	if quoteID == "" {
		return nil, domain.NewValidationError("id", "cannot be empty")
	}

	quote, err := s.quotes.GetQuote(ctx, userID, quoteID)
	if err != nil {
		return nil, fmt.Errorf("getting quote: %w", err)
	}

	return quote, nil
}

// PreviewLine is a catalog selection with a quantity.
type PreviewLine struct {
	Category string
	Name     string
	Quantity int
}

// QuotePreview is a priced working quote that was never stored.
type QuotePreview struct {
	AgeCategory string
	Lines       []domain.QuoteLine
	Breakdown   domain.Breakdown
}

// Preview replays selections into a fresh working quote and prices it.
// Quantities below one are raised to one.
func (s *QuoteService) Preview(_ context.Context, ageCategory string, lines []PreviewLine) (*QuotePreview, error) {
	if ageCategory != "" {
		if _, ok := s.catalog.AgeCategory(ageCategory); !ok {
			return nil, domain.NewValidationErrorWithValue("ageCategory", "unknown age category", ageCategory)
		}
	}

	q := domain.NewWorkingQuote()
	q.SetAgeCategory(ageCategory)

	for i, line := range lines {
		item, ok := s.catalog.Item(line.Category, line.Name)
		if !ok {
			return nil, domain.NewValidationErrorWithValue(fmt.Sprintf("items[%d]", i), "unknown catalog item", line.Name)
		}

		added := q.AddItem(item)
		q.SetQuantity(added.ID, line.Quantity)
	}

	return &QuotePreview{
		AgeCategory: ageCategory,
		Lines:       q.Lines(),
		Breakdown:   s.calc.Breakdown(q),
	}, nil
}
