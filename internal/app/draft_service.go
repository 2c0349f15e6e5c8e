package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atelier-studio/atelier-service/internal/domain"
)

// DraftView is a priced snapshot of a draft.
type DraftView struct {
	ID          string
	AgeCategory string
	Lines       []domain.QuoteLine
	Breakdown   domain.Breakdown
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DraftSubmission carries what a draft lacks to become a quote.
type DraftSubmission struct {
	Client      domain.ClientIdentity
	ServiceType domain.ServiceType
	Description string
}

// QuoteDraftService edits working quotes before submission.
type QuoteDraftService struct {
	store   *DraftStore
	catalog *domain.Catalog
	quotes  *QuoteService
	logger  *slog.Logger
}

// NewQuoteDraftService creates a draft service. Submissions go through quotes.
func NewQuoteDraftService(store *DraftStore, catalog *domain.Catalog, quotes *QuoteService, logger *slog.Logger) *QuoteDraftService {
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteDraftService{
		store:   store,
		catalog: catalog,
		quotes:  quotes,
		logger:  logger.With(slog.String("component", "app.QuoteDraftService")),
	}
}

// Create opens an empty draft.
func (s *QuoteDraftService) Create(ctx context.Context, userID string) (*DraftView, error) {
	d, err := s.store.Create(userID)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "draft created", slog.String("draft_id", d.ID))

	return s.Get(ctx, userID, d.ID)
}

// Get returns a draft.
func (s *QuoteDraftService) Get(_ context.Context, userID, draftID string) (*DraftView, error) {
	var v *DraftView

	err := s.store.View(userID, draftID, func(d *Draft) error {
		v = s.view(d)

		return nil
	})

	return v, err
}

// SetAgeCategory selects the age tier. An empty code clears it.
func (s *QuoteDraftService) SetAgeCategory(_ context.Context, userID, draftID, code string) (*DraftView, error) {
	if code != "" {
		if _, ok := s.catalog.AgeCategory(code); !ok {
			return nil, domain.NewValidationErrorWithValue("ageCategory", "unknown age category", code)
		}
	}

	return s.update(userID, draftID, func(q *domain.WorkingQuote) error {
		q.SetAgeCategory(code)

		return nil
	})
}

// AddItem appends a catalog item as a new line with quantity one.
func (s *QuoteDraftService) AddItem(_ context.Context, userID, draftID, category, name string) (domain.QuoteLine, *DraftView, error) {
	item, ok := s.catalog.Item(category, name)
	if !ok {
		return domain.QuoteLine{}, nil, domain.NewNotFoundError("catalog item", category+"/"+name)
	}

	var line domain.QuoteLine

	v, err := s.update(userID, draftID, func(q *domain.WorkingQuote) error {
		line = q.AddItem(item)

		return nil
	})
	if err != nil {
		return domain.QuoteLine{}, nil, err
	}

	return line, v, nil
}

// SetQuantity changes a line's quantity. Unknown lines are ignored.
func (s *QuoteDraftService) SetQuantity(_ context.Context, userID, draftID, lineID string, quantity int) (*DraftView, error) {
	if quantity > domain.MaxLineQuantity {
		return nil, domain.NewValidationErrorWithValue("quantity",
			fmt.Sprintf("must be at most %d", domain.MaxLineQuantity), quantity)
	}

	return s.update(userID, draftID, func(q *domain.WorkingQuote) error {
		q.SetQuantity(lineID, quantity)

		return nil
	})
}

// RemoveItem drops a line. Unknown lines are ignored.
func (s *QuoteDraftService) RemoveItem(_ context.Context, userID, draftID, lineID string) (*DraftView, error) {
	return s.update(userID, draftID, func(q *domain.WorkingQuote) error {
		q.RemoveItem(lineID)

		return nil
	})
}

// Discard deletes a draft.
func (s *QuoteDraftService) Discard(ctx context.Context, userID, draftID string) error {
	if err := s.store.Delete(userID, draftID); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "draft discarded", slog.String("draft_id", draftID))

	return nil
}

// Submit sends a draft to the quote service. On success the draft is gone;
// on failure it stays editable.
func (s *QuoteDraftService) Submit(ctx context.Context, userID, draftID string, in DraftSubmission) (*domain.QuoteCreated, error) {
	var sub domain.QuoteSubmission

	err := s.store.BeginSubmit(userID, draftID, func(d *Draft) error {
		total := s.quotes.Calculator().Total(d.Quote)
		sub = domain.SubmissionFromWorkingQuote(userID, in.Client, in.ServiceType, in.Description, d.Quote, total)

		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.quotes.SubmitQuote(ctx, sub)
	s.store.EndSubmit(draftID, err == nil)

	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "draft submitted",
		slog.String("draft_id", draftID),
		slog.String("quote_id", created.QuoteID),
	)

	return created, nil
}

func (s *QuoteDraftService) update(userID, draftID string, fn func(*domain.WorkingQuote) error) (*DraftView, error) {
	var v *DraftView

	err := s.store.Update(userID, draftID, func(d *Draft) error {
		if err := fn(d.Quote); err != nil {
			return err
		}

		v = s.view(d)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return v, nil
}

// view must be called under the store lock.
func (s *QuoteDraftService) view(d *Draft) *DraftView {
	return &DraftView{
		ID:          d.ID,
		AgeCategory: d.Quote.AgeCategory(),
		Lines:       d.Quote.Lines(),
		Breakdown:   s.quotes.Calculator().Breakdown(d.Quote),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
