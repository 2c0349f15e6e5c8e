package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteLine is one quantity-adjustable entry in a working quote.
// Total always equals Quantity × UnitPrice and Quantity is never below 1.
type QuoteLine struct {
	ID        string
	Category  string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

func (l *QuoteLine) setQuantity(quantity int) {
	l.Quantity = max(quantity, 1)
	l.Total = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// WorkingQuote is the editable, unsaved aggregate of an age category and
// its line items. It is owned by a single editing session and does no locking.
type WorkingQuote struct {
	ageCategory string
	lines       []QuoteLine
	newID       func() string
}

// WorkingQuoteOption configures a WorkingQuote.
type WorkingQuoteOption func(*WorkingQuote)

// WithLineIDs overrides the line identifier generator.
func WithLineIDs(gen func() string) WorkingQuoteOption {
	return func(q *WorkingQuote) {
		q.newID = gen
	}
}

// NewWorkingQuote creates an empty working quote with no age category.
func NewWorkingQuote(opts ...WorkingQuoteOption) *WorkingQuote {
	q := &WorkingQuote{newID: uuid.NewString}
	for _, opt := range opts {
		opt(q)
	}

	return q
}

// AgeCategory returns the selected age category code, empty when unset.
func (q *WorkingQuote) AgeCategory() string {
	return q.ageCategory
}

// SetAgeCategory selects the age category. An empty code clears it.
func (q *WorkingQuote) SetAgeCategory(code string) {
	q.ageCategory = code
}

// AddItem appends a new line for item with quantity 1. Adding the same
// item twice yields two independent lines.
func (q *WorkingQuote) AddItem(item CatalogItem) QuoteLine {
	line := QuoteLine{
		ID:        q.newID(),
		Category:  item.Category,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
	}
	line.setQuantity(1)
	q.lines = append(q.lines, line)

	return line
}

// SetQuantity changes a line's quantity, clamping to a minimum of 1.
// Unknown ids are ignored.
func (q *WorkingQuote) SetQuantity(lineID string, quantity int) {
	if i := q.index(lineID); i >= 0 {
		q.lines[i].setQuantity(quantity)
	}
}

// RemoveItem drops a line. Unknown ids are ignored.
func (q *WorkingQuote) RemoveItem(lineID string) {
	if i := q.index(lineID); i >= 0 {
		q.lines = append(q.lines[:i], q.lines[i+1:]...)
	}
}

// Lines returns a copy of the lines in insertion order.
func (q *WorkingQuote) Lines() []QuoteLine {
	out := make([]QuoteLine, len(q.lines))
	copy(out, q.lines)

	return out
}

// Line returns the line with the given id.
func (q *WorkingQuote) Line(lineID string) (QuoteLine, bool) {
	if i := q.index(lineID); i >= 0 {
		return q.lines[i], true
	}

	return QuoteLine{}, false
}

// Len returns the number of lines.
func (q *WorkingQuote) Len() int {
	return len(q.lines)
}

func (q *WorkingQuote) index(lineID string) int {
	for i := range q.lines {
		if q.lines[i].ID == lineID {
			return i
		}
	}

	return -1
}
