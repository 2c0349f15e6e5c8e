package domain

import "github.com/shopspring/decimal"

// Adjustment transforms a running total, e.g. a fee or a discount.
// Adjustments receive the subtotal already folded through earlier ones.
type Adjustment interface {
	Name() string
	Apply(q *WorkingQuote, running decimal.Decimal) decimal.Decimal
}

// Calculator derives monetary figures from a working quote.
type Calculator struct {
	catalog     *Catalog
	adjustments []Adjustment
}

// NewCalculator creates a calculator pricing against catalog. Adjustments
// run in order on top of the subtotal to produce the total.
func NewCalculator(catalog *Catalog, adjustments ...Adjustment) *Calculator {
	return &Calculator{catalog: catalog, adjustments: adjustments}
}

// BasePrice returns the base price for the quote's age category.
func (c *Calculator) BasePrice(q *WorkingQuote) decimal.Decimal {
	return c.catalog.BasePrice(q.AgeCategory())
}

// ItemsTotal sums the line totals.
func (c *Calculator) ItemsTotal(q *WorkingQuote) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range q.lines {
		sum = sum.Add(line.Total)
	}

	return sum
}

// Subtotal is the base price plus every line total.
func (c *Calculator) Subtotal(q *WorkingQuote) decimal.Decimal {
	return c.BasePrice(q).Add(c.ItemsTotal(q))
}

// Total is the subtotal folded through the registered adjustments.
// With none registered it equals the subtotal.
func (c *Calculator) Total(q *WorkingQuote) decimal.Decimal {
	total := c.Subtotal(q)
	for _, adj := range c.adjustments {
		total = adj.Apply(q, total)
	}

	return total
}

// Breakdown bundles the figures a quote screen shows.
type Breakdown struct {
	BasePrice  decimal.Decimal
	ItemsTotal decimal.Decimal
	Subtotal   decimal.Decimal
	Total      decimal.Decimal
}

// Breakdown computes every figure in one call.
func (c *Calculator) Breakdown(q *WorkingQuote) Breakdown {
	base := c.BasePrice(q)
	items := c.ItemsTotal(q)

	return Breakdown{
		BasePrice:  base,
		ItemsTotal: items,
		Subtotal:   base.Add(items),
		Total:      c.Total(q),
	}
}
