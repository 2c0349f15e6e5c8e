// Package domain holds the atelier's business vocabulary: the priced
// catalog, the working quote and its calculator, persisted entities, and
// the error taxonomy adapters translate into transport-level responses.
//
// Nothing in this package performs I/O. Amounts are decimal.Decimal so
// repeated additions never drift the way binary floats would.
package domain
