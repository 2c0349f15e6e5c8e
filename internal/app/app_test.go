package app

import (
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/atelier-studio/atelier-service/internal/domain"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustItem(t *testing.T, c *domain.Catalog, category, name string) domain.CatalogItem {
	t.Helper()

	item, ok := c.Item(category, name)
	require.True(t, ok, "catalog item %s/%s", category, name)

	return item
}

// recordingMetrics captures business events in memory.
type recordingMetrics struct {
	submitted []string
	failures  []string
	mirrors   []string
	drafts    []int
}

func (m *recordingMetrics) QuoteSubmitted(serviceType string, _ decimal.Decimal) {
	m.submitted = append(m.submitted, serviceType)
}

func (m *recordingMetrics) SubmitFailed(reason string) { m.failures = append(m.failures, reason) }
func (m *recordingMetrics) SetDraftsActive(n int)      { m.drafts = append(m.drafts, n) }
func (m *recordingMetrics) BaserowMirror(outcome string) {
	m.mirrors = append(m.mirrors, outcome)
}
