package app

import (
	"github.com/shopspring/decimal"

	"github.com/atelier-studio/atelier-service/internal/domain"
)

// Metrics records business events.
type Metrics interface {
	QuoteSubmitted(serviceType string, total decimal.Decimal)
	SubmitFailed(reason string)
	SetDraftsActive(n int)
	BaserowMirror(outcome string)
}

// Mirror outcomes reported to Metrics.BaserowMirror.
const (
	MirrorOK      = "ok"
	MirrorFailed  = "failed"
	MirrorSkipped = "skipped"
)

type noopMetrics struct{}

func (noopMetrics) QuoteSubmitted(string, decimal.Decimal) {}
func (noopMetrics) SubmitFailed(string)                    {}
func (noopMetrics) SetDraftsActive(int)                    {}
func (noopMetrics) BaserowMirror(string)                   {}

// failureReason buckets an error for the submit failure counter.
func failureReason(err error) string {
	switch {
	case domain.IsValidation(err):
		return "validation"
	case domain.IsConflict(err):
		return "conflict"
	case domain.IsNotFound(err):
		return "not_found"
	case domain.IsUnavailable(err):
		return "unavailable"
	default:
		return "internal"
	}
}
