package ports

import "context"

// Flag names evaluated by the application.
const (
	// FlagMirrorQuotesToBaserow copies every submitted quote into the
	// configured Baserow quotes table.
	FlagMirrorQuotesToBaserow = "mirror-quotes-to-baserow"

	// FlagDashboardCache enables caching of dashboard summaries.
	FlagDashboardCache = "dashboard-cache"

	// FlagRecentQuotesLimit sets how many quotes the dashboard lists.
	FlagRecentQuotesLimit = "dashboard-recent-quotes"
)

// FeatureFlags evaluates feature flags. Implementations return the default
// when a flag is unknown or cannot be evaluated.
type FeatureFlags interface {
	IsEnabled(ctx context.Context, flag string, defaultValue bool) bool
	GetInt(ctx context.Context, flag string, defaultValue int) int
}
