// Package flags evaluates feature flags from static configuration.
package flags

import (
	"context"
	"strconv"
	"strings"

	"github.com/atelier-studio/atelier-service/internal/ports"
)

// Static implements ports.FeatureFlags over the "features" config map.
// Values may be native YAML scalars or strings coming from environment
// overrides.
type Static struct {
	values map[string]any
}

var _ ports.FeatureFlags = (*Static)(nil)

// NewStatic copies values; later changes to the map are not observed.
func NewStatic(values map[string]any) *Static {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[strings.ToLower(k)] = v
	}

	return &Static{values: copied}
}

// IsEnabled implements ports.FeatureFlags.
func (s *Static) IsEnabled(_ context.Context, flag string, defaultValue bool) bool {
	switch v := s.values[strings.ToLower(flag)].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	}

	return defaultValue
}

// GetInt implements ports.FeatureFlags.
func (s *Static) GetInt(_ context.Context, flag string, defaultValue int) int {
	switch v := s.values[strings.ToLower(flag)].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v) //nolint:gosec // flag values are small
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}

	return defaultValue
}
