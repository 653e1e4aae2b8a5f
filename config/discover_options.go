package config

import (
	"log/slog"

	"github.com/tdda-go/constraints/discover"
)

// DiscoverOption configures a discover.Policy built by NewDiscoverPolicy.
type DiscoverOption func(*discover.Policy)

// NewDiscoverPolicy builds a discover.Policy from options, starting from
// discover.Policy{}'s defaults.
func NewDiscoverPolicy(opts ...DiscoverOption) discover.Policy {
	var p discover.Policy
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithAllowedValuesCap sets the distinct-value cap K for AllowedValues
// discovery. Zero (the default) uses discover.DefaultAllowedValuesCap.
func WithAllowedValuesCap(k int) DiscoverOption {
	return func(p *discover.Policy) { p.K = k }
}

// WithAllowedValuesAboveCap controls whether AllowedValues is still
// emitted when distinct_count exceeds K, using a possibly-truncated
// sample. Default false.
func WithAllowedValuesAboveCap(enabled bool) DiscoverOption {
	return func(p *discover.Policy) { p.AllowedValuesAboveCap = enabled }
}

// WithRegexInduction enables Rex discovery for string fields.
func WithRegexInduction(enabled bool) DiscoverOption {
	return func(p *discover.Policy) { p.InduceRegex = enabled }
}

// WithAlternationCap bounds the regex inducer's literal-folding width.
// Zero uses induce.DefaultAlternationCap.
func WithAlternationCap(n int) DiscoverOption {
	return func(p *discover.Policy) { p.AlternationCap = n }
}

// WithDiscoverWorkers bounds discovery concurrency. Zero defaults to one
// worker per field.
func WithDiscoverWorkers(n int) DiscoverOption {
	return func(p *discover.Policy) { p.Workers = n }
}

// WithDiscoverLogger attaches a logger for discovery progress output.
func WithDiscoverLogger(logger *slog.Logger) DiscoverOption {
	return func(p *discover.Policy) { p.Logger = logger }
}
