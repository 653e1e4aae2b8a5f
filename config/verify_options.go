package config

import (
	"log/slog"

	"github.com/tdda-go/constraints/verify"
)

// VerifyOption configures a verify.Policy built by NewVerifyPolicy.
type VerifyOption func(*verify.Policy)

// NewVerifyPolicy builds a verify.Policy from options, starting from
// verify.Policy{}'s defaults (strict comparisons, every outcome kept).
func NewVerifyPolicy(opts ...VerifyOption) verify.Policy {
	var p verify.Policy
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithEpsilon sets the fuzzy-comparison tolerance for Min/Max. Zero is
// strict (exact bound comparison).
func WithEpsilon(epsilon float64) VerifyOption {
	return func(p *verify.Policy) { p.Epsilon = epsilon }
}

// WithTypeChecking selects Sloppy or Strict Type-constraint enforcement.
func WithTypeChecking(tc verify.TypeChecking) VerifyOption {
	return func(p *verify.Policy) { p.TypeChecking = tc }
}

// WithReportMode selects which outcomes Verify includes in its Report.
func WithReportMode(mode verify.ReportMode) VerifyOption {
	return func(p *verify.Policy) { p.ReportMode = mode }
}

// WithVerifyWorkers bounds verification concurrency. Zero defaults to
// one worker per field.
func WithVerifyWorkers(n int) VerifyOption {
	return func(p *verify.Policy) { p.Workers = n }
}

// WithVerifyLogger attaches a logger for verification progress output.
func WithVerifyLogger(logger *slog.Logger) VerifyOption {
	return func(p *verify.Policy) { p.Logger = logger }
}
