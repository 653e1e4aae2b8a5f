package config

import (
	"log/slog"

	"github.com/tdda-go/constraints/detect"
	"github.com/tdda-go/constraints/field"
)

// DetectOption configures a detect.Policy built by NewDetectPolicy.
type DetectOption func(*detect.Policy)

// NewDetectPolicy builds a detect.Policy from options, starting from
// detect.Policy{}'s defaults (strict comparisons, failing rows only).
func NewDetectPolicy(opts ...DetectOption) detect.Policy {
	var p detect.Policy
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithDetectEpsilon sets the fuzzy-comparison tolerance for Min/Max,
// matching WithEpsilon's formula for verify.Policy.
func WithDetectEpsilon(epsilon float64) DetectOption {
	return func(p *detect.Policy) { p.Epsilon = epsilon }
}

// WithTyping selects Sloppy or Strict Type-constraint and numeric
// conflation handling.
func WithTyping(typing field.TypingPolicy) DetectOption {
	return func(p *detect.Policy) { p.Typing = typing }
}

// WithWriteAll retains passing rows (n_failures == 0) in the result.
// Default false: only failing rows are returned.
func WithWriteAll(enabled bool) DetectOption {
	return func(p *detect.Policy) { p.WriteAll = enabled }
}

// WithPerConstraint adds one boolean column per (field, constraint) to
// every retained row.
func WithPerConstraint(enabled bool) DetectOption {
	return func(p *detect.Policy) { p.PerConstraint = enabled }
}

// WithOutputFields restricts which dataset fields are copied into each
// retained row's Values. Nil (the default) copies every field.
func WithOutputFields(fields []string) DetectOption {
	return func(p *detect.Policy) { p.OutputFields = fields }
}

// WithIncludeIndex populates AnnotatedRow.Index with each row's 0-based
// position in the input stream.
func WithIncludeIndex(enabled bool) DetectOption {
	return func(p *detect.Policy) { p.IncludeIndex = enabled }
}

// WithDetectLogger attaches a logger for detection progress output.
func WithDetectLogger(logger *slog.Logger) DetectOption {
	return func(p *detect.Policy) { p.Logger = logger }
}
