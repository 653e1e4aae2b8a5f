package discover

import (
	"log/slog"

	"github.com/tdda-go/constraints/induce"
)

// DefaultAllowedValuesCap is the default K from spec §4.2 rule 5: fields
// with at most this many distinct values get an AllowedValues constraint.
const DefaultAllowedValuesCap = 20

// Policy carries every explicit, caller-supplied discovery parameter
// (spec §9 "no ambient state" — nothing here is a package-level
// default a caller can't see or override).
type Policy struct {
	// K bounds distinct_count for AllowedValues discovery (spec §4.2 rule
	// 5). Zero uses DefaultAllowedValuesCap.
	K int

	// InduceRegex enables Rex discovery for string fields via the induce
	// package (spec §4.2 rule 7).
	InduceRegex bool

	// AlternationCap bounds the regex inducer's literal-folding width.
	// Zero uses induce.DefaultAlternationCap.
	AlternationCap int

	// AllowedValuesAboveCap, when true, still emits AllowedValues even
	// when distinct_count exceeds K, using whatever distinct sample the
	// provider returned (possibly truncated). Default false: suppressed.
	AllowedValuesAboveCap bool

	// Workers bounds discovery concurrency (spec §5). Zero defaults to
	// one worker per field.
	Workers int

	// Logger receives progress and warning output. Nil disables logging.
	Logger *slog.Logger
}

func (p Policy) allowedValuesCap() int {
	if p.K <= 0 {
		return DefaultAllowedValuesCap
	}
	return p.K
}

func (p Policy) inducePolicy() induce.Policy {
	return induce.Policy{AlternationCap: p.AlternationCap}
}
