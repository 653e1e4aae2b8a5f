package verify

import "log/slog"

// TypeChecking selects how strictly the Type constraint and numeric
// conflation are enforced (spec §4.4, mirrors field.TypingPolicy).
type TypeChecking uint8

const (
	Sloppy TypeChecking = iota
	Strict
)

// ReportMode controls which outcomes Report includes.
type ReportMode uint8

const (
	// All includes pass, fail, and not_applicable outcomes.
	All ReportMode = iota
	// FailuresOnly keeps only failing outcomes; pass and not_applicable
	// outcomes are omitted from the report.
	FailuresOnly
)

// Policy carries every explicit verification parameter (spec §4.4,
// §9 "no ambient state").
type Policy struct {
	// Epsilon is the fuzzy-comparison tolerance for Min/Max (spec §4.4):
	// x satisfies Min(m) if x >= m - Epsilon*max(1, |m|). Zero is strict.
	Epsilon float64

	TypeChecking TypeChecking
	ReportMode   ReportMode

	// Workers bounds verification concurrency (spec §5). Zero defaults to
	// one worker per field.
	Workers int

	// Logger receives progress and warning output. Nil disables logging.
	Logger *slog.Logger
}
