package detect

import (
	"log/slog"

	"github.com/tdda-go/constraints/field"
)

// Policy carries every explicit detection parameter (spec §4.5, §9 "no
// ambient state").
type Policy struct {
	// Epsilon is the fuzzy-comparison tolerance for Min/Max, matching
	// verify.Policy.Epsilon's formula.
	Epsilon float64

	// Typing controls Type-constraint and numeric-conflation strictness.
	Typing field.TypingPolicy

	// WriteAll retains passing rows (n_failures == 0) in the result.
	// When false (the default), only failing rows are returned.
	WriteAll bool

	// PerConstraint adds one boolean column per (field, constraint) to
	// every retained row, named "<field>_<kind>_ok".
	PerConstraint bool

	// OutputFields restricts which dataset fields are copied into each
	// retained row's Values. Nil means every field.
	OutputFields []string

	// IncludeIndex populates AnnotatedRow.Index with the row's 0-based
	// position in the input stream.
	IncludeIndex bool

	// Logger receives progress and warning output. Nil disables logging.
	Logger *slog.Logger
}
