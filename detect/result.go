package detect

import "github.com/tdda-go/constraints/stats"

// ColumnName returns the stable per-constraint output column name used
// when Policy.PerConstraint is set: "<field>_<kind>_ok" (spec §4.5).
func ColumnName(fieldName, kindToken string) string {
	return fieldName + "_" + kindToken + "_ok"
}

// MultiFieldColumnName returns the stable per-constraint output column
// name for a cross-field constraint: "<a>_<op>_<b>_ok".
func MultiFieldColumnName(fieldA, opToken, fieldB string) string {
	return fieldA + "_" + opToken + "_" + fieldB + "_ok"
}

// AnnotatedRow is one input row augmented with its failure count and,
// optionally, per-constraint pass columns (spec §4.5).
type AnnotatedRow struct {
	// Index is the row's 0-based position in the input stream, populated
	// only when Policy.IncludeIndex is set.
	Index int64

	Values stats.Row

	// NFailures is the number of constraints this row violated across
	// every field.
	NFailures int

	// PerConstraint maps ColumnName(field, kind) to pass (true) / fail
	// (false), populated only when Policy.PerConstraint is set.
	PerConstraint map[string]bool
}

// Result is the row-partitioned detection output (spec §4.5). Rows with
// NFailures == 0 are present only when Policy.WriteAll was set.
type Result struct {
	Rows []AnnotatedRow
}
