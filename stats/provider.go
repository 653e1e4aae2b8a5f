package stats

import (
	"context"

	"github.com/tdda-go/constraints/field"
)

// DefaultDistinctCap is the default hard cap K on distinct-value tracking
// (spec §6.2).
const DefaultDistinctCap = 20

// FieldSource exposes the ordered set of field names in the dataset. Field
// order is preserved end to end: into discovered documents, verification
// reports, and detector output columns (spec §5 "ordering guarantees").
type FieldSource interface {
	Fields() []string
}

// Typed exposes each field's logical type.
type Typed interface {
	LogicalType(fieldName string) (field.Type, bool)
}

// Extrema exposes the non-null min/max observed for a field.
type Extrema interface {
	MinMax(fieldName string) (min, max field.Value, ok bool)
}

// NullCounts exposes null/non-null/total counts for a field.
type NullCounts interface {
	NullCounts(fieldName string) (nullCount, nonNullCount, total int64)
}

// DistinctSample exposes up to cap distinct non-null values observed for a
// field, in first-seen order, and whether the true distinct count exceeds
// cap (truncated).
type DistinctSample interface {
	DistinctValues(fieldName string, cap int) (values []field.Value, truncated bool)
	DistinctCount(fieldName string) (count int64, truncated bool)
}

// LengthExtrema exposes character-length bounds for string fields.
type LengthExtrema interface {
	LengthRange(fieldName string) (min, max int64, ok bool)
}

// RowSource exposes a row-at-a-time view of the dataset, used by the
// detector (which must evaluate per row) and by FromRows to compute the
// reduction capabilities a provider doesn't supply directly.
type RowSource interface {
	Rows(ctx context.Context) (RowIter, error)
}

// Row is one dataset record: field name to classified value. Absent keys
// and explicit field.Null both mean "null" for that field in this row.
type Row map[string]field.Value

// RowIter is a pull-based row cursor, modeled on database/sql.Rows: call
// Next repeatedly until it returns ok == false, then check the error it
// leaves behind, then Close. Implementations must be safe to abandon
// (Close without draining) on cancellation.
type RowIter interface {
	// Next advances to the next row. ctx is checked for cancellation
	// between rows; a cancelled context stops iteration with ctx.Err().
	Next(ctx context.Context) (row Row, ok bool, err error)
	Close() error
}

// Provider is the full field-statistics contract (spec §4.1). A provider
// must be deterministic: repeated calls for the same field on the same
// dataset return equal results. Discover and Verify share the one Provider
// they are given across their pool workers, calling it for different
// fields at the same time; Computed is read-only after FromRows returns.
type Provider interface {
	FieldSource
	Typed
	Extrema
	NullCounts
	DistinctSample
	LengthExtrema
}
