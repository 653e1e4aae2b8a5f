package multifield

import (
	"context"
	"math"

	"github.com/tdda-go/constraints/field"
	"github.com/tdda-go/constraints/stats"
)

// Satisfies reports whether a Op b holds for one row. A null operand on
// either side is vacuous (never fails), mirroring the single-field
// row-level constraint semantics used throughout detect.
func Satisfies(op Operator, a, b field.Value, epsilon float64) bool {
	if a.IsNull() || b.IsNull() {
		return true
	}
	if af, aok := a.Numeric(); aok {
		if bf, bok := b.Numeric(); bok {
			return satisfiesNumeric(op, af, bf, epsilon)
		}
	}
	if a.Type() != b.Type() {
		return true // incomparable types: vacuous, never the cause of a failure
	}
	switch a.Type() {
	case field.String, field.Date, field.Bool:
		return satisfiesCmp(op, field.Compare(a, b))
	default:
		return true
	}
}

func satisfiesNumeric(op Operator, a, b, epsilon float64) bool {
	scale := epsilonScale(b)
	switch op {
	case Lt:
		return a < b
	case Lte:
		return a <= b+epsilon*scale
	case Eq:
		return math.Abs(a-b) <= epsilon*scale
	case Gt:
		return a > b
	case Gte:
		return a >= b-epsilon*scale
	default:
		return false
	}
}

func epsilonScale(m float64) float64 {
	if m < 0 {
		m = -m
	}
	if m < 1 {
		return 1
	}
	return m
}

func satisfiesCmp(op Operator, cmp int) bool {
	switch op {
	case Lt:
		return cmp < 0
	case Lte:
		return cmp <= 0
	case Eq:
		return cmp == 0
	case Gt:
		return cmp > 0
	case Gte:
		return cmp >= 0
	default:
		return false
	}
}

// EvaluateAggregate attempts the monotonic column-extrema shortcut: for
// Lt/Lte/Gt/Gte over numeric fields, a pass can sometimes be confirmed from
// column min/max alone (e.g. max(A) < min(B) guarantees A < B on every
// row) with no row scan. ok reports whether the shortcut was conclusive;
// when ok is false (including always, for Eq, which has no such
// shortcut), callers must fall back to EvaluateRows.
func EvaluateAggregate(c Constraint, src stats.Provider) (pass bool, ok bool) {
	typA, hasA := src.LogicalType(c.FieldA)
	typB, hasB := src.LogicalType(c.FieldB)
	if !hasA || !hasB || !typA.IsNumeric() || !typB.IsNumeric() {
		return false, false
	}
	minA, maxA, okA := src.MinMax(c.FieldA)
	minB, maxB, okB := src.MinMax(c.FieldB)
	if !okA || !okB {
		return false, false
	}
	aLo, _ := minA.Numeric()
	aHi, _ := maxA.Numeric()
	bLo, _ := minB.Numeric()
	bHi, _ := maxB.Numeric()

	switch c.Op {
	case Lt:
		return aHi < bLo, aHi < bLo
	case Lte:
		return aHi <= bLo, aHi <= bLo
	case Gt:
		return aLo > bHi, aLo > bHi
	case Gte:
		return aLo >= bHi, aLo >= bHi
	default:
		return false, false
	}
}

// EvaluateRows scans every row and reports whether c holds throughout,
// stopping at the first counterexample. Used by Verifier (via Evaluate)
// when EvaluateAggregate is inconclusive; Detector does not call it and
// checks each row with Satisfies instead.
func EvaluateRows(ctx context.Context, c Constraint, epsilon float64, rows stats.RowSource) (pass bool, counterexampleA, counterexampleB string, err error) {
	iter, err := rows.Rows(ctx)
	if err != nil {
		return false, "", "", err
	}
	defer iter.Close()

	for {
		row, ok, err := iter.Next(ctx)
		if err != nil {
			return false, "", "", err
		}
		if !ok {
			break
		}
		a := row[c.FieldA]
		b := row[c.FieldB]
		if !Satisfies(c.Op, a, b, epsilon) {
			return false, a.String(), b.String(), nil
		}
	}
	return true, "", "", nil
}

// Evaluate is the Verifier-facing entry point: it tries the aggregate
// shortcut first and only falls back to a full row scan when inconclusive.
func Evaluate(ctx context.Context, c Constraint, epsilon float64, src stats.Provider, rows stats.RowSource) (pass bool, counterexampleA, counterexampleB string, err error) {
	if pass, ok := EvaluateAggregate(c, src); ok {
		return pass, "", "", nil
	}
	return EvaluateRows(ctx, c, epsilon, rows)
}
