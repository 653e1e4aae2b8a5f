package detect

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"

	"github.com/tdda-go/constraints/constraint"
	"github.com/tdda-go/constraints/field"
	"github.com/tdda-go/constraints/log"
	"github.com/tdda-go/constraints/multifield"
	"github.com/tdda-go/constraints/stats"
)

// fieldState is everything precomputed once per field before the row
// scan starts, so the scan itself stays O(rows x constraints) with no
// re-aggregation (SPEC_FULL "Streaming detection").
type fieldState struct {
	bundle       constraint.Bundle
	typ          field.Type
	hasType      bool
	observedNull int64
	dupCounts    map[string]int64 // value.Key() -> occurrence count, only built if NoDuplicates present
	rex          []*regexp.Regexp // compiled Rex patterns, only built if Rex present
}

// Detect evaluates bundles against rows row-by-row (spec §4.5). provider
// supplies the per-field aggregates (null counts, logical types) needed
// to precompute fieldState; rows supplies the row cursor that is scanned
// exactly once for the result (plus one more pass beforehand, only for
// fields that declare NoDuplicates, to count value occurrences). multi
// holds the document's optional cross-field constraints (spec §3.3),
// evaluated per row alongside the single-field bundles.
func Detect(ctx context.Context, provider stats.Provider, rows stats.RowSource, bundles []constraint.Bundle, multi []multifield.Constraint, policy Policy) (Result, error) {
	op := log.Begin(ctx, policy.Logger, "tdda.detect.run", slog.Int("fields", len(bundles)), slog.Int("multifield", len(multi)))
	defer op.End(nil)

	states := make([]*fieldState, len(bundles))
	for i, b := range bundles {
		st, err := newFieldState(b, provider)
		if err != nil {
			op.End(err)
			return Result{}, err
		}
		if !st.hasType && !slices.Contains(provider.Fields(), b.Field()) {
			log.Warn(ctx, policy.Logger, "field declared in document but absent from source", slog.String("field", b.Field()))
		}
		states[i] = st
	}

	needsDup := false
	for _, st := range states {
		if st.dupCounts != nil {
			needsDup = true
			break
		}
	}
	if needsDup {
		log.Debug(ctx, policy.Logger, "scanning rows to populate duplicate-value counts")
		if err := populateDupCounts(ctx, rows, states); err != nil {
			op.End(err)
			return Result{}, err
		}
	}

	outputSet := fieldSet(policy.OutputFields)

	var result Result
	it, err := rows.Rows(ctx)
	if err != nil {
		op.End(err)
		return Result{}, fmt.Errorf("detect: opening row source: %w", err)
	}
	defer it.Close()

	var index int64
	for {
		if err := ctx.Err(); err != nil {
			op.End(err)
			return Result{}, err
		}
		row, ok, err := it.Next(ctx)
		if err != nil {
			err = fmt.Errorf("detect: reading row: %w", err)
			op.End(err)
			return Result{}, err
		}
		if !ok {
			break
		}

		ar := evaluateRow(row, states, multi, policy)
		if policy.IncludeIndex {
			ar.Index = index
		}
		ar.Values = projectFields(row, outputSet)
		index++

		if ar.NFailures > 0 || policy.WriteAll {
			result.Rows = append(result.Rows, ar)
		}
	}
	op.End(nil, slog.Int64("rows_scanned", index), slog.Int("rows_retained", len(result.Rows)))
	return result, nil
}

func newFieldState(b constraint.Bundle, provider stats.Provider) (*fieldState, error) {
	st := &fieldState{bundle: b}
	st.typ, st.hasType = provider.LogicalType(b.Field())
	st.observedNull, _, _ = provider.NullCounts(b.Field())

	if nd, ok := b.Get(constraint.KindNoDuplicates); ok && nd.(constraint.NoDuplicates).Value() {
		st.dupCounts = make(map[string]int64)
	}
	if rex, ok := b.Get(constraint.KindRex); ok {
		compiled, err := compileRex(rex.(constraint.Rex))
		if err != nil {
			return nil, fmt.Errorf("detect: field %q: %w", b.Field(), err)
		}
		st.rex = compiled
	}
	return st, nil
}

func compileRex(c constraint.Rex) ([]*regexp.Regexp, error) {
	patterns := c.Patterns()
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := constraint.CompileAnchored(p)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", p, err)
		}
		out[i] = re
	}
	return out, nil
}

// populateDupCounts makes one extra streaming pass to count occurrences
// of every non-null value in each field that declares NoDuplicates(true).
func populateDupCounts(ctx context.Context, rows stats.RowSource, states []*fieldState) error {
	it, err := rows.Rows(ctx)
	if err != nil {
		return fmt.Errorf("detect: opening row source for duplicate pre-count: %w", err)
	}
	defer it.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, ok, err := it.Next(ctx)
		if err != nil {
			return fmt.Errorf("detect: reading row during duplicate pre-count: %w", err)
		}
		if !ok {
			break
		}
		for _, st := range states {
			if st.dupCounts == nil {
				continue
			}
			v := row[st.bundle.Field()]
			if v.IsNull() {
				continue
			}
			st.dupCounts[v.Key()]++
		}
	}
	return nil
}

func fieldSet(fields []string) map[string]struct{} {
	if fields == nil {
		return nil
	}
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func projectFields(row stats.Row, set map[string]struct{}) stats.Row {
	if set == nil {
		return row
	}
	out := make(stats.Row, len(set))
	for f := range set {
		out[f] = row[f]
	}
	return out
}

func evaluateRow(row stats.Row, states []*fieldState, multi []multifield.Constraint, policy Policy) AnnotatedRow {
	ar := AnnotatedRow{}
	var perConstraint map[string]bool
	if policy.PerConstraint {
		perConstraint = make(map[string]bool)
	}

	for _, st := range states {
		v := row[st.bundle.Field()]
		for _, c := range st.bundle.All() {
			pass := evalRowConstraint(c, v, st, policy)
			if !pass {
				ar.NFailures++
			}
			if perConstraint != nil {
				perConstraint[ColumnName(st.bundle.Field(), c.Kind().String())] = pass
			}
		}
	}

	epsilon := policy.Epsilon
	if epsilon == 0 {
		epsilon = defaultFuzzyEpsilon
	}
	for _, c := range multi {
		pass := multifield.Satisfies(c.Op, row[c.FieldA], row[c.FieldB], epsilon)
		if !pass {
			ar.NFailures++
		}
		if perConstraint != nil {
			perConstraint[MultiFieldColumnName(c.FieldA, c.Op.String(), c.FieldB)] = pass
		}
	}

	ar.PerConstraint = perConstraint
	return ar
}

// evalRowConstraint implements spec §4.5's row-level predicate table.
func evalRowConstraint(c constraint.Constraint, v field.Value, st *fieldState, policy Policy) bool {
	switch k := c.(type) {
	case constraint.Type:
		return v.IsNull() || v.Type().Equal(k.Type(), policy.Typing)

	case constraint.Min:
		if v.IsNull() {
			return true
		}
		return rowSatisfiesMin(v, k, policy.Epsilon)

	case constraint.Max:
		if v.IsNull() {
			return true
		}
		return rowSatisfiesMax(v, k, policy.Epsilon)

	case constraint.SignConstraint:
		if v.IsNull() {
			return true
		}
		x, ok := v.Numeric()
		return ok && k.Sign().Satisfies(x)

	case constraint.MinLength:
		if v.IsNull() {
			return true
		}
		n, ok := v.Len()
		return ok && int64(n) >= k.N()

	case constraint.MaxLength:
		if v.IsNull() {
			return true
		}
		n, ok := v.Len()
		return ok && int64(n) <= k.N()

	case constraint.MaxNulls:
		// Row-level approximation: a null row fails only when the column's
		// observed null count exceeds n; non-null rows always pass.
		return !v.IsNull() || st.observedNull <= k.N()

	case constraint.NoDuplicates:
		if !k.Value() {
			return true
		}
		if v.IsNull() {
			return true
		}
		return st.dupCounts[v.Key()] == 1

	case constraint.AllowedValues:
		return v.IsNull() || k.Contains(v)

	case constraint.Rex:
		if v.IsNull() {
			return true
		}
		s, ok := v.Str()
		if !ok {
			return false
		}
		for _, re := range st.rex {
			if re.MatchString(s) {
				return true
			}
		}
		return false

	default:
		return true
	}
}

func rowSatisfiesMin(v field.Value, c constraint.Min, epsilon float64) bool {
	if v.Type() == field.Date {
		bound, _ := c.Value().Date()
		observed, _ := v.Date()
		if c.Precision() == constraint.Open {
			return observed.After(bound)
		}
		return !observed.Before(bound)
	}
	x, ok := v.Numeric()
	if !ok {
		return true
	}
	bound, _ := c.Value().Numeric()
	if c.Precision() == constraint.Open {
		return x > bound
	}
	if c.Precision() == constraint.Fuzzy && epsilon == 0 {
		epsilon = defaultFuzzyEpsilon
	}
	return x >= bound-epsilon*scaleFloor(bound)
}

func rowSatisfiesMax(v field.Value, c constraint.Max, epsilon float64) bool {
	if v.Type() == field.Date {
		bound, _ := c.Value().Date()
		observed, _ := v.Date()
		if c.Precision() == constraint.Open {
			return observed.Before(bound)
		}
		return !observed.After(bound)
	}
	x, ok := v.Numeric()
	if !ok {
		return true
	}
	bound, _ := c.Value().Numeric()
	if c.Precision() == constraint.Open {
		return x < bound
	}
	if c.Precision() == constraint.Fuzzy && epsilon == 0 {
		epsilon = defaultFuzzyEpsilon
	}
	return x <= bound+epsilon*scaleFloor(bound)
}

// defaultFuzzyEpsilon mirrors package verify's floor: a Fuzzy bound with
// a caller-supplied epsilon of exactly 0 still carries a tiny tolerance,
// or it would be indistinguishable from Closed.
const defaultFuzzyEpsilon = 1e-9

func scaleFloor(m float64) float64 {
	if m < 0 {
		m = -m
	}
	if m < 1 {
		return 1
	}
	return m
}
