package verify

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"

	"github.com/tdda-go/constraints/constraint"
	"github.com/tdda-go/constraints/field"
	"github.com/tdda-go/constraints/internal/parallel"
	"github.com/tdda-go/constraints/log"
	"github.com/tdda-go/constraints/multifield"
	"github.com/tdda-go/constraints/stats"
)

// Verify evaluates every bundle in the document against src, producing a
// Report in document field order (spec §4.4, §5 "ordering guarantees").
// bundles is the constraint document: one Bundle per declared field, in
// the order the document declares them. multi holds the document's
// optional cross-field constraints (spec §3.3); rows is consulted when a
// multi-field constraint's aggregate shortcut is inconclusive and when an
// AllowedValues or Rex field's distinct sample is truncated, so it may be
// nil only when neither happens.
func Verify(ctx context.Context, bundles []constraint.Bundle, src stats.Provider, multi []multifield.Constraint, rows stats.RowSource, policy Policy) (Report, error) {
	reports := make([]FieldReport, len(bundles))

	workers := policy.Workers
	if workers <= 0 {
		workers = len(bundles)
	}

	op := log.Begin(ctx, policy.Logger, "tdda.verify.run", slog.Int("fields", len(bundles)), slog.Int("workers", workers), slog.Int("multifield", len(multi)))
	defer op.End(nil)

	pool := parallel.New(max1(workers))
	defer pool.Close()

	err := parallel.Run(ctx, pool, len(bundles), func(ctx context.Context, i int) error {
		reports[i] = verifyField(ctx, bundles[i], src, rows, policy)
		return nil
	})
	if err != nil {
		op.End(err)
		return Report{}, err
	}

	if policy.ReportMode == FailuresOnly {
		reports = filterFailuresOnly(reports)
	}

	mfReports := make([]MultiFieldReport, len(multi))
	for i, c := range multi {
		mfReports[i] = verifyMultiField(ctx, c, src, rows, policy)
	}
	if policy.ReportMode == FailuresOnly {
		mfReports = filterMultiFieldFailuresOnly(mfReports)
	}

	failed := 0
	for _, fr := range reports {
		for _, cr := range fr.Constraints {
			if cr.Outcome == Fail {
				failed++
			}
		}
	}
	for _, mr := range mfReports {
		if mr.Outcome == Fail {
			failed++
		}
	}
	op.End(nil, slog.Int("failed_constraints", failed))
	return Report{Fields: reports, MultiField: mfReports}, nil
}

// verifyMultiField evaluates one cross-field constraint, preferring
// multifield.Evaluate's aggregate shortcut over a row scan.
func verifyMultiField(ctx context.Context, c multifield.Constraint, src stats.Provider, rows stats.RowSource, policy Policy) MultiFieldReport {
	base := MultiFieldReport{FieldA: c.FieldA, Op: c.Op, FieldB: c.FieldB}

	epsilon := policy.Epsilon
	if epsilon == 0 {
		epsilon = defaultFuzzyEpsilon
	}

	pass, exA, exB, err := multifield.Evaluate(ctx, c, epsilon, src, rows)
	if err != nil {
		base.Outcome = Fail
		base.Reason = ReasonMultiFieldError
		return withMultiFieldCode(base)
	}
	if pass {
		base.Outcome = Pass
		return base
	}
	base.Outcome = Fail
	base.Reason = ReasonMultiFieldViolation
	base.CounterexampleA = exA
	base.CounterexampleB = exB
	return withMultiFieldCode(base)
}

func filterMultiFieldFailuresOnly(in []MultiFieldReport) []MultiFieldReport {
	out := make([]MultiFieldReport, 0, len(in))
	for _, m := range in {
		if m.Outcome == Fail {
			out = append(out, m)
		}
	}
	return out
}

func max1(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func filterFailuresOnly(in []FieldReport) []FieldReport {
	out := make([]FieldReport, 0, len(in))
	for _, f := range in {
		kept := make([]ConstraintReport, 0, len(f.Constraints))
		for _, c := range f.Constraints {
			if c.Outcome == Fail {
				kept = append(kept, c)
			}
		}
		out = append(out, FieldReport{Field: f.Field, Constraints: kept})
	}
	return out
}

// verifyField evaluates every constraint in b against fieldName's
// observed statistics. rows backs the AllowedValues/Rex row-scan
// fallback and may be nil when no bundle needs it.
func verifyField(ctx context.Context, b constraint.Bundle, src stats.Provider, rows stats.RowSource, policy Policy) FieldReport {
	fieldName := b.Field()
	fr := FieldReport{Field: fieldName}

	typ, hasType := src.LogicalType(fieldName)
	if !hasType && !slices.Contains(src.Fields(), fieldName) {
		// Missing field: every constraint fails with "missing field"
		// (spec §4.4's Type rule, generalised to the whole bundle — a
		// constraint can't be evaluated against statistics that don't
		// exist).
		log.Warn(ctx, policy.Logger, "field declared in document but absent from source", slog.String("field", fieldName))
		for _, c := range b.All() {
			fr.Constraints = append(fr.Constraints, withCode(ConstraintReport{
				Kind:    c.Kind(),
				Outcome: Fail,
				Reason:  ReasonMissingField,
			}))
		}
		return fr
	}

	for _, c := range b.All() {
		fr.Constraints = append(fr.Constraints, withCode(evalConstraint(ctx, c, fieldName, typ, src, rows, policy)))
	}
	return fr
}

func evalConstraint(ctx context.Context, c constraint.Constraint, fieldName string, typ field.Type, src stats.Provider, rows stats.RowSource, policy Policy) ConstraintReport {
	switch k := c.(type) {
	case constraint.Type:
		return evalType(k, typ, policy)
	case constraint.Min:
		return evalMin(k, fieldName, typ, src, policy)
	case constraint.Max:
		return evalMax(k, fieldName, typ, src, policy)
	case constraint.SignConstraint:
		return evalSign(k, fieldName, typ, src)
	case constraint.MinLength:
		return evalMinLength(k, fieldName, typ, src)
	case constraint.MaxLength:
		return evalMaxLength(k, fieldName, typ, src)
	case constraint.MaxNulls:
		return evalMaxNulls(k, fieldName, src)
	case constraint.NoDuplicates:
		return evalNoDuplicates(k, fieldName, src)
	case constraint.AllowedValues:
		return evalAllowedValues(ctx, k, fieldName, src, rows)
	case constraint.Rex:
		return evalRex(ctx, k, fieldName, typ, src, rows)
	default:
		return ConstraintReport{Kind: c.Kind(), Outcome: NotApplicable, Reason: ReasonInapplicable}
	}
}

func typingPolicy(t TypeChecking) field.TypingPolicy {
	if t == Strict {
		return field.Strict
	}
	return field.Sloppy
}

func evalType(c constraint.Type, observed field.Type, policy Policy) ConstraintReport {
	if observed.Equal(c.Type(), typingPolicy(policy.TypeChecking)) {
		return ConstraintReport{Kind: constraint.KindType, Outcome: Pass}
	}
	return ConstraintReport{
		Kind: constraint.KindType, Outcome: Fail,
		Reason:         ReasonTypeMismatch,
		Counterexample: observed.String(),
	}
}

func satisfiesMin(x, m, epsilon float64) bool {
	return x >= m-epsilon*max1f(m)
}

func satisfiesMax(x, m, epsilon float64) bool {
	return x <= m+epsilon*max1f(m)
}

func max1f(m float64) float64 {
	if m < 0 {
		m = -m
	}
	if m < 1 {
		return 1
	}
	return m
}

func evalMin(c constraint.Min, fieldName string, typ field.Type, src stats.Provider, policy Policy) ConstraintReport {
	if !typ.IsNumeric() && typ != field.Date {
		return ConstraintReport{Kind: constraint.KindMin, Outcome: NotApplicable, Reason: ReasonInapplicable}
	}
	min, _, ok := src.MinMax(fieldName)
	if !ok {
		return ConstraintReport{Kind: constraint.KindMin, Outcome: NotApplicable, Reason: ReasonInapplicable}
	}

	if typ == field.Date {
		bound, _ := c.Value().Date()
		observed, _ := min.Date()
		ok := !observed.Before(bound)
		if c.Precision() == constraint.Open {
			ok = observed.After(bound)
		}
		if ok {
			return ConstraintReport{Kind: constraint.KindMin, Outcome: Pass}
		}
		return ConstraintReport{Kind: constraint.KindMin, Outcome: Fail, Reason: ReasonBelowMin, Counterexample: min.String()}
	}

	bound, _ := c.Value().Numeric()
	x, _ := min.Numeric()
	epsilon := policy.Epsilon
	if c.Precision() == constraint.Fuzzy && epsilon == 0 {
		epsilon = defaultFuzzyEpsilon
	}
	ok2 := satisfiesMin(x, bound, epsilon)
	if c.Precision() == constraint.Open {
		ok2 = x > bound
	}
	if ok2 {
		return ConstraintReport{Kind: constraint.KindMin, Outcome: Pass}
	}
	return ConstraintReport{Kind: constraint.KindMin, Outcome: Fail, Reason: ReasonBelowMin, Counterexample: min.String()}
}

func evalMax(c constraint.Max, fieldName string, typ field.Type, src stats.Provider, policy Policy) ConstraintReport {
	if !typ.IsNumeric() && typ != field.Date {
		return ConstraintReport{Kind: constraint.KindMax, Outcome: NotApplicable, Reason: ReasonInapplicable}
	}
	_, max, ok := src.MinMax(fieldName)
	if !ok {
		return ConstraintReport{Kind: constraint.KindMax, Outcome: NotApplicable, Reason: ReasonInapplicable}
	}

	if typ == field.Date {
		bound, _ := c.Value().Date()
		observed, _ := max.Date()
		ok := !observed.After(bound)
		if c.Precision() == constraint.Open {
			ok = observed.Before(bound)
		}
		if ok {
			return ConstraintReport{Kind: constraint.KindMax, Outcome: Pass}
		}
		return ConstraintReport{Kind: constraint.KindMax, Outcome: Fail, Reason: ReasonAboveMax, Counterexample: max.String()}
	}

	bound, _ := c.Value().Numeric()
	x, _ := max.Numeric()
	epsilon := policy.Epsilon
	if c.Precision() == constraint.Fuzzy && epsilon == 0 {
		epsilon = defaultFuzzyEpsilon
	}
	ok2 := satisfiesMax(x, bound, epsilon)
	if c.Precision() == constraint.Open {
		ok2 = x < bound
	}
	if ok2 {
		return ConstraintReport{Kind: constraint.KindMax, Outcome: Pass}
	}
	return ConstraintReport{Kind: constraint.KindMax, Outcome: Fail, Reason: ReasonAboveMax, Counterexample: max.String()}
}

// defaultFuzzyEpsilon is used when a Min/Max constraint declares Fuzzy
// precision but the caller's policy epsilon is exactly zero: a Fuzzy
// bound with no tolerance at all would be indistinguishable from Closed,
// so Fuzzy always carries at least this much slack.
const defaultFuzzyEpsilon = 1e-9

func evalSign(c constraint.SignConstraint, fieldName string, typ field.Type, src stats.Provider) ConstraintReport {
	if !typ.IsNumeric() {
		return ConstraintReport{Kind: constraint.KindSign, Outcome: NotApplicable, Reason: ReasonInapplicable}
	}
	min, max, ok := src.MinMax(fieldName)
	if !ok {
		return ConstraintReport{Kind: constraint.KindSign, Outcome: NotApplicable, Reason: ReasonInapplicable}
	}
	minF, _ := min.Numeric()
	maxF, _ := max.Numeric()
	if c.Sign().Satisfies(minF) && c.Sign().Satisfies(maxF) {
		return ConstraintReport{Kind: constraint.KindSign, Outcome: Pass}
	}
	bad := min
	if !c.Sign().Satisfies(maxF) {
		bad = max
	}
	return ConstraintReport{Kind: constraint.KindSign, Outcome: Fail, Reason: ReasonWrongSign, Counterexample: bad.String()}
}

func evalMinLength(c constraint.MinLength, fieldName string, typ field.Type, src stats.Provider) ConstraintReport {
	if typ != field.String {
		return ConstraintReport{Kind: constraint.KindMinLength, Outcome: NotApplicable, Reason: ReasonInapplicable}
	}
	lo, _, ok := src.LengthRange(fieldName)
	if !ok {
		return ConstraintReport{Kind: constraint.KindMinLength, Outcome: NotApplicable, Reason: ReasonInapplicable}
	}
	if lo >= c.N() {
		return ConstraintReport{Kind: constraint.KindMinLength, Outcome: Pass}
	}
	return ConstraintReport{Kind: constraint.KindMinLength, Outcome: Fail, Reason: ReasonTooShort, Counterexample: fmt.Sprintf("%d", lo)}
}

func evalMaxLength(c constraint.MaxLength, fieldName string, typ field.Type, src stats.Provider) ConstraintReport {
	if typ != field.String {
		return ConstraintReport{Kind: constraint.KindMaxLength, Outcome: NotApplicable, Reason: ReasonInapplicable}
	}
	_, hi, ok := src.LengthRange(fieldName)
	if !ok {
		return ConstraintReport{Kind: constraint.KindMaxLength, Outcome: NotApplicable, Reason: ReasonInapplicable}
	}
	if hi <= c.N() {
		return ConstraintReport{Kind: constraint.KindMaxLength, Outcome: Pass}
	}
	return ConstraintReport{Kind: constraint.KindMaxLength, Outcome: Fail, Reason: ReasonTooLong, Counterexample: fmt.Sprintf("%d", hi)}
}

func evalMaxNulls(c constraint.MaxNulls, fieldName string, src stats.Provider) ConstraintReport {
	nulls, _, _ := src.NullCounts(fieldName)
	if nulls <= c.N() {
		return ConstraintReport{Kind: constraint.KindMaxNulls, Outcome: Pass}
	}
	return ConstraintReport{Kind: constraint.KindMaxNulls, Outcome: Fail, Reason: ReasonTooManyNulls, Counterexample: fmt.Sprintf("%d", nulls)}
}

func evalNoDuplicates(c constraint.NoDuplicates, fieldName string, src stats.Provider) ConstraintReport {
	if !c.Value() {
		return ConstraintReport{Kind: constraint.KindNoDuplicates, Outcome: Pass}
	}
	_, nonNull, _ := src.NullCounts(fieldName)
	distinct, _ := src.DistinctCount(fieldName)
	if distinct == nonNull {
		return ConstraintReport{Kind: constraint.KindNoDuplicates, Outcome: Pass}
	}
	return ConstraintReport{Kind: constraint.KindNoDuplicates, Outcome: Fail, Reason: ReasonDuplicateValues}
}

// evalAllowedValues checks fieldName's observed values against c. The
// provider's distinct sample is capped at K (stats.DefaultDistinctCap by
// default): when src.DistinctCount reports truncation, that sample alone
// can never prove a pass (a violator outside the cached K values would be
// silently missed), so evaluation falls back to a full row scan instead,
// matching multifield.Evaluate's aggregate-then-row-scan pattern.
func evalAllowedValues(ctx context.Context, c constraint.AllowedValues, fieldName string, src stats.Provider, rows stats.RowSource) ConstraintReport {
	count, truncated := src.DistinctCount(fieldName)
	if truncated {
		return evalAllowedValuesRows(ctx, c, fieldName, rows)
	}
	values, _ := src.DistinctValues(fieldName, int(count))
	for _, v := range values {
		if !c.Contains(v) {
			return ConstraintReport{Kind: constraint.KindAllowedValues, Outcome: Fail, Reason: ReasonValueNotAllowed, Counterexample: v.String()}
		}
	}
	return ConstraintReport{Kind: constraint.KindAllowedValues, Outcome: Pass}
}

func evalAllowedValuesRows(ctx context.Context, c constraint.AllowedValues, fieldName string, rows stats.RowSource) ConstraintReport {
	it, err := rows.Rows(ctx)
	if err != nil {
		return ConstraintReport{Kind: constraint.KindAllowedValues, Outcome: Fail, Reason: ReasonProviderError, Counterexample: err.Error()}
	}
	defer it.Close()

	for {
		row, ok, err := it.Next(ctx)
		if err != nil {
			return ConstraintReport{Kind: constraint.KindAllowedValues, Outcome: Fail, Reason: ReasonProviderError, Counterexample: err.Error()}
		}
		if !ok {
			break
		}
		v := row[fieldName]
		if v.IsNull() {
			continue
		}
		if !c.Contains(v) {
			return ConstraintReport{Kind: constraint.KindAllowedValues, Outcome: Fail, Reason: ReasonValueNotAllowed, Counterexample: v.String()}
		}
	}
	return ConstraintReport{Kind: constraint.KindAllowedValues, Outcome: Pass}
}

// evalRex mirrors evalAllowedValues' truncation handling: a capped
// distinct sample can only ever confirm a failure, never a pass, so a
// truncated sample falls back to a full row scan.
func evalRex(ctx context.Context, c constraint.Rex, fieldName string, typ field.Type, src stats.Provider, rows stats.RowSource) ConstraintReport {
	if typ != field.String {
		return ConstraintReport{Kind: constraint.KindRex, Outcome: NotApplicable, Reason: ReasonInapplicable}
	}
	compiled, err := Compile(c)
	if err != nil {
		return ConstraintReport{Kind: constraint.KindRex, Outcome: Fail, Reason: ReasonInapplicable, Counterexample: err.Error()}
	}

	count, truncated := src.DistinctCount(fieldName)
	if truncated {
		return evalRexRows(ctx, compiled, fieldName, rows)
	}
	values, _ := src.DistinctValues(fieldName, int(count))
	for _, v := range values {
		s, ok := v.Str()
		if !ok {
			continue
		}
		if !matchesAny(compiled, s) {
			return ConstraintReport{Kind: constraint.KindRex, Outcome: Fail, Reason: ReasonNoPatternMatch, Counterexample: s}
		}
	}
	return ConstraintReport{Kind: constraint.KindRex, Outcome: Pass}
}

func evalRexRows(ctx context.Context, compiled []*regexp.Regexp, fieldName string, rows stats.RowSource) ConstraintReport {
	it, err := rows.Rows(ctx)
	if err != nil {
		return ConstraintReport{Kind: constraint.KindRex, Outcome: Fail, Reason: ReasonProviderError, Counterexample: err.Error()}
	}
	defer it.Close()

	for {
		row, ok, err := it.Next(ctx)
		if err != nil {
			return ConstraintReport{Kind: constraint.KindRex, Outcome: Fail, Reason: ReasonProviderError, Counterexample: err.Error()}
		}
		if !ok {
			break
		}
		v := row[fieldName]
		if v.IsNull() {
			continue
		}
		s, ok := v.Str()
		if !ok {
			continue
		}
		if !matchesAny(compiled, s) {
			return ConstraintReport{Kind: constraint.KindRex, Outcome: Fail, Reason: ReasonNoPatternMatch, Counterexample: s}
		}
	}
	return ConstraintReport{Kind: constraint.KindRex, Outcome: Pass}
}
