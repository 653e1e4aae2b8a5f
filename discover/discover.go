package discover

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tdda-go/constraints/constraint"
	"github.com/tdda-go/constraints/field"
	"github.com/tdda-go/constraints/induce"
	"github.com/tdda-go/constraints/internal/parallel"
	"github.com/tdda-go/constraints/log"
	"github.com/tdda-go/constraints/stats"
)

// Discover runs the per-field algorithm (spec §4.2) across every field of
// src, fanning work out across a bounded pool (spec §5) and returning
// bundles in src.Fields() order regardless of completion order.
func Discover(ctx context.Context, src stats.Provider, policy Policy) ([]constraint.Bundle, error) {
	fields := src.Fields()
	bundles := make([]constraint.Bundle, len(fields))

	workers := policy.Workers
	if workers <= 0 {
		workers = len(fields)
	}

	op := log.Begin(ctx, policy.Logger, "tdda.discover.run", slog.Int("fields", len(fields)), slog.Int("workers", workers))
	defer op.End(nil)

	pool := parallel.New(workers)
	defer pool.Close()

	err := parallel.Run(ctx, pool, len(fields), func(ctx context.Context, i int) error {
		log.Debug(ctx, policy.Logger, "discovering field", slog.String("field", fields[i]))
		b, err := discoverField(src, fields[i], policy)
		if err != nil {
			return fmt.Errorf("discover: field %q: %w", fields[i], err)
		}
		bundles[i] = b
		return nil
	})
	if err != nil {
		op.End(err)
		return nil, err
	}
	return bundles, nil
}

// discoverField applies spec §4.2's numbered rules to one field.
func discoverField(src stats.Provider, fieldName string, policy Policy) (constraint.Bundle, error) {
	var cs []constraint.Constraint

	typ, hasType := src.LogicalType(fieldName)
	if hasType {
		cs = append(cs, constraint.NewType(typ))
	}

	nullCount, nonNullCount, total := src.NullCounts(fieldName)

	// Empty fields (all null): only Type and MaxNulls(total), no bounds.
	if nonNullCount == 0 {
		if total > 0 {
			cs = append(cs, constraint.NewMaxNulls(total))
		}
		return constraint.NewBundle(fieldName, cs...)
	}

	// Rule 2: MaxNulls.
	if nullCount == 0 {
		cs = append(cs, constraint.NewMaxNulls(0))
	}

	if typ.IsNumeric() {
		cs = append(cs, discoverNumeric(src, fieldName)...)
	}

	if typ == field.String {
		if lo, hi, ok := src.LengthRange(fieldName); ok {
			cs = append(cs, constraint.NewMinLength(lo), constraint.NewMaxLength(hi))
		}
	}

	distinctCount, _ := src.DistinctCount(fieldName)

	// Rule 5: AllowedValues when distinct_count <= K (or policy opts in
	// above the cap using whatever sample the provider returned).
	capK := int64(policy.allowedValuesCap())
	if distinctCount > 0 && (distinctCount <= capK || policy.AllowedValuesAboveCap) {
		if values, _ := src.DistinctValues(fieldName, int(capK)); len(values) > 0 {
			cs = append(cs, constraint.NewAllowedValues(values))
		}
	}

	// Rule 6: NoDuplicates.
	if distinctCount == nonNullCount && nonNullCount >= 2 {
		cs = append(cs, constraint.NewNoDuplicates(true))
	}

	// Rule 7: Rex, string fields only, when enabled.
	if typ == field.String && policy.InduceRegex {
		if rex := discoverRex(src, fieldName, distinctCount, policy); rex != nil {
			cs = append(cs, rex)
		}
	}

	return constraint.NewBundle(fieldName, cs...)
}

// discoverNumeric applies rule 3: Min/Max always, Sign only when it adds
// information beyond Min/Max alone.
func discoverNumeric(src stats.Provider, fieldName string) []constraint.Constraint {
	min, max, ok := src.MinMax(fieldName)
	if !ok {
		return nil
	}
	cs := []constraint.Constraint{
		constraint.NewMin(min, constraint.Closed),
		constraint.NewMax(max, constraint.Closed),
	}

	minF, _ := min.Numeric()
	maxF, _ := max.Numeric()
	if sign, ok := impliedSign(minF, maxF); ok {
		cs = append(cs, constraint.NewSign(sign))
	}
	return cs
}

// impliedSign reports the Sign constraint, if any, that is strictly more
// informative than the Min/Max bounds alone already convey: a positive
// minimum implies "positive" (Min already says > 0 but Sign documents the
// relationship explicitly), an exact-zero minimum on a non-negative range
// implies "non-negative", and so on for the negative side.
func impliedSign(minV, maxV float64) (constraint.Sign, bool) {
	switch {
	case minV > 0:
		return constraint.SignPositive, true
	case minV == 0 && maxV > 0:
		return constraint.SignNonNegative, true
	case maxV < 0:
		return constraint.SignNegative, true
	case maxV == 0 && minV < 0:
		return constraint.SignNonPositive, true
	case minV == 0 && maxV == 0:
		return constraint.SignZero, true
	default:
		return 0, false
	}
}

// discoverRex induces a pattern cover over the field's distinct sample
// (spec §4.2 rule 7, §4.3). It returns nil (omitting Rex) when the field
// has no distinct non-null values or the inducer returns no patterns.
// The sample is whatever the provider's DistinctValues returns; when the
// provider's own distinct cap truncated it, the patterns cover only the
// sampled values.
func discoverRex(src stats.Provider, fieldName string, distinctCount int64, policy Policy) constraint.Constraint {
	if distinctCount == 0 {
		return nil
	}
	samples, _ := src.DistinctValues(fieldName, int(distinctCount))
	strs := make([]string, 0, len(samples))
	for _, v := range samples {
		if s, ok := v.Str(); ok {
			strs = append(strs, s)
		}
	}
	patterns := induce.Induce(strs, policy.inducePolicy())
	if len(patterns) == 0 {
		return nil
	}
	return constraint.NewRex(patterns)
}
