package verify_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdda-go/constraints/constraint"
	"github.com/tdda-go/constraints/diag"
	"github.com/tdda-go/constraints/field"
	"github.com/tdda-go/constraints/multifield"
	"github.com/tdda-go/constraints/stats"
	"github.com/tdda-go/constraints/verify"
)

type capturingHandler struct {
	records []slog.Record
}

func (h *capturingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}
func (h *capturingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *capturingHandler) WithGroup(string) slog.Handler      { return h }

type memRows struct {
	rows []stats.Row
	pos  int
}

func (m *memRows) Next(ctx context.Context) (stats.Row, bool, error) {
	if m.pos >= len(m.rows) {
		return nil, false, nil
	}
	r := m.rows[m.pos]
	m.pos++
	return r, true, nil
}
func (m *memRows) Close() error { return nil }

type memSource struct {
	fields []string
	rows   []stats.Row
}

func (m memSource) Fields() []string { return m.fields }
func (m memSource) Rows(ctx context.Context) (stats.RowIter, error) {
	return &memRows{rows: m.rows}, nil
}

func computed(t *testing.T, fields []string, rows []stats.Row) stats.Provider {
	t.Helper()
	c, err := stats.FromRows(context.Background(), memSource{fields: fields, rows: rows}, stats.DefaultDistinctCap)
	require.NoError(t, err)
	return c
}

func bundle(t *testing.T, fieldName string, cs ...constraint.Constraint) constraint.Bundle {
	t.Helper()
	b, err := constraint.NewBundle(fieldName, cs...)
	require.NoError(t, err)
	return b
}

func outcomeOf(t *testing.T, r verify.Report, fieldName string, k constraint.Kind) verify.ConstraintReport {
	t.Helper()
	for _, f := range r.Fields {
		if f.Field != fieldName {
			continue
		}
		for _, c := range f.Constraints {
			if c.Kind == k {
				return c
			}
		}
	}
	t.Fatalf("no report for field %q kind %v", fieldName, k)
	return verify.ConstraintReport{}
}

func TestVerify_MinMaxPass(t *testing.T) {
	src := computed(t, []string{"age"}, []stats.Row{
		{"age": field.NewInt(10)},
		{"age": field.NewInt(50)},
	})
	b := bundle(t, "age",
		constraint.NewType(field.Int),
		constraint.NewMin(field.NewInt(0), constraint.Closed),
		constraint.NewMax(field.NewInt(100), constraint.Closed),
	)
	report, err := verify.Verify(context.Background(), []constraint.Bundle{b}, src, nil, nil, verify.Policy{})
	require.NoError(t, err)
	assert.True(t, report.Passed())
}

func TestVerify_MinFailsWithCounterexample(t *testing.T) {
	src := computed(t, []string{"age"}, []stats.Row{
		{"age": field.NewInt(-3)},
		{"age": field.NewInt(50)},
	})
	b := bundle(t, "age", constraint.NewMin(field.NewInt(0), constraint.Closed))
	report, err := verify.Verify(context.Background(), []constraint.Bundle{b}, src, nil, nil, verify.Policy{})
	require.NoError(t, err)

	c := outcomeOf(t, report, "age", constraint.KindMin)
	assert.Equal(t, verify.Fail, c.Outcome)
	assert.Equal(t, verify.ReasonBelowMin, c.Reason)
	assert.Equal(t, "-3", c.Counterexample)
}

func TestVerify_FuzzyEpsilonToleratesSmallOvershoot(t *testing.T) {
	src := computed(t, []string{"x"}, []stats.Row{
		{"x": field.NewReal(99.999)},
	})
	b := bundle(t, "x", constraint.NewMin(field.NewReal(100.0), constraint.Closed))
	report, err := verify.Verify(context.Background(), []constraint.Bundle{b}, src, nil, nil, verify.Policy{Epsilon: 0.001})
	require.NoError(t, err)
	assert.True(t, report.Passed())
}

func TestVerify_MissingFieldFailsEveryConstraint(t *testing.T) {
	src := computed(t, []string{"other"}, []stats.Row{{"other": field.NewInt(1)}})
	b := bundle(t, "age", constraint.NewType(field.Int), constraint.NewMaxNulls(0))
	report, err := verify.Verify(context.Background(), []constraint.Bundle{b}, src, nil, nil, verify.Policy{})
	require.NoError(t, err)

	require.Len(t, report.Fields, 1)
	for _, c := range report.Fields[0].Constraints {
		assert.Equal(t, verify.Fail, c.Outcome)
		assert.Equal(t, verify.ReasonMissingField, c.Reason)
	}
}

func TestVerify_TypeSloppyConflatesIntReal(t *testing.T) {
	src := computed(t, []string{"x"}, []stats.Row{{"x": field.NewReal(1.5)}})
	b := bundle(t, "x", constraint.NewType(field.Int))
	report, err := verify.Verify(context.Background(), []constraint.Bundle{b}, src, nil, nil, verify.Policy{TypeChecking: verify.Sloppy})
	require.NoError(t, err)
	assert.Equal(t, verify.Pass, outcomeOf(t, report, "x", constraint.KindType).Outcome)

	report, err = verify.Verify(context.Background(), []constraint.Bundle{b}, src, nil, nil, verify.Policy{TypeChecking: verify.Strict})
	require.NoError(t, err)
	assert.Equal(t, verify.Fail, outcomeOf(t, report, "x", constraint.KindType).Outcome)
}

func TestVerify_AllowedValuesFailsWithOffender(t *testing.T) {
	src := computed(t, []string{"status"}, []stats.Row{
		{"status": field.NewString("open")},
		{"status": field.NewString("weird")},
	})
	b := bundle(t, "status", constraint.NewAllowedValues([]field.Value{field.NewString("open"), field.NewString("closed")}))
	report, err := verify.Verify(context.Background(), []constraint.Bundle{b}, src, nil, nil, verify.Policy{})
	require.NoError(t, err)

	c := outcomeOf(t, report, "status", constraint.KindAllowedValues)
	assert.Equal(t, verify.Fail, c.Outcome)
	assert.Equal(t, "weird", c.Counterexample)
}

func TestVerify_RexPassesWhenEveryValueMatches(t *testing.T) {
	src := computed(t, []string{"code"}, []stats.Row{
		{"code": field.NewString("A1")},
		{"code": field.NewString("B2")},
	})
	b := bundle(t, "code", constraint.NewRex([]string{`^[A-Z][0-9]$`}))
	report, err := verify.Verify(context.Background(), []constraint.Bundle{b}, src, nil, nil, verify.Policy{})
	require.NoError(t, err)
	assert.Equal(t, verify.Pass, outcomeOf(t, report, "code", constraint.KindRex).Outcome)
}

func TestVerify_MaxNullsFailsWhenExceeded(t *testing.T) {
	src := computed(t, []string{"x"}, []stats.Row{
		{"x": field.NewInt(1)},
		{"x": field.Null},
		{"x": field.Null},
	})
	b := bundle(t, "x", constraint.NewMaxNulls(1))
	report, err := verify.Verify(context.Background(), []constraint.Bundle{b}, src, nil, nil, verify.Policy{})
	require.NoError(t, err)
	assert.Equal(t, verify.Fail, outcomeOf(t, report, "x", constraint.KindMaxNulls).Outcome)
}

func TestVerify_ReportModeFailuresOnly(t *testing.T) {
	src := computed(t, []string{"x"}, []stats.Row{{"x": field.NewInt(5)}})
	b := bundle(t, "x",
		constraint.NewMin(field.NewInt(0), constraint.Closed),
		constraint.NewMax(field.NewInt(1), constraint.Closed),
	)
	report, err := verify.Verify(context.Background(), []constraint.Bundle{b}, src, nil, nil, verify.Policy{ReportMode: verify.FailuresOnly})
	require.NoError(t, err)
	require.Len(t, report.Fields[0].Constraints, 1)
	assert.Equal(t, constraint.KindMax, report.Fields[0].Constraints[0].Kind)
}

func TestVerify_FailingOutcomeCarriesMatchingDiagCode(t *testing.T) {
	src := computed(t, []string{"age"}, []stats.Row{{"age": field.NewInt(-5)}})
	b := bundle(t, "age", constraint.NewMin(field.NewInt(0), constraint.Closed))
	report, err := verify.Verify(context.Background(), []constraint.Bundle{b}, src, nil, nil, verify.Policy{})
	require.NoError(t, err)

	c := outcomeOf(t, report, "age", constraint.KindMin)
	assert.Equal(t, verify.Fail, c.Outcome)
	assert.Equal(t, diag.BelowMin, c.Code)
}

func TestVerify_MissingFieldCarriesMissingFieldCode(t *testing.T) {
	src := computed(t, []string{"other"}, []stats.Row{{"other": field.NewInt(1)}})
	b := bundle(t, "age", constraint.NewType(field.Int))
	report, err := verify.Verify(context.Background(), []constraint.Bundle{b}, src, nil, nil, verify.Policy{})
	require.NoError(t, err)

	c := outcomeOf(t, report, "age", constraint.KindType)
	assert.Equal(t, diag.MissingField, c.Code)
}

func TestVerify_LogsWarningForMissingField(t *testing.T) {
	h := &capturingHandler{}
	logger := slog.New(h)
	src := computed(t, []string{"other"}, []stats.Row{{"other": field.NewInt(1)}})
	b := bundle(t, "age", constraint.NewType(field.Int))
	_, err := verify.Verify(context.Background(), []constraint.Bundle{b}, src, nil, nil, verify.Policy{Logger: logger})
	require.NoError(t, err)

	found := false
	for _, rec := range h.records {
		if rec.Message == "field declared in document but absent from source" {
			found = true
		}
	}
	assert.True(t, found, "expected a warning record for the missing field")
}

func TestVerify_PreservesDocumentFieldOrder(t *testing.T) {
	src := computed(t, []string{"a", "b"}, []stats.Row{{"a": field.NewInt(1), "b": field.NewInt(1)}})
	bb := bundle(t, "b", constraint.NewType(field.Int))
	ba := bundle(t, "a", constraint.NewType(field.Int))
	report, err := verify.Verify(context.Background(), []constraint.Bundle{bb, ba}, src, nil, nil, verify.Policy{})
	require.NoError(t, err)
	require.Len(t, report.Fields, 2)
	assert.Equal(t, "b", report.Fields[0].Field)
	assert.Equal(t, "a", report.Fields[1].Field)
}

func TestVerify_MultiFieldPassesViaAggregateShortcut(t *testing.T) {
	src := computed(t, []string{"start", "end"}, []stats.Row{
		{"start": field.NewInt(1), "end": field.NewInt(10)},
		{"start": field.NewInt(2), "end": field.NewInt(20)},
	})
	mf := multifield.New("start", multifield.Lt, "end")
	report, err := verify.Verify(context.Background(), nil, src, []multifield.Constraint{mf}, nil, verify.Policy{})
	require.NoError(t, err)

	require.Len(t, report.MultiField, 1)
	assert.Equal(t, verify.Pass, report.MultiField[0].Outcome)
	assert.True(t, report.Passed())
}

func TestVerify_MultiFieldFallsBackToRowScanAndReportsCounterexample(t *testing.T) {
	rows := []stats.Row{
		{"start": field.NewInt(5), "end": field.NewInt(10)},
		{"start": field.NewInt(8), "end": field.NewInt(3)},
	}
	src := computed(t, []string{"start", "end"}, rows)
	rowSrc := memSource{fields: []string{"start", "end"}, rows: rows}

	mf := multifield.New("start", multifield.Lt, "end")
	report, err := verify.Verify(context.Background(), nil, src, []multifield.Constraint{mf}, rowSrc, verify.Policy{})
	require.NoError(t, err)

	require.Len(t, report.MultiField, 1)
	m := report.MultiField[0]
	assert.Equal(t, verify.Fail, m.Outcome)
	assert.Equal(t, verify.ReasonMultiFieldViolation, m.Reason)
	assert.Equal(t, diag.MultiFieldViolation, m.Code)
	assert.Equal(t, "8", m.CounterexampleA)
	assert.Equal(t, "3", m.CounterexampleB)
	assert.False(t, report.Passed())
}

func TestVerify_AllowedValuesFallsBackToRowScanWhenSampleTruncated(t *testing.T) {
	allowed := make([]field.Value, stats.DefaultDistinctCap)
	rows := make([]stats.Row, 0, stats.DefaultDistinctCap+1)
	for i := 0; i < stats.DefaultDistinctCap; i++ {
		v := field.NewString(fmt.Sprintf("v%d", i))
		allowed[i] = v
		rows = append(rows, stats.Row{"code": v})
	}
	// One more distinct value than the provider's sample cap, appearing
	// only after the cached sample is already full, and not allowed.
	rows = append(rows, stats.Row{"code": field.NewString("offender")})

	src := computed(t, []string{"code"}, rows)
	rowSrc := memSource{fields: []string{"code"}, rows: rows}
	b := bundle(t, "code", constraint.NewAllowedValues(allowed))

	report, err := verify.Verify(context.Background(), []constraint.Bundle{b}, src, nil, rowSrc, verify.Policy{})
	require.NoError(t, err)

	c := outcomeOf(t, report, "code", constraint.KindAllowedValues)
	assert.Equal(t, verify.Fail, c.Outcome)
	assert.Equal(t, "offender", c.Counterexample)
}

func TestVerify_RexFallsBackToRowScanWhenSampleTruncated(t *testing.T) {
	rows := make([]stats.Row, 0, stats.DefaultDistinctCap+1)
	for i := 0; i < stats.DefaultDistinctCap; i++ {
		rows = append(rows, stats.Row{"code": field.NewString(fmt.Sprintf("ok-%d", i))})
	}
	rows = append(rows, stats.Row{"code": field.NewString("nope")})

	src := computed(t, []string{"code"}, rows)
	rowSrc := memSource{fields: []string{"code"}, rows: rows}
	b := bundle(t, "code", constraint.NewRex([]string{`^ok-\d+$`}))

	report, err := verify.Verify(context.Background(), []constraint.Bundle{b}, src, nil, rowSrc, verify.Policy{})
	require.NoError(t, err)

	c := outcomeOf(t, report, "code", constraint.KindRex)
	assert.Equal(t, verify.Fail, c.Outcome)
	assert.Equal(t, "nope", c.Counterexample)
}
