package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdda-go/constraints/diag"
)

func TestSeverity_IsFailure(t *testing.T) {
	assert.True(t, diag.Fatal.IsFailure())
	assert.True(t, diag.Error.IsFailure())
	assert.False(t, diag.Warning.IsFailure())
	assert.False(t, diag.Info.IsFailure())
}

func TestNewIssue_PanicsOnZeroCode(t *testing.T) {
	assert.Panics(t, func() {
		diag.NewIssue(diag.Error, diag.Code{}, "bad")
	})
}

func TestNewIssue_PanicsOnEmptyMessage(t *testing.T) {
	assert.Panics(t, func() {
		diag.NewIssue(diag.Error, diag.BelowMin, "")
	})
}

func TestIssueBuilder_BuildProducesValidIssue(t *testing.T) {
	issue := diag.NewIssue(diag.Error, diag.BelowMin, "value 3 is below min 10").
		WithField("age").
		WithDetail(diag.DetailKeyExpected, "10").
		WithDetail(diag.DetailKeyGot, "3").
		Build()

	assert.True(t, issue.IsValid())
	assert.Equal(t, diag.BelowMin, issue.Code())
	assert.Equal(t, "age", issue.Field())
	assert.Len(t, issue.Details(), 2)
}

func TestIssueBuilder_WithRowIndexSetsHasRow(t *testing.T) {
	issue := diag.NewIssue(diag.Error, diag.TypeMismatch, "bad row").
		WithField("age").
		WithRowIndex(7).
		Build()

	idx, ok := issue.RowIndex()
	assert.True(t, ok)
	assert.EqualValues(t, 7, idx)
}

func TestCollector_CollectPanicsOnInvalidIssue(t *testing.T) {
	c := diag.NewCollector()
	assert.Panics(t, func() {
		c.Collect(diag.Issue{})
	})
}

func TestCollector_OKReflectsOnlyFatalAndError(t *testing.T) {
	c := diag.NewCollector()
	assert.True(t, c.OK())

	c.Collect(diag.NewIssue(diag.Warning, diag.SchemaMismatch, "extra field").WithField("x").Build())
	assert.True(t, c.OK(), "warnings do not fail OK()")

	c.Collect(diag.NewIssue(diag.Error, diag.BelowMin, "too low").WithField("n").Build())
	assert.False(t, c.OK())
}

func TestCollector_ResultIsSortedByFieldThenCode(t *testing.T) {
	c := diag.NewCollector()
	c.Collect(diag.NewIssue(diag.Error, diag.AboveMax, "z over").WithField("z").Build())
	c.Collect(diag.NewIssue(diag.Error, diag.BelowMin, "a under").WithField("a").Build())
	c.Collect(diag.NewIssue(diag.Error, diag.AboveMax, "a over").WithField("a").Build())

	result := c.Result()
	require.Equal(t, 3, result.Len())

	issues := result.IssuesSlice()
	assert.Equal(t, "a", issues[0].Field())
	assert.Equal(t, diag.AboveMax, issues[0].Code())
	assert.Equal(t, "a", issues[1].Field())
	assert.Equal(t, diag.BelowMin, issues[1].Code())
	assert.Equal(t, "z", issues[2].Field())
}

func TestCollector_ResultIsIndependentSnapshot(t *testing.T) {
	c := diag.NewCollector()
	c.Collect(diag.NewIssue(diag.Error, diag.BelowMin, "x").WithField("x").Build())

	r1 := c.Result()
	c.Collect(diag.NewIssue(diag.Error, diag.AboveMax, "y").WithField("y").Build())

	assert.Equal(t, 1, r1.Len())
}

func TestOK_IsEmptySuccessResult(t *testing.T) {
	r := diag.OK()
	assert.True(t, r.OK())
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.HasFatal())
}

func TestAllCodes_AreUniqueAndNonZero(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range diag.AllCodes() {
		require.False(t, c.IsZero())
		require.False(t, seen[c.String()], "duplicate code %s", c)
		seen[c.String()] = true
	}
}

func TestCodesByCategory_FiltersCorrectly(t *testing.T) {
	for _, c := range diag.CodesByCategory(diag.CategoryConstraint) {
		assert.Equal(t, diag.CategoryConstraint, c.Category())
	}
}
