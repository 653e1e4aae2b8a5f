package stats_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdda-go/constraints/field"
	"github.com/tdda-go/constraints/stats"
)

type sliceIter struct {
	rows []stats.Row
	pos  int
}

func (it *sliceIter) Next(ctx context.Context) (stats.Row, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if it.pos >= len(it.rows) {
		return nil, false, nil
	}
	r := it.rows[it.pos]
	it.pos++
	return r, true, nil
}

func (it *sliceIter) Close() error { return nil }

type memSource struct {
	fields []string
	rows   []stats.Row
}

func (m memSource) Fields() []string { return m.fields }
func (m memSource) Rows(ctx context.Context) (stats.RowIter, error) {
	return &sliceIter{rows: m.rows}, nil
}

func TestFromRows_ComputesExtremaAndNulls(t *testing.T) {
	src := memSource{
		fields: []string{"age"},
		rows: []stats.Row{
			{"age": field.NewInt(20)},
			{"age": field.NewInt(40)},
			{"age": field.Null},
		},
	}
	c, err := stats.FromRows(context.Background(), src, stats.DefaultDistinctCap)
	require.NoError(t, err)

	min, max, ok := c.MinMax("age")
	require.True(t, ok)
	assert.Equal(t, field.NewInt(20), min)
	assert.Equal(t, field.NewInt(40), max)

	nulls, nonNulls, total := c.NullCounts("age")
	assert.Equal(t, int64(1), nulls)
	assert.Equal(t, int64(2), nonNulls)
	assert.Equal(t, int64(3), total)

	typ, ok := c.LogicalType("age")
	require.True(t, ok)
	assert.Equal(t, field.Int, typ)
}

func TestFromRows_DistinctCapTruncation(t *testing.T) {
	rows := make([]stats.Row, 0, 5)
	for i := range 5 {
		rows = append(rows, stats.Row{"code": field.NewInt(int64(i))})
	}
	src := memSource{fields: []string{"code"}, rows: rows}

	c, err := stats.FromRows(context.Background(), src, 3)
	require.NoError(t, err)

	values, truncated := c.DistinctValues("code", 3)
	assert.Len(t, values, 3)
	assert.True(t, truncated)
}

func TestFromRows_StringLengthRange(t *testing.T) {
	src := memSource{
		fields: []string{"name"},
		rows: []stats.Row{
			{"name": field.NewString("al")},
			{"name": field.NewString("alexandra")},
		},
	}
	c, err := stats.FromRows(context.Background(), src, stats.DefaultDistinctCap)
	require.NoError(t, err)

	min, max, ok := c.LengthRange("name")
	require.True(t, ok)
	assert.Equal(t, int64(2), min)
	assert.Equal(t, int64(9), max)
}

func TestFromRows_RespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := memSource{fields: []string{"age"}, rows: []stats.Row{{"age": field.NewInt(1)}}}
	_, err := stats.FromRows(ctx, src, stats.DefaultDistinctCap)
	assert.ErrorIs(t, err, context.Canceled)
}
