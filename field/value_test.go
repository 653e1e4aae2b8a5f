package field_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tdda-go/constraints/field"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		name     string
		value    field.Value
		expected string
	}{
		{"null", field.Null, "null"},
		{"bool", field.NewBool(true), "true"},
		{"int", field.NewInt(42), "42"},
		{"real", field.NewReal(3.5), "3.5"},
		{"string", field.NewString("hi"), "hi"},
		{"date", field.NewDate(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)), "2024-01-02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.String())
		})
	}
}

func TestValue_Numeric(t *testing.T) {
	f, ok := field.NewInt(7).Numeric()
	assert.True(t, ok)
	assert.Equal(t, 7.0, f)

	f, ok = field.NewReal(1.5).Numeric()
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	_, ok = field.NewString("x").Numeric()
	assert.False(t, ok)
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, field.NewInt(1).Equal(field.NewInt(1)))
	assert.False(t, field.NewInt(1).Equal(field.NewReal(1)))
	assert.True(t, field.Null.Equal(field.Value{}))
}

func TestCompare_NumericWidening(t *testing.T) {
	assert.Equal(t, 0, field.Compare(field.NewInt(2), field.NewReal(2.0)))
	assert.Equal(t, -1, field.Compare(field.NewInt(1), field.NewReal(2.0)))
	assert.Equal(t, 1, field.Compare(field.NewReal(3.0), field.NewInt(2)))
}

func TestCompare_String(t *testing.T) {
	assert.Equal(t, -1, field.Compare(field.NewString("a"), field.NewString("b")))
	assert.Equal(t, 0, field.Compare(field.NewString("a"), field.NewString("a")))
}

func TestCompare_IncompatiblePanics(t *testing.T) {
	assert.Panics(t, func() {
		field.Compare(field.NewString("a"), field.NewBool(true))
	})
}

func TestType_Equal(t *testing.T) {
	assert.True(t, field.Int.Equal(field.Real, field.Sloppy))
	assert.False(t, field.Int.Equal(field.Real, field.Strict))
	assert.True(t, field.Int.Equal(field.Int, field.Strict))
}

func TestParseType_RoundTrip(t *testing.T) {
	for _, tp := range []field.Type{field.Bool, field.Int, field.Real, field.String, field.Date} {
		parsed, ok := field.ParseType(tp.String())
		assert.True(t, ok)
		assert.Equal(t, tp, parsed)
	}
	_, ok := field.ParseType("nope")
	assert.False(t, ok)
}
