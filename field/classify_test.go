package field_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tdda-go/constraints/field"
)

func TestClassify_NativeTypes(t *testing.T) {
	v, ok := field.Classify(nil, field.Unknown)
	assert.True(t, ok)
	assert.True(t, v.IsNull())

	v, ok = field.Classify(true, field.Unknown)
	assert.True(t, ok)
	assert.Equal(t, field.Bool, v.Type())

	v, ok = field.Classify(json.Number("42"), field.Unknown)
	assert.True(t, ok)
	assert.Equal(t, field.Int, v.Type())
	i, _ := v.Int()
	assert.Equal(t, int64(42), i)

	v, ok = field.Classify(json.Number("3.14"), field.Unknown)
	assert.True(t, ok)
	assert.Equal(t, field.Real, v.Type())
}

func TestClassify_CSVStringsWithHint(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		hint field.Type
		want field.Type
	}{
		{"int hint", "123", field.Int, field.Int},
		{"real hint", "1.5", field.Real, field.Real},
		{"bool hint", "true", field.Bool, field.Bool},
		{"date hint", "2024-01-02", field.Date, field.Date},
		{"string hint preserved", "007", field.String, field.String},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := field.Classify(tt.raw, tt.hint)
			assert.True(t, ok)
			assert.Equal(t, tt.want, v.Type())
		})
	}
}

func TestClassify_EmptyStringIsNullUnlessStringHint(t *testing.T) {
	v, ok := field.Classify("", field.Int)
	assert.True(t, ok)
	assert.True(t, v.IsNull())

	v, ok = field.Classify("", field.String)
	assert.True(t, ok)
	assert.False(t, v.IsNull())
	s, _ := v.Str()
	assert.Equal(t, "", s)
}

func TestClassify_NoHintSniffsSpecificityOrder(t *testing.T) {
	v, _ := field.Classify("42", field.Unknown)
	assert.Equal(t, field.Int, v.Type())

	v, _ = field.Classify("42.5", field.Unknown)
	assert.Equal(t, field.Real, v.Type())

	v, _ = field.Classify("hello", field.Unknown)
	assert.Equal(t, field.String, v.Type())
}

func TestClassify_UnparseableHintFallsBackToString(t *testing.T) {
	v, ok := field.Classify("not-a-number", field.Int)
	assert.True(t, ok)
	assert.Equal(t, field.String, v.Type())
}
