package constraint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdda-go/constraints/constraint"
	"github.com/tdda-go/constraints/field"
)

func TestConstraint_String(t *testing.T) {
	tests := []struct {
		name       string
		constraint constraint.Constraint
		expected   string
	}{
		{"Type", constraint.NewType(field.Int), "Type(int)"},
		{"Min closed", constraint.NewMin(field.NewInt(1), constraint.Closed), "Min(1)"},
		{"Min fuzzy", constraint.NewMin(field.NewInt(1), constraint.Fuzzy), "Min(1, fuzzy)"},
		{"Max", constraint.NewMax(field.NewInt(10), constraint.Closed), "Max(10)"},
		{"Sign", constraint.NewSign(constraint.SignPositive), "Sign(positive)"},
		{"MinLength", constraint.NewMinLength(2), "MinLength(2)"},
		{"MaxLength", constraint.NewMaxLength(5), "MaxLength(5)"},
		{"MaxNulls", constraint.NewMaxNulls(0), "MaxNulls(0)"},
		{"NoDuplicates", constraint.NewNoDuplicates(true), "NoDuplicates(true)"},
		{"AllowedValues", constraint.NewAllowedValues([]field.Value{field.NewInt(1), field.NewInt(2)}), "AllowedValues[1, 2]"},
		{"Rex", constraint.NewRex([]string{"^a$"}), `Rex["^a$"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.constraint.String())
		})
	}
}

func TestConstraint_Kind(t *testing.T) {
	assert.Equal(t, constraint.KindType, constraint.NewType(field.Int).Kind())
	assert.Equal(t, constraint.KindMin, constraint.NewMin(field.NewInt(1), constraint.Closed).Kind())
	assert.Equal(t, constraint.KindRex, constraint.NewRex(nil).Kind())
}

func TestAllowedValues_EqualIsSetEquality(t *testing.T) {
	a := constraint.NewAllowedValues([]field.Value{field.NewInt(1), field.NewInt(2)})
	b := constraint.NewAllowedValues([]field.Value{field.NewInt(2), field.NewInt(1)})
	assert.True(t, a.Equal(b))

	c := constraint.NewAllowedValues([]field.Value{field.NewInt(1), field.NewInt(3)})
	assert.False(t, a.Equal(c))
}

func TestRex_EqualIsOrderInsensitive(t *testing.T) {
	a := constraint.NewRex([]string{"^a$", "^b$"})
	b := constraint.NewRex([]string{"^b$", "^a$"})
	assert.True(t, a.Equal(b))
}

func TestBundle_RejectsDuplicateKind(t *testing.T) {
	_, err := constraint.NewBundle("age",
		constraint.NewMin(field.NewInt(1), constraint.Closed),
		constraint.NewMin(field.NewInt(2), constraint.Closed),
	)
	assert.Error(t, err)
}

func TestBundle_RejectsIncompatibleKind(t *testing.T) {
	_, err := constraint.NewBundle("name",
		constraint.NewType(field.String),
		constraint.NewSign(constraint.SignPositive),
	)
	assert.Error(t, err)
}

func TestBundle_RejectsMinGreaterThanMax(t *testing.T) {
	_, err := constraint.NewBundle("age",
		constraint.NewMin(field.NewInt(10), constraint.Closed),
		constraint.NewMax(field.NewInt(1), constraint.Closed),
	)
	assert.Error(t, err)
}

func TestBundle_AllPreservesDeclarationOrder(t *testing.T) {
	b, err := constraint.NewBundle("age",
		constraint.NewMax(field.NewInt(10), constraint.Closed),
		constraint.NewType(field.Int),
		constraint.NewMin(field.NewInt(0), constraint.Closed),
	)
	require.NoError(t, err)

	all := b.All()
	require.Len(t, all, 3)
	assert.Equal(t, constraint.KindType, all[0].Kind())
	assert.Equal(t, constraint.KindMin, all[1].Kind())
	assert.Equal(t, constraint.KindMax, all[2].Kind())
}

func TestBundle_AllowedValuesMustMatchRex(t *testing.T) {
	_, err := constraint.NewBundle("code",
		constraint.NewType(field.String),
		constraint.NewRex([]string{"^[A-Z]{2}$"}),
		constraint.NewAllowedValues([]field.Value{field.NewString("AB"), field.NewString("bad")}),
	)
	assert.Error(t, err)
}

func TestBundle_Get(t *testing.T) {
	b, err := constraint.NewBundle("age", constraint.NewMaxNulls(0))
	require.NoError(t, err)

	c, ok := b.Get(constraint.KindMaxNulls)
	require.True(t, ok)
	assert.Equal(t, int64(0), c.(constraint.MaxNulls).N())

	_, ok = b.Get(constraint.KindMin)
	assert.False(t, ok)
}
