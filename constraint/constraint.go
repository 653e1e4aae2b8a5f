package constraint

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/tdda-go/constraints/field"
)

// Constraint is a single field-level constraint (spec §3.2). All
// implementations are immutable value types.
type Constraint interface {
	// Kind returns the constraint's variant.
	Kind() Kind

	// String returns a human-readable representation, used in diagnostics
	// and test failure messages.
	String() string

	// Equal reports structural equality with another constraint of the
	// same kind. Constraints of different kinds are never equal.
	Equal(other Constraint) bool

	// constraint is an unexported marker that closes the variant set.
	constraint()
}

// Precision controls boundary semantics for Min/Max (spec §3.2, §4.4).
type Precision uint8

const (
	// Closed is the default: the bound is inclusive (x >= min, x <= max).
	Closed Precision = iota
	// Open makes the bound exclusive (x > min, x < max).
	Open
	// Fuzzy requests epsilon-tolerant boundary comparison regardless of
	// the verifier's configured epsilon (spec §4.4's fuzzy formula).
	Fuzzy
)

func (p Precision) String() string {
	switch p {
	case Open:
		return "open"
	case Fuzzy:
		return "fuzzy"
	default:
		return "closed"
	}
}

// ParsePrecision parses the on-disk token. An empty string is Closed.
func ParsePrecision(s string) (Precision, bool) {
	switch s {
	case "", "closed":
		return Closed, true
	case "open":
		return Open, true
	case "fuzzy":
		return Fuzzy, true
	default:
		return Closed, false
	}
}

// Sign is the observed sign of a numeric field (spec §3.2).
type Sign uint8

const (
	SignPositive Sign = iota
	SignNonNegative
	SignZero
	SignNonPositive
	SignNegative
	SignNull
)

func (s Sign) String() string {
	switch s {
	case SignPositive:
		return "positive"
	case SignNonNegative:
		return "non-negative"
	case SignZero:
		return "zero"
	case SignNonPositive:
		return "non-positive"
	case SignNegative:
		return "negative"
	case SignNull:
		return "null"
	default:
		return "unknown"
	}
}

// ParseSign parses the on-disk token produced by Sign.String.
func ParseSign(s string) (Sign, bool) {
	switch s {
	case "positive":
		return SignPositive, true
	case "non-negative":
		return SignNonNegative, true
	case "zero":
		return SignZero, true
	case "non-positive":
		return SignNonPositive, true
	case "negative":
		return SignNegative, true
	case "null":
		return SignNull, true
	default:
		return 0, false
	}
}

// Satisfies reports whether a numeric value x has the declared sign.
func (s Sign) Satisfies(x float64) bool {
	switch s {
	case SignPositive:
		return x > 0
	case SignNonNegative:
		return x >= 0
	case SignZero:
		return x == 0
	case SignNonPositive:
		return x <= 0
	case SignNegative:
		return x < 0
	case SignNull:
		return false // only ever satisfied by an all-null column, never a value
	default:
		return false
	}
}

// ---- Type ----

// Type asserts the field's observed logical type (spec §3.2).
type Type struct {
	t field.Type
}

func NewType(t field.Type) Type { return Type{t: t} }

func (Type) Kind() Kind   { return KindType }
func (Type) constraint()  {}
func (c Type) Type() field.Type { return c.t }

func (c Type) String() string { return fmt.Sprintf("Type(%s)", c.t) }

func (c Type) Equal(other Constraint) bool {
	o, ok := other.(Type)
	return ok && c.t == o.t
}

// ---- Min / Max ----

// Min asserts every non-null value is >= v (or > v under Open precision).
type Min struct {
	v         field.Value
	precision Precision
}

func NewMin(v field.Value, precision Precision) Min { return Min{v: v, precision: precision} }

func (Min) Kind() Kind                 { return KindMin }
func (Min) constraint()                {}
func (c Min) Value() field.Value       { return c.v }
func (c Min) Precision() Precision     { return c.precision }

func (c Min) String() string {
	if c.precision == Closed {
		return fmt.Sprintf("Min(%s)", c.v)
	}
	return fmt.Sprintf("Min(%s, %s)", c.v, c.precision)
}

func (c Min) Equal(other Constraint) bool {
	o, ok := other.(Min)
	return ok && c.v.Equal(o.v) && c.precision == o.precision
}

// Max asserts every non-null value is <= v (or < v under Open precision).
type Max struct {
	v         field.Value
	precision Precision
}

func NewMax(v field.Value, precision Precision) Max { return Max{v: v, precision: precision} }

func (Max) Kind() Kind             { return KindMax }
func (Max) constraint()            {}
func (c Max) Value() field.Value   { return c.v }
func (c Max) Precision() Precision { return c.precision }

func (c Max) String() string {
	if c.precision == Closed {
		return fmt.Sprintf("Max(%s)", c.v)
	}
	return fmt.Sprintf("Max(%s, %s)", c.v, c.precision)
}

func (c Max) Equal(other Constraint) bool {
	o, ok := other.(Max)
	return ok && c.v.Equal(o.v) && c.precision == o.precision
}

// ---- Sign ----

type SignConstraint struct {
	sign Sign
}

func NewSign(s Sign) SignConstraint { return SignConstraint{sign: s} }

func (SignConstraint) Kind() Kind      { return KindSign }
func (SignConstraint) constraint()     {}
func (c SignConstraint) Sign() Sign    { return c.sign }
func (c SignConstraint) String() string { return fmt.Sprintf("Sign(%s)", c.sign) }

func (c SignConstraint) Equal(other Constraint) bool {
	o, ok := other.(SignConstraint)
	return ok && c.sign == o.sign
}

// ---- MinLength / MaxLength ----

type MinLength struct{ n int64 }

func NewMinLength(n int64) MinLength { return MinLength{n: n} }

func (MinLength) Kind() Kind          { return KindMinLength }
func (MinLength) constraint()         {}
func (c MinLength) N() int64          { return c.n }
func (c MinLength) String() string    { return fmt.Sprintf("MinLength(%d)", c.n) }

func (c MinLength) Equal(other Constraint) bool {
	o, ok := other.(MinLength)
	return ok && c.n == o.n
}

type MaxLength struct{ n int64 }

func NewMaxLength(n int64) MaxLength { return MaxLength{n: n} }

func (MaxLength) Kind() Kind       { return KindMaxLength }
func (MaxLength) constraint()      {}
func (c MaxLength) N() int64       { return c.n }
func (c MaxLength) String() string { return fmt.Sprintf("MaxLength(%d)", c.n) }

func (c MaxLength) Equal(other Constraint) bool {
	o, ok := other.(MaxLength)
	return ok && c.n == o.n
}

// ---- MaxNulls ----

type MaxNulls struct{ n int64 }

func NewMaxNulls(n int64) MaxNulls { return MaxNulls{n: n} }

func (MaxNulls) Kind() Kind       { return KindMaxNulls }
func (MaxNulls) constraint()      {}
func (c MaxNulls) N() int64       { return c.n }
func (c MaxNulls) String() string { return fmt.Sprintf("MaxNulls(%d)", c.n) }

func (c MaxNulls) Equal(other Constraint) bool {
	o, ok := other.(MaxNulls)
	return ok && c.n == o.n
}

// ---- NoDuplicates ----

type NoDuplicates struct{ v bool }

func NewNoDuplicates(v bool) NoDuplicates { return NoDuplicates{v: v} }

func (NoDuplicates) Kind() Kind       { return KindNoDuplicates }
func (NoDuplicates) constraint()      {}
func (c NoDuplicates) Value() bool    { return c.v }
func (c NoDuplicates) String() string { return fmt.Sprintf("NoDuplicates(%t)", c.v) }

func (c NoDuplicates) Equal(other Constraint) bool {
	o, ok := other.(NoDuplicates)
	return ok && c.v == o.v
}

// ---- AllowedValues ----

// AllowedValues asserts every non-null value is one of a finite set. The
// order given at construction is preserved for serialisation (first-seen
// order from discovery); Equal compares as a set, matching the document
// invariant that re-ordering allowed_values does not change its meaning.
type AllowedValues struct {
	values []field.Value
}

func NewAllowedValues(values []field.Value) AllowedValues {
	return AllowedValues{values: slices.Clone(values)}
}

func (AllowedValues) Kind() Kind  { return KindAllowedValues }
func (AllowedValues) constraint() {}

// Values returns a defensive copy in declaration order.
func (c AllowedValues) Values() []field.Value { return slices.Clone(c.values) }

func (c AllowedValues) Contains(v field.Value) bool {
	for _, a := range c.values {
		if a.Equal(v) {
			return true
		}
	}
	return false
}

func (c AllowedValues) String() string {
	parts := make([]string, len(c.values))
	for i, v := range c.values {
		parts[i] = v.String()
	}
	return fmt.Sprintf("AllowedValues[%s]", strings.Join(parts, ", "))
}

func (c AllowedValues) Equal(other Constraint) bool {
	o, ok := other.(AllowedValues)
	if !ok || len(c.values) != len(o.values) {
		return false
	}
	cKeys := make([]string, len(c.values))
	oKeys := make([]string, len(o.values))
	for i, v := range c.values {
		cKeys[i] = v.Key()
	}
	for i, v := range o.values {
		oKeys[i] = v.Key()
	}
	sort.Strings(cKeys)
	sort.Strings(oKeys)
	return slices.Equal(cKeys, oKeys)
}

// ---- Rex ----

// Rex asserts every non-null string value matches at least one pattern in
// an ordered, anchored regex list (spec §3.2, §4.3). Compilation is the
// caller's responsibility (verify.Compile); Rex itself stores source
// pattern strings so the constraint remains a plain, serialisable value.
type Rex struct {
	patterns []string
}

func NewRex(patterns []string) Rex { return Rex{patterns: slices.Clone(patterns)} }

func (Rex) Kind() Kind  { return KindRex }
func (Rex) constraint() {}

// Patterns returns a defensive copy of the ordered pattern list.
func (c Rex) Patterns() []string { return slices.Clone(c.patterns) }

func (c Rex) String() string {
	quoted := make([]string, len(c.patterns))
	for i, p := range c.patterns {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return fmt.Sprintf("Rex[%s]", strings.Join(quoted, ", "))
}

// Equal compares patterns order-insensitively: two Rex constraints that
// cover the same strings via differently-ordered pattern lists are the same
// constraint (order only matters for the verifier's short-circuit policy).
func (c Rex) Equal(other Constraint) bool {
	o, ok := other.(Rex)
	if !ok || len(c.patterns) != len(o.patterns) {
		return false
	}
	cp := slices.Clone(c.patterns)
	op := slices.Clone(o.patterns)
	sort.Strings(cp)
	sort.Strings(op)
	return slices.Equal(cp, op)
}
