package field

import (
	"fmt"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Value is a typed scalar: the value of a field in one row, a constraint
// bound, or a counterexample in a verification failure. The zero Value is
// the null value (Type() == Unknown).
//
// Value is a small closed union rather than an interface so that it can be
// compared, hashed into map keys (via Key), and copied freely.
type Value struct {
	typ Type
	b   bool
	i   int64
	f   float64
	s   string
	d   time.Time
}

// NewBool returns a Bool value.
func NewBool(b bool) Value { return Value{typ: Bool, b: b} }

// NewInt returns an Int value.
func NewInt(i int64) Value { return Value{typ: Int, i: i} }

// NewReal returns a Real value.
func NewReal(f float64) Value { return Value{typ: Real, f: f} }

// NewString returns a String value.
func NewString(s string) Value { return Value{typ: String, s: s} }

// NewDate returns a Date value.
func NewDate(d time.Time) Value { return Value{typ: Date, d: d.UTC()} }

// Null is the absence of a value (a SQL-style NULL / missing cell).
var Null = Value{}

// Type returns the value's logical type, or Unknown if the value is null.
func (v Value) Type() Type { return v.typ }

// IsNull reports whether v represents a missing value.
func (v Value) IsNull() bool { return v.typ == Unknown }

// Bool returns the boolean payload and whether v is a Bool.
func (v Value) Bool() (bool, bool) { return v.b, v.typ == Bool }

// Int returns the integer payload and whether v is an Int.
func (v Value) Int() (int64, bool) { return v.i, v.typ == Int }

// Real returns the float payload and whether v is a Real.
func (v Value) Real() (float64, bool) { return v.f, v.typ == Real }

// Str returns the string payload and whether v is a String.
func (v Value) Str() (string, bool) { return v.s, v.typ == String }

// Date returns the time payload and whether v is a Date.
func (v Value) Date() (time.Time, bool) { return v.d, v.typ == Date }

// Numeric returns v's value widened to float64 and whether v is Int or Real.
func (v Value) Numeric() (float64, bool) {
	switch v.typ {
	case Int:
		return float64(v.i), true
	case Real:
		return v.f, true
	default:
		return 0, false
	}
}

// Len returns the character length of a String value and whether v is a String.
func (v Value) Len() (int, bool) {
	if v.typ != String {
		return 0, false
	}
	return len([]rune(v.s)), true
}

// Equal reports structural equality. Int and Real never compare equal to
// each other here regardless of typing policy — callers that need
// policy-aware comparison should widen both sides via Numeric first.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case Unknown:
		return true
	case Bool:
		return v.b == o.b
	case Int:
		return v.i == o.i
	case Real:
		return v.f == o.f
	case String:
		return v.s == o.s
	case Date:
		return v.d.Equal(o.d)
	default:
		return false
	}
}

// Key returns a string uniquely identifying v's type and payload, suitable
// for use as a map key when de-duplicating or counting distinct values.
func (v Value) Key() string {
	switch v.typ {
	case Unknown:
		return "\x00null"
	case Bool:
		return fmt.Sprintf("b:%t", v.b)
	case Int:
		return fmt.Sprintf("i:%d", v.i)
	case Real:
		return fmt.Sprintf("f:%v", v.f)
	case String:
		// NFC-normalise so visually identical strings with different
		// combining-character representations dedupe to one distinct value.
		return "s:" + norm.NFC.String(v.s)
	case Date:
		return "d:" + v.d.Format(time.RFC3339Nano)
	default:
		return ""
	}
}

// String renders v for diagnostics and document serialisation.
func (v Value) String() string {
	switch v.typ {
	case Unknown:
		return "null"
	case Bool:
		return fmt.Sprintf("%t", v.b)
	case Int:
		return fmt.Sprintf("%d", v.i)
	case Real:
		return fmt.Sprintf("%v", v.f)
	case String:
		return v.s
	case Date:
		return v.d.Format("2006-01-02")
	default:
		return "<invalid>"
	}
}

// Compare orders two values of the same logical type (or two numerics under
// sloppy widening). It panics if the values are not comparable; callers must
// check Type()/Numeric() compatibility first. Compare is used for min/max
// extrema tracking and for AllowedValues/Rex ordering diagnostics.
func Compare(a, b Value) int {
	if af, aok := a.Numeric(); aok {
		if bf, bok := b.Numeric(); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if a.typ != b.typ {
		panic(fmt.Sprintf("field: Compare called on incompatible types %s and %s", a.typ, b.typ))
	}
	switch a.typ {
	case String:
		switch {
		case a.s < b.s:
			return -1
		case a.s > b.s:
			return 1
		default:
			return 0
		}
	case Date:
		switch {
		case a.d.Before(b.d):
			return -1
		case a.d.After(b.d):
			return 1
		default:
			return 0
		}
	case Bool:
		if a.b == b.b {
			return 0
		}
		if !a.b {
			return -1
		}
		return 1
	default:
		panic(fmt.Sprintf("field: Compare called on non-orderable type %s", a.typ))
	}
}
