package field

// Type identifies a field's logical type (spec: bool, int, real, string, date).
type Type uint8

const (
	Unknown Type = iota
	Bool
	Int
	Real
	String
	Date
)

// String returns the on-disk token for the type ("int", "real", ...).
func (t Type) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Real:
		return "real"
	case String:
		return "string"
	case Date:
		return "date"
	default:
		return "unknown"
	}
}

// ParseType parses the on-disk token produced by Type.String.
func ParseType(s string) (Type, bool) {
	switch s {
	case "bool":
		return Bool, true
	case "int":
		return Int, true
	case "real":
		return Real, true
	case "string":
		return String, true
	case "date":
		return Date, true
	default:
		return Unknown, false
	}
}

// IsNumeric reports whether t is Int or Real.
func (t Type) IsNumeric() bool {
	return t == Int || t == Real
}

// TypingPolicy controls whether Int and Real are conflated during
// verification (spec §3.1, §4.4).
type TypingPolicy uint8

const (
	// Sloppy treats Int and Real as interchangeable.
	Sloppy TypingPolicy = iota
	// Strict requires an exact logical-type match.
	Strict
)

func (p TypingPolicy) String() string {
	if p == Strict {
		return "strict"
	}
	return "sloppy"
}

// Equal reports whether t and other are considered the same type under policy.
func (t Type) Equal(other Type, policy TypingPolicy) bool {
	if t == other {
		return true
	}
	if policy == Sloppy {
		return t.IsNumeric() && other.IsNumeric()
	}
	return false
}
