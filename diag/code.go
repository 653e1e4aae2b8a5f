package diag

// CodeCategory represents the semantic domain of a diagnostic code.
type CodeCategory uint8

const (
	// CategoryDocument is for constraint-document-level errors: malformed
	// JSON, impossible bounds, schema mismatches against a dataset.
	CategoryDocument CodeCategory = iota

	// CategoryConstraint is for per-constraint evaluation outcomes
	// produced by Verifier/Detector.
	CategoryConstraint
)

// String returns a human-readable label for the category.
func (c CodeCategory) String() string {
	switch c {
	case CategoryDocument:
		return "document"
	case CategoryConstraint:
		return "constraint"
	default:
		return "unknown"
	}
}

// Code is a stable programmatic identifier for an Issue.
//
// Code.String() values are globally unique across categories. The unexported
// fields enforce a closed set: only codes defined in this package are valid.
type Code struct {
	value string
	cat   CodeCategory
}

// String returns the code's on-the-wire token (e.g. "below_min").
func (c Code) String() string { return c.value }

// Category returns the code's category.
func (c Code) Category() CodeCategory { return c.cat }

// IsZero reports whether the code is unset.
func (c Code) IsZero() bool { return c.value == "" }

func code(value string, cat CodeCategory) Code { return Code{value: value, cat: cat} }

// Document-level codes.
var (
	// MalformedDocument indicates the JSON document could not be parsed.
	MalformedDocument = code("malformed_document", CategoryDocument)

	// ImpossibleBounds indicates a field declares Min > Max.
	ImpossibleBounds = code("impossible_bounds", CategoryDocument)

	// DuplicateConstraintKind indicates a field declares the same
	// constraint kind twice.
	DuplicateConstraintKind = code("duplicate_constraint_kind", CategoryDocument)

	// IncompatibleAllowedValuesAndRex indicates AllowedValues contains a
	// value no Rex pattern matches.
	IncompatibleAllowedValuesAndRex = code("incompatible_allowed_values_and_rex", CategoryDocument)

	// UnknownFieldType indicates a "type" token that isn't one of the
	// declared logical field types.
	UnknownFieldType = code("unknown_field_type", CategoryDocument)

	// SchemaMismatch indicates a document field is absent from the
	// dataset, or a strict-mode dataset field is absent from the document.
	SchemaMismatch = code("schema_mismatch", CategoryDocument)

	// ProviderError indicates a statistics-provider I/O failure.
	ProviderError = code("provider_error", CategoryDocument)
)

// Constraint-evaluation codes, one per Verifier/Detector failure reason
// (spec §6.3, §4.5). These are the stable identifiers a fatal load error
// and an inline ConstraintReport share, per the module's diagnostics
// design: a reason code means the same thing wherever it surfaces.
var (
	MissingField    = code("missing_field", CategoryConstraint)
	Inapplicable    = code("inapplicable", CategoryConstraint)
	TypeMismatch    = code("type_mismatch", CategoryConstraint)
	BelowMin        = code("below_min", CategoryConstraint)
	AboveMax        = code("above_max", CategoryConstraint)
	WrongSign       = code("wrong_sign", CategoryConstraint)
	TooShort        = code("too_short", CategoryConstraint)
	TooLong         = code("too_long", CategoryConstraint)
	TooManyNulls    = code("too_many_nulls", CategoryConstraint)
	DuplicateValues = code("duplicate_values", CategoryConstraint)
	ValueNotAllowed = code("value_not_allowed", CategoryConstraint)
	NoPatternMatch  = code("no_pattern_match", CategoryConstraint)

	// MultiFieldViolation indicates a cross-field constraint (FieldA Op
	// FieldB) failed, either via the aggregate shortcut or a row scan.
	MultiFieldViolation = code("multifield_violation", CategoryConstraint)
)

var allCodes = []Code{
	MalformedDocument, ImpossibleBounds, DuplicateConstraintKind,
	IncompatibleAllowedValuesAndRex, UnknownFieldType, SchemaMismatch, ProviderError,
	MissingField, Inapplicable, TypeMismatch, BelowMin, AboveMax, WrongSign,
	TooShort, TooLong, TooManyNulls, DuplicateValues, ValueNotAllowed, NoPatternMatch,
	MultiFieldViolation,
}

// AllCodes returns every defined code. The returned slice is a copy.
func AllCodes() []Code {
	out := make([]Code, len(allCodes))
	copy(out, allCodes)
	return out
}

// CodesByCategory returns the defined codes in the given category.
func CodesByCategory(cat CodeCategory) []Code {
	var out []Code
	for _, c := range allCodes {
		if c.cat == cat {
			out = append(out, c)
		}
	}
	return out
}
