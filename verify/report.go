package verify

import (
	"github.com/tdda-go/constraints/constraint"
	"github.com/tdda-go/constraints/diag"
	"github.com/tdda-go/constraints/multifield"
)

// Outcome is a single constraint's evaluation result (spec §4.4, §6.3).
type Outcome uint8

const (
	Pass Outcome = iota
	Fail
	NotApplicable
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	case NotApplicable:
		return "not_applicable"
	default:
		return "unknown"
	}
}

// Reason codes are short, machine-readable, and stable across releases —
// callers may switch on them (spec §6.3 "machine-readable reason code").
const (
	ReasonMissingField    = "missing_field"
	ReasonInapplicable    = "inapplicable"
	ReasonTypeMismatch    = "type_mismatch"
	ReasonBelowMin        = "below_min"
	ReasonAboveMax        = "above_max"
	ReasonWrongSign       = "wrong_sign"
	ReasonTooShort        = "too_short"
	ReasonTooLong         = "too_long"
	ReasonTooManyNulls    = "too_many_nulls"
	ReasonDuplicateValues = "duplicate_values"
	ReasonValueNotAllowed = "value_not_allowed"
	ReasonNoPatternMatch  = "no_pattern_match"
	ReasonProviderError   = "provider_error"

	ReasonMultiFieldViolation = "multifield_violation"
	ReasonMultiFieldError     = "multifield_error"
)

// reasonCodes maps each Reason token to its diag.Code, so a failure's
// reason is stable whether it surfaces via this inline report or a fatal
// diag.Issue raised elsewhere (spec §7 "diagnostics package").
var reasonCodes = map[string]diag.Code{
	ReasonMissingField:    diag.MissingField,
	ReasonInapplicable:    diag.Inapplicable,
	ReasonTypeMismatch:    diag.TypeMismatch,
	ReasonBelowMin:        diag.BelowMin,
	ReasonAboveMax:        diag.AboveMax,
	ReasonWrongSign:       diag.WrongSign,
	ReasonTooShort:        diag.TooShort,
	ReasonTooLong:         diag.TooLong,
	ReasonTooManyNulls:    diag.TooManyNulls,
	ReasonDuplicateValues: diag.DuplicateValues,
	ReasonValueNotAllowed: diag.ValueNotAllowed,
	ReasonNoPatternMatch:  diag.NoPatternMatch,
	ReasonProviderError:   diag.ProviderError,
}

// ConstraintReport is one constraint's outcome within a FieldReport.
type ConstraintReport struct {
	Kind    constraint.Kind
	Outcome Outcome

	// Reason, Code, and Counterexample are populated only on Fail (Code is
	// also set for NotApplicable's "inapplicable" reason).
	Reason         string
	Code           diag.Code
	Counterexample string
}

// withCode fills in Code from Reason, so every call site that builds a
// ConstraintReport with a Reason gets a matching diag.Code for free.
func withCode(r ConstraintReport) ConstraintReport {
	r.Code = reasonCodes[r.Reason]
	return r
}

// multiFieldReasonCodes mirrors reasonCodes for MultiFieldReport's
// smaller reason vocabulary.
var multiFieldReasonCodes = map[string]diag.Code{
	ReasonMultiFieldViolation: diag.MultiFieldViolation,
	ReasonMultiFieldError:     diag.ProviderError,
}

func withMultiFieldCode(r MultiFieldReport) MultiFieldReport {
	r.Code = multiFieldReasonCodes[r.Reason]
	return r
}

// FieldReport collects every constraint outcome for one field, in the
// bundle's declaration order (spec §3.2).
type FieldReport struct {
	Field       string
	Constraints []ConstraintReport
}

// Passed reports whether every constraint in this field's report passed
// (not_applicable does not count as a failure).
func (f FieldReport) Passed() bool {
	for _, c := range f.Constraints {
		if c.Outcome == Fail {
			return false
		}
	}
	return true
}

// MultiFieldReport is one cross-field constraint's outcome.
type MultiFieldReport struct {
	FieldA, FieldB string
	Op             multifield.Operator
	Outcome        Outcome

	// Reason, Code, and the counterexamples are populated only on Fail.
	Reason          string
	Code            diag.Code
	CounterexampleA string
	CounterexampleB string
}

// Report is the full verification result (spec §6.3).
type Report struct {
	Fields     []FieldReport
	MultiField []MultiFieldReport
}

// Passed reports whether every field and multi-field constraint in the
// report passed.
func (r Report) Passed() bool {
	for _, f := range r.Fields {
		if !f.Passed() {
			return false
		}
	}
	for _, m := range r.MultiField {
		if m.Outcome == Fail {
			return false
		}
	}
	return true
}

// Failures returns every failing ConstraintReport, annotated with its
// field name, in report order.
func (r Report) Failures() []struct {
	Field string
	ConstraintReport
} {
	var out []struct {
		Field string
		ConstraintReport
	}
	for _, f := range r.Fields {
		for _, c := range f.Constraints {
			if c.Outcome == Fail {
				out = append(out, struct {
					Field string
					ConstraintReport
				}{Field: f.Field, ConstraintReport: c})
			}
		}
	}
	return out
}
