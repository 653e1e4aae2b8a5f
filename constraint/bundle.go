package constraint

import (
	"fmt"

	"github.com/tdda-go/constraints/field"
)

// Bundle is the set of constraints declared for one field (spec §3.3). At
// most one constraint per Kind is allowed; constraints are stored and
// iterated in the declaration order from §3.2 regardless of construction
// order, which is what verify/detect rely on for deterministic report and
// column ordering.
type Bundle struct {
	field       string
	constraints map[Kind]Constraint
}

// NewBundle builds a Bundle for field, validating spec §3.3's invariants.
// Returns an error (not a panic) because bundles are usually built from
// untrusted on-disk documents.
func NewBundle(fieldName string, cs ...Constraint) (Bundle, error) {
	b := Bundle{field: fieldName, constraints: make(map[Kind]Constraint, len(cs))}
	for _, c := range cs {
		if _, dup := b.constraints[c.Kind()]; dup {
			return Bundle{}, fmt.Errorf("constraint: field %q has duplicate %s constraint", fieldName, c.Kind())
		}
		b.constraints[c.Kind()] = c
	}
	if err := b.Validate(); err != nil {
		return Bundle{}, err
	}
	return b, nil
}

// Field returns the field name this bundle applies to.
func (b Bundle) Field() string { return b.field }

// Get returns the constraint of the given kind, if present.
func (b Bundle) Get(k Kind) (Constraint, bool) {
	c, ok := b.constraints[k]
	return c, ok
}

// DeclaredType returns the field's declared logical type, if a Type
// constraint is present.
func (b Bundle) DeclaredType() (field.Type, bool) {
	c, ok := b.constraints[KindType]
	if !ok {
		return field.Unknown, false
	}
	return c.(Type).Type(), true
}

// All returns every constraint in the bundle, in spec §3.2 declaration
// order.
func (b Bundle) All() []Constraint {
	out := make([]Constraint, 0, len(b.constraints))
	for _, k := range Kinds() {
		if c, ok := b.constraints[k]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of constraints in the bundle.
func (b Bundle) Len() int { return len(b.constraints) }

// Validate re-checks spec §3.3's cross-constraint invariants: type
// compatibility (invariant 2) and Min <= Max (invariant 3). Invariant 1 (no
// duplicate kinds) is enforced structurally by the map-keyed construction
// and so never needs re-checking.
func (b Bundle) Validate() error {
	declared, hasType := b.DeclaredType()

	if hasType {
		for k := range b.constraints {
			if k == KindType {
				continue
			}
			if !kindCompatible(k, declared) {
				return fmt.Errorf("constraint: field %q: %s is not applicable to type %s", b.field, k, declared)
			}
		}
	}

	minC, hasMin := b.constraints[KindMin]
	maxC, hasMax := b.constraints[KindMax]
	if hasMin && hasMax {
		minV := minC.(Min).Value()
		maxV := maxC.(Max).Value()
		if cmp := compareIfOrderable(minV, maxV); cmp > 0 {
			return fmt.Errorf("constraint: field %q: min %s exceeds max %s", b.field, minV, maxV)
		}
	}

	if av, ok := b.constraints[KindAllowedValues]; ok {
		if rx, ok := b.constraints[KindRex].(Rex); ok {
			for _, v := range av.(AllowedValues).Values() {
				s, isStr := v.Str()
				if !isStr {
					continue
				}
				if !matchesAny(rx.Patterns(), s) {
					return fmt.Errorf("constraint: field %q: allowed value %q does not match any rex pattern", b.field, s)
				}
			}
		}
	}

	return nil
}

// kindCompatible reports whether constraint kind k can apply to a field of
// the given declared type (spec §3.3 invariant 2).
func kindCompatible(k Kind, t field.Type) bool {
	switch k {
	case KindMin, KindMax:
		return t.IsNumeric() || t == field.Date
	case KindSign:
		return t.IsNumeric()
	case KindMinLength, KindMaxLength:
		return t == field.String
	case KindAllowedValues, KindRex, KindMaxNulls, KindNoDuplicates:
		return true
	default:
		return true
	}
}

func compareIfOrderable(a, b field.Value) int {
	if _, aNum := a.Numeric(); aNum {
		if _, bNum := b.Numeric(); bNum {
			return field.Compare(a, b)
		}
	}
	if a.Type() == b.Type() && (a.Type() == field.Date || a.Type() == field.String) {
		return field.Compare(a, b)
	}
	return 0
}

// matchesAny is a cheap substring-free compile-and-check used only for the
// allowed-values/rex consistency invariant; verify.Compile performs the
// real, cached compilation used on the hot path.
func matchesAny(patterns []string, s string) bool {
	for _, p := range patterns {
		if re, err := CompileAnchored(p); err == nil && re.MatchString(s) {
			return true
		}
	}
	return false
}
