package constraint

import "fmt"

// Kind identifies a constraint variant. The order of these constants is the
// declaration order from spec §3.2, which doubles as the required ordering
// for per-field outcomes in a verification report (SPEC_FULL §4.4) and for
// per-constraint columns emitted by the detector (SPEC_FULL §4.5).
type Kind uint8

const (
	KindType Kind = iota
	KindMin
	KindMax
	KindSign
	KindMinLength
	KindMaxLength
	KindMaxNulls
	KindNoDuplicates
	KindAllowedValues
	KindRex
)

// Kinds lists every constraint kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindType, KindMin, KindMax, KindSign, KindMinLength, KindMaxLength,
		KindMaxNulls, KindNoDuplicates, KindAllowedValues, KindRex,
	}
}

// String returns the on-disk document key for the kind (e.g. "min_length").
func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindMin:
		return "min"
	case KindMax:
		return "max"
	case KindSign:
		return "sign"
	case KindMinLength:
		return "min_length"
	case KindMaxLength:
		return "max_length"
	case KindMaxNulls:
		return "max_nulls"
	case KindNoDuplicates:
		return "no_duplicates"
	case KindAllowedValues:
		return "allowed_values"
	case KindRex:
		return "rex"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}
