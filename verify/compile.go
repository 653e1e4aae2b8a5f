package verify

import (
	"fmt"
	"regexp"

	"github.com/tdda-go/constraints/constraint"
)

// Compile compiles every pattern in c once, in order, for repeated
// matching on the hot path (spec §6.1: patterns are already anchored;
// CompileAnchored double-checks rather than double-anchoring).
func Compile(c constraint.Rex) ([]*regexp.Regexp, error) {
	patterns := c.Patterns()
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := constraint.CompileAnchored(p)
		if err != nil {
			return nil, fmt.Errorf("verify: compiling pattern %q: %w", p, err)
		}
		out[i] = re
	}
	return out, nil
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
