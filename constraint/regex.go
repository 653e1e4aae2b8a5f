package constraint

import (
	"regexp"
	"strings"
)

// CompileAnchored compiles p as a full-match pattern. Patterns produced by
// the induce package are already anchored (^...$); patterns hand-edited
// into a document may not be, so the document is still treated as
// full-match per spec §6.1 ("the engine treats them as full-match") by
// wrapping any pattern that isn't already anchored.
func CompileAnchored(p string) (*regexp.Regexp, error) {
	if !strings.HasPrefix(p, "^") {
		p = "^(?:" + p + ")"
	}
	if !strings.HasSuffix(p, "$") {
		p = p + "$"
	}
	return regexp.Compile(p)
}
