package induce

import (
	"regexp"
	"strconv"
)

// cluster groups every string whose tokenisation shares one class
// signature (spec §4.3 step 3), tracking first-seen order for both
// cluster creation and membership.
type cluster struct {
	runs    []run   // one example's run list, for class/length-position shape
	members [][]run // every member's run list, in first-seen order
}

func clusterBySignature(all [][]run) []*cluster {
	order := make([]string, 0)
	bySig := make(map[string]*cluster)

	for _, runs := range all {
		sig := signature(runs)
		c, ok := bySig[sig]
		if !ok {
			c = &cluster{runs: runs}
			bySig[sig] = c
			order = append(order, sig)
		}
		c.members = append(c.members, runs)
	}

	out := make([]*cluster, len(order))
	for i, sig := range order {
		out[i] = bySig[sig]
	}
	return out
}

// positionLengthRange returns the [lo, hi] length range observed at run
// index pos across every member of the cluster.
func (c *cluster) positionLengthRange(pos int) (lo, hi int) {
	lo, hi = c.members[0][pos].length, c.members[0][pos].length
	for _, m := range c.members[1:] {
		l := m[pos].length
		if l < lo {
			lo = l
		}
		if l > hi {
			hi = l
		}
	}
	return lo, hi
}

// positionLiterals returns the distinct literal texts observed at run
// index pos, in first-seen order (only meaningful for classLiteral
// positions).
func (c *cluster) positionLiterals(pos int) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, m := range c.members {
		lit := m[pos].literal
		if _, ok := seen[lit]; !ok {
			seen[lit] = struct{}{}
			out = append(out, lit)
		}
	}
	return out
}

func classAtom(c class) string {
	switch c {
	case classDigit:
		return "[0-9]"
	case classUpper:
		return "[A-Z]"
	case classLower:
		return "[a-z]"
	case classMixedAlpha:
		return "[A-Za-z]"
	default:
		return ""
	}
}

func lenSuffix(lo, hi int) string {
	switch {
	case lo == 1 && hi == 1:
		return ""
	case lo == hi:
		return "{" + strconv.Itoa(lo) + "}"
	default:
		return "{" + strconv.Itoa(lo) + "," + strconv.Itoa(hi) + "}"
	}
}

var metaEscaper = regexp.QuoteMeta
