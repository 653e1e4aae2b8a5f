package induce

import (
	"sort"
	"strings"
)

// DefaultAlternationCap is the default maximum number of branches an
// alternation may contain before a cluster with more distinct literal
// tokens at one position is split into separate patterns instead (spec
// §4.3 step 4).
const DefaultAlternationCap = 8

// Policy configures regex induction (spec §9 "explicit policy values").
type Policy struct {
	// AlternationCap bounds how many distinct literal tokens at one
	// position may be folded into a single pattern via a character class
	// or alternation group. Zero uses DefaultAlternationCap.
	AlternationCap int
}

func (p Policy) cap() int {
	if p.AlternationCap <= 0 {
		return DefaultAlternationCap
	}
	return p.AlternationCap
}

// Induce generalises samples into an ordered list of anchored regular
// expressions that together match every sample (spec §4.3). An empty
// input returns a nil pattern list (spec §7's "regex-inducer degenerate
// input").
func Induce(samples []string, policy Policy) []string {
	if len(samples) == 0 {
		return nil
	}

	all := make([][]run, len(samples))
	for i, s := range samples {
		all[i] = tokenize(s)
	}

	clusters := clusterBySignature(all)

	type patternWithOrder struct {
		pattern   string
		firstSeen int
	}
	var patterns []patternWithOrder
	seenAt := 0

	for _, c := range clusters {
		for _, p := range c.patterns(policy.cap()) {
			patterns = append(patterns, patternWithOrder{pattern: p, firstSeen: seenAt})
			seenAt++
		}
	}

	// Step 5: sort by decreasing specificity (longer literal content
	// first), so the verifier's short-circuit match tries the most
	// informative pattern first. Ties preserve first-seen order for
	// determinism.
	sort.SliceStable(patterns, func(i, j int) bool {
		si, sj := specificity(patterns[i].pattern), specificity(patterns[j].pattern)
		if si != sj {
			return si > sj
		}
		return patterns[i].firstSeen < patterns[j].firstSeen
	})

	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = p.pattern
	}
	return out
}

// patterns builds one or more anchored patterns covering every member of
// c. Ordinarily a cluster yields exactly one pattern; it yields more than
// one only when a literal position's distinct-token count exceeds cap, in
// which case the cluster is split by that position's literal value so
// every pattern still matches only what it claims to (spec's correctness
// goal always wins over parsimony).
func (c *cluster) patterns(cap int) []string {
	splitPos := -1
	for pos, r := range c.runs {
		if r.class != classLiteral {
			continue
		}
		if len(c.positionLiterals(pos)) > cap {
			splitPos = pos
			break
		}
	}

	if splitPos == -1 {
		return []string{c.assemble(cap)}
	}

	// Split members into sub-clusters keyed by their literal text at
	// splitPos, preserving first-seen order, and recurse (a sub-cluster
	// may itself need splitting at a different position).
	var order []string
	groups := map[string]*cluster{}
	for _, m := range c.members {
		key := m[splitPos].literal
		g, ok := groups[key]
		if !ok {
			g = &cluster{runs: m}
			groups[key] = g
			order = append(order, key)
		}
		g.members = append(g.members, m)
	}

	var out []string
	for _, key := range order {
		out = append(out, groups[key].patterns(cap)...)
	}
	return out
}

// assemble builds the single anchored pattern for a cluster whose literal
// positions all have at most cap distinct tokens (spec §4.3 step 3-4).
func (c *cluster) assemble(cap int) string {
	var b strings.Builder
	b.WriteByte('^')
	for pos, r := range c.runs {
		if r.class == classLiteral {
			b.WriteString(literalAtom(c.positionLiterals(pos), cap))
			continue
		}
		lo, hi := c.positionLengthRange(pos)
		b.WriteString(classAtom(r.class))
		b.WriteString(lenSuffix(lo, hi))
	}
	b.WriteByte('$')
	return b.String()
}

// literalAtom renders a literal position's distinct tokens as an exact
// literal (one token), a bracket character class (every token is exactly
// one rune), or a non-capturing alternation (mixed-length tokens),
// whichever applies.
func literalAtom(tokens []string, cap int) string {
	if len(tokens) == 1 {
		return metaEscaper(tokens[0])
	}

	allSingleRune := true
	for _, t := range tokens {
		if len([]rune(t)) != 1 {
			allSingleRune = false
			break
		}
	}
	if allSingleRune && len(tokens) <= cap {
		var b strings.Builder
		b.WriteByte('[')
		for _, t := range tokens {
			b.WriteString(bracketEscape(t))
		}
		b.WriteByte(']')
		return b.String()
	}

	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = metaEscaper(t)
	}
	return "(?:" + strings.Join(parts, "|") + ")"
}

// bracketEscape escapes the handful of runes that are special inside a
// regexp bracket expression.
func bracketEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `]`, `\]`, `^`, `\^`, `-`, `\-`)
	return r.Replace(s)
}

// specificity scores a pattern by how much exact literal content it
// contains; used to order the most informative (longest literal prefix)
// patterns first.
func specificity(pattern string) int {
	n := 0
	inClass := false
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '^', '$', '{', '}', ',', '(', ')', '?', ':', '|':
			// structural, not literal content
		default:
			if !inClass && !isDigitByte(pattern[i]) {
				n++
			}
		}
	}
	return n
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }
