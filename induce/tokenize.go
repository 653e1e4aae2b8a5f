package induce

import "unicode"

// class identifies the character class of a run (spec §4.3 step 1), in
// order of specificity: digits are the most specific, a mixed-case letter
// run the least specific alphabetic class, and punctuation/whitespace are
// carried as literal text rather than a generic class.
type class uint8

const (
	classDigit class = iota
	classUpper
	classLower
	classMixedAlpha
	classLiteral
)

// run is one maximal span of a single class within a tokenised string.
type run struct {
	class   class
	length  int
	literal string // populated only for classLiteral runs
}

// tokenize splits s into maximal same-class runs (spec §4.3 step 1-2).
// Consecutive letters (regardless of case) form one run whose refined
// class — upper, lower, or mixed — is decided once the run's extent is
// known; digits and non-alphanumeric characters each form their own runs.
// Only ASCII letters and digits are classed, since the class atoms are
// the ASCII sets [0-9], [A-Z], [a-z] and [A-Za-z]; every other rune is
// literal text.
func tokenize(s string) []run {
	runes := []rune(s)
	var runs []run

	i := 0
	for i < len(runes) {
		switch {
		case isASCIIDigit(runes[i]):
			j := i
			for j < len(runes) && isASCIIDigit(runes[j]) {
				j++
			}
			runs = append(runs, run{class: classDigit, length: j - i})
			i = j

		case isASCIILetter(runes[i]):
			j := i
			allUpper, allLower := true, true
			for j < len(runes) && isASCIILetter(runes[j]) {
				if unicode.IsUpper(runes[j]) {
					allLower = false
				} else if unicode.IsLower(runes[j]) {
					allUpper = false
				} else {
					allUpper, allLower = false, false
				}
				j++
			}
			c := classMixedAlpha
			switch {
			case allUpper:
				c = classUpper
			case allLower:
				c = classLower
			}
			runs = append(runs, run{class: c, length: j - i})
			i = j

		default:
			// Punctuation, symbols, whitespace, and non-ASCII runes are
			// carried verbatim as a literal run; only truly identical
			// adjacent characters
			// merge (e.g. "--" is one literal run, "- " is two: a
			// punctuation char then a space).
			j := i + 1
			for j < len(runes) && runes[j] == runes[i] {
				j++
			}
			runs = append(runs, run{
				class:   classLiteral,
				length:  j - i,
				literal: string(runes[i:j]),
			})
			i = j
		}
	}
	return runs
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

func isASCIILetter(r rune) bool { return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') }

// signature returns the class sequence of runs, which is the clustering
// key from spec §4.3 step 3: strings cluster together iff their
// signatures are equal.
func signature(runs []run) string {
	b := make([]byte, len(runs))
	for i, r := range runs {
		b[i] = byte('0' + r.class)
	}
	return string(b)
}
