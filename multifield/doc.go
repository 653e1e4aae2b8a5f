// Package multifield evaluates cross-field comparison constraints
// (Lt/Lte/Eq/Gt/Gte between two named fields), the pluggable multi-field
// extension point named in the constraint kind vocabulary: the core
// evaluates these constraints but ships no default discoverer for them —
// see Discoverer and NopDiscoverer.
package multifield
