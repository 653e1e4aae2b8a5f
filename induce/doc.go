// Package induce generalises a finite multiset of strings into a small,
// ordered list of anchored regular expressions that collectively match
// every input (spec §4.3).
//
// The algorithm tokenises each string into maximal runs of one character
// class, clusters strings whose run-class sequences match, computes a
// per-position length range within each cluster, and folds differing
// literal tokens at a single position into a bounded character
// alternative before falling back to splitting the cluster. Clustering and
// output order are both first-seen, so two runs over the same input in the
// same order produce byte-identical output (spec's determinism
// requirement).
package induce
