// Package detect evaluates a constraint document against a dataset
// row-by-row, annotating each row with its failure count and, optionally,
// a pass/fail column per (field, constraint) pair (spec §4.5). Unlike
// package verify's per-column aggregates, detect's row-level semantics
// translate every constraint kind into a predicate over one row's value,
// evaluated while streaming the dataset once, single-threaded, in input
// order (spec §5).
package detect
