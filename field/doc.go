// Package field defines the logical type system shared by every constraint
// and statistics-provider operation: the five logical field types, a
// typing policy controlling int/real conflation, and a typed Value union
// used anywhere a constraint parameter or counterexample needs to carry a
// scalar.
package field
