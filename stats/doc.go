// Package stats defines the field-statistics provider contract (spec §4.1,
// §6.2): a small set of composable capability interfaces rather than one
// fat interface, so that a CSV adapter, a columnar reader, and a SQL-backed
// source can each implement only the reductions they can answer cheaply.
//
// Providers that cannot answer column reductions cheaply (e.g. a bare row
// cursor over a remote table) need only implement FieldSource and
// RowSource; FromRows computes every other capability by scanning the
// dataset once, in field-statistics-provider order, and exposes the result
// as a Provider.
package stats
