// Package discover turns the observed statistics of a field-statistics
// provider into the minimal constraint bundle the observed data
// currently satisfies (spec §4.2). Fields are discovered independently
// and fanned out across a bounded worker pool; the result preserves the
// provider's field order regardless of completion order.
package discover
