// Package constraint defines the tagged-union constraint value model
// (spec §3.2): one Go type per constraint kind, each immutable after
// construction, plus the Bundle that groups the constraints declared for a
// single field in the order they appear in the specification.
//
// The set of kinds is closed: Constraint carries an unexported marker
// method so no package outside constraint can introduce a new variant,
// keeping evaluation in discover, verify, and detect exhaustive and
// switch-based rather than relying on open interface dispatch.
package constraint
