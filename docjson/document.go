package docjson

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/tdda-go/constraints/constraint"
	"github.com/tdda-go/constraints/multifield"
)

// Document is an in-memory constraint document: an ordered set of
// per-field bundles (spec §6.1) plus bookkeeping that the wire format
// carries but the constraint model itself doesn't need.
//
// ID identifies this document across discover/verify/detect runs (e.g.
// to correlate a verification report with the document it was checked
// against). New always assigns a fresh UUID; Unmarshal takes it from the
// document's "id" key and leaves it empty when that key is absent.
type Document struct {
	ID     string
	Fields []constraint.Bundle

	// MultiField holds the document's optional cross-field constraints
	// (spec §3.3 "an optional multi-field section follows"). Nil or
	// empty omits the "multifield" key entirely on Marshal.
	MultiField []multifield.Constraint

	// Unknown preserves any top-level JSON key this package doesn't
	// recognise, keyed by name, so round-tripping a document written by a
	// newer or different tool never silently drops data (spec §6.1
	// "unknown top-level keys are preserved verbatim on re-save").
	Unknown map[string]json.RawMessage
}

// New builds a Document from bundles, in the given order, assigning a
// fresh document ID.
func New(bundles ...constraint.Bundle) Document {
	return Document{ID: uuid.NewString(), Fields: bundles}
}

// Get returns the bundle for fieldName, if present.
func (d Document) Get(fieldName string) (constraint.Bundle, bool) {
	for _, b := range d.Fields {
		if b.Field() == fieldName {
			return b, true
		}
	}
	return constraint.Bundle{}, false
}
