package docjson

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tdda-go/constraints/constraint"
	"github.com/tdda-go/constraints/field"
	"github.com/tdda-go/constraints/multifield"
)

// WriteOption configures Marshal's output (mirrors the teacher's
// WriteOption/writeConfig functional-options shape).
type WriteOption func(*writeConfig)

type writeConfig struct {
	indent string
}

// WithIndent sets the indentation string for pretty-printing ("" for
// compact output, the default).
func WithIndent(indent string) WriteOption {
	return func(c *writeConfig) { c.indent = indent }
}

// Marshal serialises doc to the spec §6.1 JSON wire format.
func Marshal(doc Document, opts ...WriteOption) ([]byte, error) {
	cfg := &writeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	out := make(map[string]json.RawMessage, len(doc.Unknown)+2)
	for k, v := range doc.Unknown {
		out[k] = v
	}

	if doc.ID != "" {
		idJSON, err := json.Marshal(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("docjson: marshalling id: %w", err)
		}
		out["id"] = idJSON
	}

	names := make([]string, len(doc.Fields))
	values := make([]json.RawMessage, len(doc.Fields))
	for i, b := range doc.Fields {
		fieldJSON, err := marshalBundle(b)
		if err != nil {
			return nil, fmt.Errorf("docjson: field %q: %w", b.Field(), err)
		}
		names[i] = b.Field()
		values[i] = fieldJSON
	}
	fieldsJSON, err := orderedObject(names, values)
	if err != nil {
		return nil, fmt.Errorf("docjson: marshalling fields: %w", err)
	}
	out["fields"] = fieldsJSON

	if len(doc.MultiField) > 0 {
		mfJSON, err := json.Marshal(marshalMultiField(doc.MultiField))
		if err != nil {
			return nil, fmt.Errorf("docjson: marshalling multifield: %w", err)
		}
		out["multifield"] = mfJSON
	}

	if cfg.indent != "" {
		return json.MarshalIndent(out, "", cfg.indent)
	}
	return json.Marshal(out)
}

// orderedObject hand-assembles a JSON object from names/values in the
// given order. Go's encoding/json always sorts map[string]T keys
// alphabetically, which would discard the caller's declared field
// order, so the object is built directly rather than round-tripped
// through a map (mirrors orderedKeys' reconstruction of order on decode).
func orderedObject(names []string, values []json.RawMessage) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(values[i])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalBundle(b constraint.Bundle) (json.RawMessage, error) {
	obj := make(map[string]any)
	for _, c := range b.All() {
		v, err := marshalConstraint(c)
		if err != nil {
			return nil, err
		}
		obj[c.Kind().String()] = v
	}
	return json.Marshal(obj)
}

func marshalConstraint(c constraint.Constraint) (any, error) {
	switch k := c.(type) {
	case constraint.Type:
		return k.Type().String(), nil
	case constraint.Min:
		return marshalBound(k.Value(), k.Precision()), nil
	case constraint.Max:
		return marshalBound(k.Value(), k.Precision()), nil
	case constraint.SignConstraint:
		return k.Sign().String(), nil
	case constraint.MinLength:
		return k.N(), nil
	case constraint.MaxLength:
		return k.N(), nil
	case constraint.MaxNulls:
		return k.N(), nil
	case constraint.NoDuplicates:
		return k.Value(), nil
	case constraint.AllowedValues:
		values := k.Values()
		out := make([]any, len(values))
		for i, v := range values {
			out[i] = scalarOf(v)
		}
		return out, nil
	case constraint.Rex:
		return k.Patterns(), nil
	default:
		return nil, fmt.Errorf("docjson: unknown constraint kind %v", c.Kind())
	}
}

// marshalBound renders a Min/Max value: a bare scalar under Closed
// precision (the common case), or {"value":, "precision":} otherwise
// (spec §6.1).
func marshalBound(v field.Value, p constraint.Precision) any {
	if p == constraint.Closed {
		return scalarOf(v)
	}
	return map[string]any{"value": scalarOf(v), "precision": p.String()}
}

// multiFieldWire is the on-disk shape of one cross-field constraint.
type multiFieldWire struct {
	A  string `json:"a"`
	Op string `json:"op"`
	B  string `json:"b"`
}

func marshalMultiField(cs []multifield.Constraint) []multiFieldWire {
	out := make([]multiFieldWire, len(cs))
	for i, c := range cs {
		out[i] = multiFieldWire{A: c.FieldA, Op: c.Op.String(), B: c.FieldB}
	}
	return out
}

// scalarOf renders a field.Value as a plain JSON-encodable scalar.
func scalarOf(v field.Value) any {
	switch v.Type() {
	case field.Bool:
		b, _ := v.Bool()
		return b
	case field.Int:
		i, _ := v.Int()
		return i
	case field.Real:
		f, _ := v.Real()
		return f
	case field.String:
		s, _ := v.Str()
		return s
	case field.Date:
		return v.String() // "2006-01-02", re-parsed by decodeScalar with a Date hint
	default:
		return nil
	}
}
