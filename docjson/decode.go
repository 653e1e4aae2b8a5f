package docjson

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/tdda-go/constraints/constraint"
	"github.com/tdda-go/constraints/field"
	"github.com/tdda-go/constraints/multifield"
)

// ParseOption configures Unmarshal (mirrors the teacher's
// ParseOption/Adapter functional-options shape).
type ParseOption func(*parseConfig)

type parseConfig struct {
	strictJSON bool
}

// WithStrictJSON disables jsonc preprocessing: input must be exact JSON
// with no comments or trailing commas. jsonc preprocessing is enabled by
// default.
func WithStrictJSON(strict bool) ParseOption {
	return func(c *parseConfig) { c.strictJSON = strict }
}

// Unmarshal parses data as a constraint document (spec §6.1). Malformed
// JSON and impossible bounds (e.g. min > max) are fatal, per spec §7
// ("invalid constraint document" is fatal at load time); every error
// this function returns falls in that category.
func Unmarshal(data []byte, opts ...ParseOption) (Document, error) {
	cfg := &parseConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	processed := data
	if !cfg.strictJSON {
		processed = jsonc.ToJSON(data)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(processed, &raw); err != nil {
		return Document{}, fmt.Errorf("docjson: invalid document: %w", err)
	}

	doc := Document{Unknown: make(map[string]json.RawMessage)}

	if idRaw, ok := raw["id"]; ok {
		if err := json.Unmarshal(idRaw, &doc.ID); err != nil {
			return Document{}, fmt.Errorf("docjson: invalid id: %w", err)
		}
		delete(raw, "id")
	}

	fieldsRaw, ok := raw["fields"]
	if !ok {
		return Document{}, fmt.Errorf("docjson: invalid document: missing \"fields\"")
	}
	delete(raw, "fields")

	var fieldObjs map[string]json.RawMessage
	if err := json.Unmarshal(fieldsRaw, &fieldObjs); err != nil {
		return Document{}, fmt.Errorf("docjson: invalid \"fields\": %w", err)
	}

	names, err := orderedKeys(fieldsRaw)
	if err != nil {
		return Document{}, fmt.Errorf("docjson: invalid \"fields\": %w", err)
	}

	for _, name := range names {
		b, err := unmarshalBundle(name, fieldObjs[name])
		if err != nil {
			return Document{}, fmt.Errorf("docjson: field %q: %w", name, err)
		}
		doc.Fields = append(doc.Fields, b)
	}

	if mfRaw, ok := raw["multifield"]; ok {
		mf, err := unmarshalMultiField(mfRaw)
		if err != nil {
			return Document{}, fmt.Errorf("docjson: invalid \"multifield\": %w", err)
		}
		doc.MultiField = mf
		delete(raw, "multifield")
	}

	doc.Unknown = raw
	return doc, nil
}

func unmarshalMultiField(raw json.RawMessage) ([]multifield.Constraint, error) {
	var wire []multiFieldWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	out := make([]multifield.Constraint, len(wire))
	for i, w := range wire {
		op, ok := multifield.ParseOperator(w.Op)
		if !ok {
			return nil, fmt.Errorf("unknown operator %q", w.Op)
		}
		out[i] = multifield.New(w.A, op, w.B)
	}
	return out, nil
}

// orderedKeys returns obj's top-level keys in their on-the-wire order,
// since Go's map iteration is unordered but document field order must be
// preserved end to end (spec §5 "ordering guarantees").
func orderedKeys(obj json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(obj))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object")
	}

	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key")
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func unmarshalBundle(fieldName string, raw json.RawMessage) (constraint.Bundle, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return constraint.Bundle{}, fmt.Errorf("invalid field object: %w", err)
	}

	hint := field.Unknown
	if typeRaw, ok := obj["type"]; ok {
		var typeStr string
		if err := json.Unmarshal(typeRaw, &typeStr); err != nil {
			return constraint.Bundle{}, fmt.Errorf("invalid \"type\": %w", err)
		}
		t, ok := field.ParseType(typeStr)
		if !ok {
			return constraint.Bundle{}, fmt.Errorf("unknown type %q", typeStr)
		}
		hint = t
	}

	var cs []constraint.Constraint
	for key, val := range obj {
		c, err := unmarshalConstraint(key, val, hint)
		if err != nil {
			return constraint.Bundle{}, fmt.Errorf("key %q: %w", key, err)
		}
		if c != nil {
			cs = append(cs, c)
		}
	}

	return constraint.NewBundle(fieldName, cs...)
}

func unmarshalConstraint(key string, raw json.RawMessage, hint field.Type) (constraint.Constraint, error) {
	switch key {
	case "type":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		t, ok := field.ParseType(s)
		if !ok {
			return nil, fmt.Errorf("unknown type %q", s)
		}
		return constraint.NewType(t), nil

	case "min":
		v, p, err := unmarshalBound(raw, hint)
		if err != nil {
			return nil, err
		}
		return constraint.NewMin(v, p), nil

	case "max":
		v, p, err := unmarshalBound(raw, hint)
		if err != nil {
			return nil, err
		}
		return constraint.NewMax(v, p), nil

	case "sign":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		sg, ok := constraint.ParseSign(s)
		if !ok {
			return nil, fmt.Errorf("unknown sign %q", s)
		}
		return constraint.NewSign(sg), nil

	case "min_length":
		n, err := unmarshalInt(raw)
		if err != nil {
			return nil, err
		}
		return constraint.NewMinLength(n), nil

	case "max_length":
		n, err := unmarshalInt(raw)
		if err != nil {
			return nil, err
		}
		return constraint.NewMaxLength(n), nil

	case "max_nulls":
		n, err := unmarshalInt(raw)
		if err != nil {
			return nil, err
		}
		return constraint.NewMaxNulls(n), nil

	case "no_duplicates":
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		return constraint.NewNoDuplicates(b), nil

	case "allowed_values":
		var raws []json.RawMessage
		if err := json.Unmarshal(raw, &raws); err != nil {
			return nil, err
		}
		values := make([]field.Value, len(raws))
		for i, r := range raws {
			v, err := decodeScalar(r, hint)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return constraint.NewAllowedValues(values), nil

	case "rex":
		var patterns []string
		if err := json.Unmarshal(raw, &patterns); err != nil {
			return nil, err
		}
		return constraint.NewRex(patterns), nil

	default:
		return nil, nil // unrecognised constraint key inside a field object is ignored, not fatal
	}
}

func unmarshalBound(raw json.RawMessage, hint field.Type) (field.Value, constraint.Precision, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj struct {
			Value     json.RawMessage `json:"value"`
			Precision string          `json:"precision"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return field.Value{}, 0, err
		}
		v, err := decodeScalar(obj.Value, hint)
		if err != nil {
			return field.Value{}, 0, err
		}
		p, ok := constraint.ParsePrecision(obj.Precision)
		if !ok {
			return field.Value{}, 0, fmt.Errorf("unknown precision %q", obj.Precision)
		}
		return v, p, nil
	}
	v, err := decodeScalar(raw, hint)
	return v, constraint.Closed, err
}

func unmarshalInt(raw json.RawMessage) (int64, error) {
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// decodeScalar classifies a JSON scalar into a field.Value, using hint to
// disambiguate (spec §3.1's sloppy/strict distinction starts here: a
// field declared "int" parses "5" as Int even though JSON numbers have
// no int/float distinction of their own).
func decodeScalar(raw json.RawMessage, hint field.Type) (field.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return field.Value{}, fmt.Errorf("invalid scalar: %w", err)
	}
	classified, ok := field.Classify(v, hint)
	if !ok {
		return field.Value{}, fmt.Errorf("cannot classify value %v as %s", v, hint)
	}
	return classified, nil
}
