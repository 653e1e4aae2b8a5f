package field

import (
	"encoding/json"
	"strconv"
	"time"
)

// dateLayouts are tried in order when classifying a string against a Date
// hint. RFC3339 covers timestamped dates; the bare layout covers plain
// calendar dates, which is what most tabular sources emit.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// Classify normalises a raw decoded value (as produced by encoding/json,
// a CSV reader, or a hand-built row) into a Value.
//
// hint is the field's declared logical type, if known (pass Unknown if not);
// it disambiguates string-encoded cells from adapters like CSV, where every
// value arrives as a string, so that a column declared Date or Int still
// classifies correctly. hint never forces a classification that doesn't
// parse: on parse failure Classify falls back to the value's natural kind.
//
// A nil raw value, or an empty string under any hint other than String,
// classifies as the null Value with ok == true; under a String hint an
// empty string stays an empty String. Callers distinguish "null" from
// "unparseable" via IsNull.
func Classify(raw any, hint Type) (Value, bool) {
	switch v := raw.(type) {
	case nil:
		return Null, true
	case bool:
		return NewBool(v), true
	case json.Number:
		return classifyNumber(v, hint)
	case int:
		return NewInt(int64(v)), true
	case int64:
		return NewInt(v), true
	case float64:
		if hint == Int && v == float64(int64(v)) {
			return NewInt(int64(v)), true
		}
		return NewReal(v), true
	case string:
		return classifyString(v, hint)
	case time.Time:
		return NewDate(v), true
	default:
		return Value{}, false
	}
}

func classifyNumber(n json.Number, hint Type) (Value, bool) {
	if hint != Real {
		if i, err := n.Int64(); err == nil {
			return NewInt(i), true
		}
	}
	if f, err := n.Float64(); err == nil {
		return NewReal(f), true
	}
	return Value{}, false
}

func classifyString(s string, hint Type) (Value, bool) {
	if s == "" && hint != String {
		return Null, true
	}
	switch hint {
	case Int:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return NewInt(i), true
		}
	case Real:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return NewReal(f), true
		}
	case Bool:
		if b, err := strconv.ParseBool(s); err == nil {
			return NewBool(b), true
		}
	case Date:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return NewDate(t), true
			}
		}
	case String:
		return NewString(s), true
	case Unknown:
		// No declared type: sniff in order of specificity so that e.g. "42"
		// in a CSV column with no schema classifies as Int rather than String.
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return NewInt(i), true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return NewReal(f), true
		}
		if b, err := strconv.ParseBool(s); err == nil {
			return NewBool(b), true
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return NewDate(t), true
			}
		}
	}
	return NewString(s), true
}
