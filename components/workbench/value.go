package workbench

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
)

// Value is the closed scalar sum permitted in virtual table rows:
// string | number | boolean | null. Rows never hold untyped blobs, which keeps
// the synthesizer and renderer interfaces checkable.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
}

// Row maps a subset of a table's field names to scalar values.
type Row map[string]Value

// Null returns the null value.
func Null() Value { return Value{} }

// String wraps a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool wraps a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind reports the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string payload when the value holds one.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsNumber returns the numeric payload when the value holds one.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsBool returns the boolean payload when the value holds one.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// Float coerces the value to a float64, returning 0 for non-numeric kinds.
// KPI aggregation treats unparseable cells as zero, matching the renderer.
func (v Value) Float() float64 {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindString:
		if f, err := strconv.ParseFloat(v.str, 64); err == nil {
			return f
		}
	case KindBool:
		if v.b {
			return 1
		}
	}
	return 0
}

// Display renders the value for tables and exports. Null renders empty.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Equal compares two values structurally.
func (v Value) Equal(other Value) bool { return v == other }

// MarshalJSON encodes the underlying scalar (null for absent values).
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes any JSON scalar; objects and arrays are rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch val := raw.(type) {
	case nil:
		*v = Null()
	case string:
		*v = String(val)
	case float64:
		*v = Number(val)
	case bool:
		*v = Bool(val)
	default:
		return fmt.Errorf("workbench: row value must be a scalar, got %T", raw)
	}
	return nil
}

// MarshalYAML encodes the underlying scalar for manifest files.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case KindString:
		return v.str, nil
	case KindNumber:
		return v.num, nil
	case KindBool:
		return v.b, nil
	default:
		return nil, nil
	}
}

// UnmarshalYAML decodes any YAML scalar; nested structures are rejected.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	switch val := raw.(type) {
	case nil:
		*v = Null()
	case string:
		*v = String(val)
	case float64:
		*v = Number(val)
	case int:
		*v = Number(float64(val))
	case int64:
		*v = Number(float64(val))
	case bool:
		*v = Bool(val)
	default:
		return fmt.Errorf("workbench: row value must be a scalar, got %T", raw)
	}
	return nil
}

// CloneRow copies a row.
func CloneRow(row Row) Row {
	if row == nil {
		return nil
	}
	out := make(Row, len(row))
	for k, val := range row {
		out[k] = val
	}
	return out
}

// CloneRows deep-copies a row slice.
func CloneRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	out := make([]Row, len(rows))
	for i, row := range rows {
		out[i] = CloneRow(row)
	}
	return out
}
