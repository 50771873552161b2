package core

import (
	"encoding/json"
)

// Value is a column value captured from a result set: either a string or NULL.
// Native driver types never travel past the scan boundary.
type Value struct {
	String string
	Valid  bool
}

// StringValue returns a non-null Value.
func StringValue(s string) Value {
	return Value{String: s, Valid: true}
}

// Null returns the NULL Value.
func Null() Value {
	return Value{}
}

// IsNull reports whether the value is NULL.
func (v Value) IsNull() bool {
	return !v.Valid
}

// Ptr returns a pointer to the string, or nil for NULL.
func (v Value) Ptr() *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// MarshalJSON encodes NULL as null and everything else as a JSON string.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Ptr())
}

// UnmarshalJSON accepts a JSON string or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = StringValue(s)
	return nil
}

// MarshalYAML encodes NULL as a YAML null.
func (v Value) MarshalYAML() (any, error) {
	if !v.Valid {
		return nil, nil
	}
	return v.String, nil
}

// Row maps column name to value.
type Row map[string]Value

// ResultSet is a fully materialized query result.
type ResultSet struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}
