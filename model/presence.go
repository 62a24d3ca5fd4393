package model

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// IsPresent reports whether v counts as a value for merge purposes.
//
// Absent values are nil, typed nil pointers, the empty string, empty slices
// and maps, and the JSON literal null. Numeric zero and false are present.
// A non-nil nested model is present whatever its own properties hold.
func IsPresent(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case *string:
		return x != nil && *x != ""
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	case json.Number:
		return x != ""
	case json.RawMessage:
		trimmed := bytes.TrimSpace(x)
		return len(trimmed) > 0 && !bytes.Equal(trimmed, nullLiteral) &&
			!bytes.Equal(trimmed, []byte(`""`)) &&
			!bytes.Equal(trimmed, []byte(`[]`)) &&
			!bytes.Equal(trimmed, []byte(`{}`))
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	case []string:
		return len(x) > 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		if _, ok := v.(Model); ok {
			return true
		}

		return IsPresent(rv.Elem().Interface())
	case reflect.Slice, reflect.Map:
		return rv.Len() > 0
	case reflect.String:
		return rv.Len() > 0
	default:
		return true
	}
}

var nullLiteral = []byte("null")

// isNil reports whether m is nil or a typed nil pointer.
func isNil(m Model) bool {
	if m == nil {
		return true
	}

	rv := reflect.ValueOf(m)

	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
