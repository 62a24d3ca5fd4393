package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPresent(t *testing.T) {
	empty := ""
	word := "alice"
	zero := int64(0)

	var nilStr *string

	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"empty string", "", false},
		{"string", "a", true},
		{"nil string pointer", nilStr, false},
		{"empty string pointer", &empty, false},
		{"string pointer", &word, true},
		{"zero", 0, true},
		{"zero pointer", &zero, true},
		{"false", false, true},
		{"float zero", 0.0, true},
		{"empty list", []string{}, false},
		{"nil list", []string(nil), false},
		{"list", []string{"a"}, true},
		{"empty any list", []any{}, false},
		{"empty map", map[string]any{}, false},
		{"map", map[string]bool{"admin": true}, true},
		{"empty typed map", map[string]int{}, false},
		{"null raw", json.RawMessage("null"), false},
		{"empty raw string", json.RawMessage(`""`), false},
		{"raw zero", json.RawMessage("0"), true},
		{"json number", json.Number("1"), true},
		{"struct", struct{}{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPresent(tt.v))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "model", KindModel.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
