package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Encode returns the JSON object representation of m. Unset and ignored
// properties are omitted; keys follow the schema's key mapper and appear in
// declaration order.
func Encode(m Model) ([]byte, error) {
	if isNil(m) {
		return nil, ErrNilModel
	}

	s := m.Schema()

	var buf bytes.Buffer

	buf.WriteByte('{')

	first := true

	for _, f := range s.fields {
		if s.IsIgnored(f.Name) {
			continue
		}

		v, ok := f.value(f.target(m))
		if !ok {
			continue
		}

		key, err := json.Marshal(s.keys.ToWire(f.Name))
		if err != nil {
			return nil, fmt.Errorf("encoding key of %s.%s: %w", s.name, f.Name, err)
		}

		val, err := encodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("encoding %s.%s: %w", s.name, f.Name, err)
		}

		if !first {
			buf.WriteByte(',')
		}

		first = false

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func encodeValue(v any) ([]byte, error) {
	if nested, ok := v.(Model); ok {
		return Encode(nested)
	}

	return json.Marshal(v)
}

// ToMap returns the external representation of m as a generic map.
func ToMap(m Model) (map[string]any, error) {
	data, err := Encode(m)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Decode builds a new instance of M from its JSON representation. On
// failure it returns the zero M and an error wrapping ErrDecode.
func Decode[M Model](data []byte) (M, error) {
	var zero M

	m, err := decodeNew(zero.Schema(), data)
	if err != nil {
		return zero, err
	}

	out, ok := m.(M)
	if !ok {
		return zero, fmt.Errorf("%w: schema %s allocates %T", ErrDecode, zero.Schema().Name(), m)
	}

	return out, nil
}

// DecodeSchema builds a new instance of s from its JSON representation.
func DecodeSchema(s *Schema, data []byte) (Model, error) {
	return decodeNew(s, data)
}

// DecodeInto replaces every property of m with the decoded representation.
// Ignored properties keep their values; m is left untouched when decoding
// fails.
func DecodeInto(data []byte, m Model) error {
	if isNil(m) {
		return ErrNilModel
	}

	s := m.Schema()

	tmp, err := decodeNew(s, data)
	if err != nil {
		return err
	}

	for _, f := range s.fields {
		if s.IsIgnored(f.Name) {
			continue
		}

		f.assign(m, tmp)
	}

	return nil
}

func decodeNew(s *Schema, data []byte) (Model, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, s.name, err)
	}

	if obj == nil {
		return nil, fmt.Errorf("%w: %s: null document", ErrDecode, s.name)
	}

	m := s.New()
	for _, f := range s.fields {
		if s.IsIgnored(f.Name) {
			continue
		}

		raw, ok := obj[s.keys.ToWire(f.Name)]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), nullLiteral) {
			continue
		}

		if err := f.set(m, raw); err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %w", ErrDecode, s.name, f.Name, err)
		}
	}

	if err := validate(s, m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return m, nil
}

// Validate reports an error wrapping ErrIncomplete when a required property
// of m is absent.
func Validate(m Model) error {
	if isNil(m) {
		return ErrIncomplete
	}

	return validate(m.Schema(), m)
}

func validate(s *Schema, m Model) error {
	for _, name := range s.required {
		f := s.fields[s.index[name]]
		if !f.Present(m) {
			return fmt.Errorf("%w: %s.%s is required", ErrIncomplete, s.name, name)
		}
	}

	return nil
}

// EncodeModels encodes models as one JSON array. It fails without output on
// an empty sequence, on a nil or incomplete instance, or on an encoding
// error.
func EncodeModels(models []Model) ([]byte, error) {
	if len(models) == 0 {
		return nil, ErrEmpty
	}

	items := make([]json.RawMessage, len(models))
	for i, m := range models {
		if err := Validate(m); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		data, err := Encode(m)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		items[i] = data
	}

	out, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding sequence: %w", err)
	}

	return out, nil
}

// EncodeAll is EncodeModels for a typed sequence.
func EncodeAll[M Model](models []M) ([]byte, error) {
	items := make([]Model, len(models))
	for i, m := range models {
		items[i] = m
	}

	return EncodeModels(items)
}

// DecodeAll decodes a JSON array produced by EncodeAll. Any failing element
// fails the whole call.
func DecodeAll[M Model](data []byte) ([]M, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	out := make([]M, 0, len(raws))
	for i, raw := range raws {
		m, err := Decode[M](raw)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		out = append(out, m)
	}

	return out, nil
}
