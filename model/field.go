package model

import (
	"encoding/json"
	"maps"
	"slices"
)

// Field describes one property of a schema together with typed accessors.
//
// Fields are built with the generic constructors of this package; the zero
// Field is not usable.
type Field struct {
	// Name is the property name, e.g. "isNew".
	Name string
	// Kind is the declared type tag.
	Kind Kind

	present func(m Model) bool
	value   func(m Model) (any, bool)
	copy    func(dst, src Model)
	decode  func(m Model, raw json.RawMessage) error

	// view maps an instance of the registering schema to an instance of
	// the type that declares the field. Nil for own fields.
	view func(m Model) Model
}

// Present reports whether the property holds a present value on m.
func (f Field) Present(m Model) bool {
	return f.present(f.target(m))
}

// Get returns the property value of m, or nil when the property is unset.
func (f Field) Get(m Model) any {
	v, ok := f.value(f.target(m))
	if !ok {
		return nil
	}

	return v
}

func (f Field) target(m Model) Model {
	if f.view == nil {
		return m
	}

	return f.view(m)
}

func (f Field) assign(dst, src Model) {
	f.copy(f.target(dst), f.target(src))
}

func (f Field) set(m Model, raw json.RawMessage) error {
	return f.decode(f.target(m), raw)
}

func (f Field) inherit(base func(Model) Model) Field {
	prev := f.view
	f.view = func(m Model) Model {
		m = base(m)
		if prev != nil {
			m = prev(m)
		}

		return m
	}

	return f
}

func (f Field) valid() bool {
	return f.Name != "" && f.present != nil && f.value != nil && f.copy != nil && f.decode != nil
}

// Optional describes an optional property stored behind a pointer, such as
// *string or *int64. A nil pointer is unset. Models and types with their own
// JSON encoding are handed out by pointer, so their pointer methods apply.
func Optional[M Model, V any](name string, kind Kind, ref func(M) **V) Field {
	return Field{
		Name: name,
		Kind: kind,
		present: func(m Model) bool {
			p := *ref(m.(M))
			if p == nil {
				return false
			}

			if _, ok := any(p).(Model); ok {
				return true
			}

			return IsPresent(*p)
		},
		value: func(m Model) (any, bool) {
			p := *ref(m.(M))
			if p == nil {
				return nil, false
			}

			if byRef(p) {
				return p, true
			}

			return *p, true
		},
		copy: func(dst, src Model) {
			p := *ref(src.(M))
			if p == nil {
				*ref(dst.(M)) = nil
				return
			}

			if n, ok := any(p).(Model); ok {
				if c, ok := clone(n).(*V); ok {
					*ref(dst.(M)) = c
					return
				}
			}

			v := *p
			*ref(dst.(M)) = &v
		},
		decode: func(m Model, raw json.RawMessage) error {
			var v *V
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}

			*ref(m.(M)) = v

			return nil
		},
	}
}

// byRef reports whether the value behind p must be used through p.
func byRef(p any) bool {
	switch p.(type) {
	case Model, json.Marshaler:
		return true
	default:
		return false
	}
}

// Value describes a property stored by value, such as a string identifier.
// It is always set; an empty string still counts as absent.
func Value[M Model, V any](name string, kind Kind, ref func(M) *V) Field {
	return Field{
		Name: name,
		Kind: kind,
		present: func(m Model) bool {
			return IsPresent(*ref(m.(M)))
		},
		value: func(m Model) (any, bool) {
			return *ref(m.(M)), true
		},
		copy: func(dst, src Model) {
			*ref(dst.(M)) = *ref(src.(M))
		},
		decode: func(m Model, raw json.RawMessage) error {
			var v V
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}

			*ref(m.(M)) = v

			return nil
		},
	}
}

// List describes a slice property. Nil and empty slices are absent.
func List[M Model, E any](name string, ref func(M) *[]E) Field {
	return Field{
		Name: name,
		Kind: KindList,
		present: func(m Model) bool {
			return len(*ref(m.(M))) > 0
		},
		value: func(m Model) (any, bool) {
			s := *ref(m.(M))
			return s, s != nil
		},
		copy: func(dst, src Model) {
			*ref(dst.(M)) = cloneList(*ref(src.(M)))
		},
		decode: func(m Model, raw json.RawMessage) error {
			var v []E
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}

			*ref(m.(M)) = v

			return nil
		},
	}
}

// cloneList copies s, cloning elements that are models.
func cloneList[E any](s []E) []E {
	out := slices.Clone(s)
	for i, e := range out {
		out[i] = cloneElem(e)
	}

	return out
}

// cloneDict copies d, cloning values that are models.
func cloneDict[K comparable, V any](d map[K]V) map[K]V {
	out := maps.Clone(d)
	for k, v := range out {
		out[k] = cloneElem(v)
	}

	return out
}

func cloneElem[E any](e E) E {
	n, ok := any(e).(Model)
	if !ok || isNil(n) {
		return e
	}

	if c, ok := clone(n).(E); ok {
		return c
	}

	return e
}

// Dict describes a map property. Nil and empty maps are absent.
func Dict[M Model, K comparable, V any](name string, ref func(M) *map[K]V) Field {
	return Field{
		Name: name,
		Kind: KindMap,
		present: func(m Model) bool {
			return len(*ref(m.(M))) > 0
		},
		value: func(m Model) (any, bool) {
			d := *ref(m.(M))
			return d, d != nil
		},
		copy: func(dst, src Model) {
			*ref(dst.(M)) = cloneDict(*ref(src.(M)))
		},
		decode: func(m Model, raw json.RawMessage) error {
			var v map[K]V
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}

			*ref(m.(M)) = v

			return nil
		},
	}
}

// Nested describes a property holding another model by pointer. A non-nil
// nested model is present regardless of its own properties. Copies hand
// the destination its own clone of the nested instance.
func Nested[M Model, N interface {
	comparable
	Model
}](name string, ref func(M) *N) Field {
	return Field{
		Name: name,
		Kind: KindModel,
		present: func(m Model) bool {
			var zero N
			return *ref(m.(M)) != zero
		},
		value: func(m Model) (any, bool) {
			var zero N

			n := *ref(m.(M))

			return n, n != zero
		},
		copy: func(dst, src Model) {
			var zero N

			n := *ref(src.(M))
			if n == zero {
				*ref(dst.(M)) = zero
				return
			}

			*ref(dst.(M)) = clone(n).(N)
		},
		decode: func(m Model, raw json.RawMessage) error {
			var zero N

			n, err := decodeNew(zero.Schema(), raw)
			if err != nil {
				return err
			}

			*ref(m.(M)) = n.(N)

			return nil
		},
	}
}

// Any describes a property holding an arbitrary JSON value.
func Any[M Model](name string, ref func(M) *any) Field {
	return Field{
		Name: name,
		Kind: KindAny,
		present: func(m Model) bool {
			return IsPresent(*ref(m.(M)))
		},
		value: func(m Model) (any, bool) {
			v := *ref(m.(M))
			return v, v != nil
		},
		copy: func(dst, src Model) {
			*ref(dst.(M)) = *ref(src.(M))
		},
		decode: func(m Model, raw json.RawMessage) error {
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}

			*ref(m.(M)) = v

			return nil
		},
	}
}
