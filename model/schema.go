package model

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
)

// Model is implemented by every schema-described type. Schema must not
// dereference its receiver: it is called on nil pointers to find the schema
// of a type.
type Model interface {
	Schema() *Schema
}

// Ignorable is implemented by models that can ask to be skipped. A merge
// source reporting Ignored() == true is treated like a nil source.
type Ignorable interface {
	Ignored() bool
}

// Descriptor declares a model type. It is turned into a Schema by Register.
type Descriptor struct {
	// Name identifies the schema in the registry, e.g. "account.AccountEntity".
	Name string
	// New allocates a zero instance of the type.
	New func() Model
	// Parent is the schema of the embedded parent type, if any.
	Parent *Schema
	// Base returns the embedded parent instance of m. Required with Parent.
	Base func(m Model) Model
	// Fields lists the properties declared by this type. Fields of the
	// parent are inherited; a field with the same name overrides.
	Fields []Field
	// Convention is the key mapping convention.
	Convention Convention
	// Keys maps property names to wire keys, overriding the convention.
	Keys map[string]string
	// Ignore lists properties excluded from encoding, decoding and merging.
	Ignore []string
	// Required lists properties that must be present on valid instances.
	Required []string
}

// Schema is the registered, immutable description of a model type.
type Schema struct {
	name     string
	parent   *Schema
	base     func(Model) Model
	newFn    func() Model
	fields   []Field
	index    map[string]int
	keys     *KeyMapper
	wire     map[string]string
	ignored  map[string]struct{}
	required []string
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Parent returns the parent schema, or nil.
func (s *Schema) Parent() *Schema { return s.parent }

// New allocates a zero instance.
func (s *Schema) New() Model { return s.newFn() }

// Keys returns the key mapper.
func (s *Schema) Keys() *KeyMapper { return s.keys }

// Fields returns all properties, inherited ones first, in declaration order.
func (s *Schema) Fields() []Field {
	return slices.Clone(s.fields)
}

// Field returns the property with the given name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}

	return s.fields[i], true
}

// WireKey returns the external key of a property.
func (s *Schema) WireKey(property string) string {
	return s.keys.ToWire(property)
}

// Property returns the property name bound to an external key.
func (s *Schema) Property(key string) (string, bool) {
	p, ok := s.wire[key]
	return p, ok
}

// IsIgnored reports whether the property is on the ignore list.
func (s *Schema) IsIgnored(property string) bool {
	_, ok := s.ignored[property]
	return ok
}

// Ignored returns the sorted ignore list.
func (s *Schema) Ignored() []string {
	out := make([]string, 0, len(s.ignored))
	for name := range s.ignored {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

// IsRequired reports whether the property is required.
func (s *Schema) IsRequired(property string) bool {
	return slices.Contains(s.required, property)
}

// Required returns the required properties.
func (s *Schema) Required() []string {
	return slices.Clone(s.required)
}

// IsKindOf reports whether s is other or descends from it.
func (s *Schema) IsKindOf(other *Schema) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}

	return false
}

// viewAs returns the part of m described by target, walking up the embedding
// chain. m must be an instance of s.
func (s *Schema) viewAs(m Model, target *Schema) (Model, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur == target {
			return m, true
		}

		if cur.parent == nil {
			break
		}

		m = cur.base(m)
	}

	return nil, false
}

// String returns the schema name.
func (s *Schema) String() string { return s.name }

// NewSchema builds a schema from a descriptor without registering it.
func NewSchema(d Descriptor) (*Schema, error) {
	if d.Name == "" {
		return nil, errors.New("model: descriptor has no name")
	}

	if d.New == nil {
		return nil, fmt.Errorf("model: %s: descriptor has no constructor", d.Name)
	}

	if d.Parent != nil && d.Base == nil {
		return nil, fmt.Errorf("model: %s: parent %s set without base accessor", d.Name, d.Parent.name)
	}

	s := &Schema{
		name:   d.Name,
		parent: d.Parent,
		base:   d.Base,
		newFn:  d.New,
		index:  make(map[string]int),
	}

	if d.Parent != nil {
		for _, f := range d.Parent.fields {
			s.index[f.Name] = len(s.fields)
			s.fields = append(s.fields, f.inherit(d.Base))
		}
	}

	seen := make(map[string]struct{}, len(d.Fields))
	for _, f := range d.Fields {
		if !f.valid() {
			return nil, fmt.Errorf("model: %s: invalid field %q", d.Name, f.Name)
		}

		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("model: %s: duplicate property %q", d.Name, f.Name)
		}

		seen[f.Name] = struct{}{}

		if i, ok := s.index[f.Name]; ok {
			s.fields[i] = f
			continue
		}

		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}

	for prop := range d.Keys {
		if _, ok := s.index[prop]; !ok {
			return nil, fmt.Errorf("model: %s: key mapping names unknown property %q", d.Name, prop)
		}
	}

	if d.Parent != nil {
		s.keys = d.Parent.keys.Extend(d.Convention, d.Keys)
	} else {
		s.keys = NewKeyMapper(d.Convention, d.Keys)
	}

	s.ignored = make(map[string]struct{}, len(d.Ignore))
	if d.Parent != nil {
		for name := range d.Parent.ignored {
			s.ignored[name] = struct{}{}
		}
	}

	for _, name := range d.Ignore {
		if _, ok := s.index[name]; !ok {
			return nil, fmt.Errorf("model: %s: ignore list names unknown property %q", d.Name, name)
		}

		s.ignored[name] = struct{}{}
	}

	if d.Parent != nil {
		s.required = slices.Clone(d.Parent.required)
	}

	for _, name := range d.Required {
		if _, ok := s.index[name]; !ok {
			return nil, fmt.Errorf("model: %s: required list names unknown property %q", d.Name, name)
		}

		if !slices.Contains(s.required, name) {
			s.required = append(s.required, name)
		}
	}

	s.wire = make(map[string]string, len(s.fields))
	for _, f := range s.fields {
		if s.IsIgnored(f.Name) {
			continue
		}

		key := s.keys.ToWire(f.Name)
		if other, dup := s.wire[key]; dup {
			return nil, fmt.Errorf("model: %s: properties %q and %q share wire key %q", d.Name, other, f.Name, key)
		}

		s.wire[key] = f.Name
	}

	for _, name := range s.required {
		if s.IsIgnored(name) {
			return nil, fmt.Errorf("model: %s: property %q is both required and ignored", d.Name, name)
		}
	}

	return s, nil
}

var registry = struct {
	sync.RWMutex
	schemas map[string]*Schema
}{schemas: make(map[string]*Schema)}

// Register builds a schema from d and adds it to the process-wide registry.
func Register(d Descriptor) (*Schema, error) {
	s, err := NewSchema(d)
	if err != nil {
		return nil, err
	}

	registry.Lock()
	defer registry.Unlock()

	if _, dup := registry.schemas[s.name]; dup {
		return nil, fmt.Errorf("model: schema %s already registered", s.name)
	}

	registry.schemas[s.name] = s

	return s, nil
}

// MustRegister is like Register but panics on error. It is meant for
// package-level variables of generated code.
func MustRegister(d Descriptor) *Schema {
	s, err := Register(d)
	if err != nil {
		panic(err)
	}

	return s
}

// Lookup returns a registered schema by name.
func Lookup(name string) (*Schema, bool) {
	registry.RLock()
	defer registry.RUnlock()

	s, ok := registry.schemas[name]

	return s, ok
}

// Schemas returns all registered schemas sorted by name.
func Schemas() []*Schema {
	registry.RLock()
	defer registry.RUnlock()

	out := make([]*Schema, 0, len(registry.schemas))
	for _, s := range registry.schemas {
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })

	return out
}
