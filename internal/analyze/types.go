package analyze

import (
	"go/types"
	"reflect"
	"slices"
	"strings"

	"modelkit/internal/common"
)

// DirectivePrefix starts every generator directive in a doc comment.
const DirectivePrefix = "modelgen:"

// DirectiveModel marks a struct as a model.
const DirectiveModel = DirectivePrefix + "model"

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "modelkit/examples/account"
	Name    string // e.g., "AccountEntity"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindInterface          // interface type, including any
	TypeKindAlias              // type alias (named type wrapping another)
	TypeKindExternal           // external/opaque type (e.g., time.Time)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindInterface:
		return "interface"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID      // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind    // Kind of type
	Underlying *TypeInfo   // For named types, the underlying type
	ElemType   *TypeInfo   // For pointers, slices and maps, the element type
	KeyType    *TypeInfo   // For maps, the key type
	Fields     []FieldInfo // For structs, the list of fields
	GoType     types.Type  // The original go/types.Type
	Directives []string    // //modelgen: directives from the type's doc comment
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// HasDirective reports whether the doc comment carries the directive.
func (t *TypeInfo) HasDirective(directive string) bool {
	return slices.Contains(t.Directives, directive)
}

// IsModel reports whether the type is a struct marked as a model.
func (t *TypeInfo) IsModel() bool {
	return t.Kind == TypeKindStruct && t.HasDirective(DirectiveModel)
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// PropertyTag returns the property name set with a `model:"name"` tag.
// skip is true for `model:"-"`.
func (f *FieldInfo) PropertyTag() (name string, skip bool) {
	tag, ok := f.Tag.Lookup("model")
	if !ok {
		return "", false
	}

	name, _, _ = strings.Cut(tag, ",")
	if name == "-" {
		return "", true
	}

	return name, false
}

// HasTag returns true if the field has the specified tag.
func (f *FieldInfo) HasTag(key string) bool {
	return f.Tag.Get(key) != ""
}

// GetTag returns the value of the specified tag.
func (f *FieldInfo) GetTag(key string) string {
	return f.Tag.Get(key)
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// MarkModel adds the model directive to a struct of the graph, so that a
// type named in a declaration file is a model without a doc-comment marker.
// It reports whether id names a struct.
func (g *TypeGraph) MarkModel(id TypeID) bool {
	t := g.Types[id]
	if t == nil || t.Kind != TypeKindStruct {
		return false
	}

	if !t.HasDirective(DirectiveModel) {
		t.Directives = append(t.Directives, DirectiveModel)
	}

	return true
}

// Models returns the marked model structs of a package in name order.
func (g *TypeGraph) Models(pkgPath string) []*TypeInfo {
	pkg, ok := g.Packages[pkgPath]
	if !ok {
		return nil
	}

	var out []*TypeInfo

	for _, id := range pkg.Types {
		if t := g.Types[id]; t != nil && t.IsModel() {
			out = append(out, t)
		}
	}

	return out
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package sources
	Types []TypeID // Named types defined in this package
}
