package plan

import (
	"modelkit/internal/analyze"
	"modelkit/internal/common"
	"modelkit/internal/diagnostic"
	"modelkit/model"
)

// ModelPkgPath is the import path of the runtime model package.
const ModelPkgPath = "modelkit/model"

// Plan is the final output of the resolution pipeline.
// It contains everything needed for code generation.
type Plan struct {
	// PkgPath is the import path of the package holding the models.
	PkgPath string
	// PkgName is the package name.
	PkgName string
	// Dir is the package directory.
	Dir string
	// Output is the generated file name inside Dir.
	Output string
	// Models lists the resolved models, parents before children.
	Models []ModelPlan
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// Find returns the plan of a model by Go type name, or nil.
func (p *Plan) Find(name string) *ModelPlan {
	for i := range p.Models {
		if p.Models[i].Name == name {
			return &p.Models[i]
		}
	}

	return nil
}

// ModelPlan describes the schema generated for one model struct.
type ModelPlan struct {
	// Type is the analyzed struct.
	Type *analyze.TypeInfo
	// Name is the Go type name, e.g. "StaffEntity".
	Name string
	// SchemaName is the registry name, e.g. "account.StaffEntity".
	SchemaName string
	// Parent is the Go type name of the embedded parent model.
	Parent string
	// Guarded is true when the struct embeds model.Base.
	Guarded bool
	// Fields are the properties declared by this struct, in field order.
	Fields []FieldPlan
	// Properties lists every property including inherited ones.
	Properties []string
	// Convention is the declared key convention.
	Convention model.Convention
	// Keys are the declared property -> wire key exceptions.
	Keys map[string]string
	// Ignore lists the declared ignored properties.
	Ignore []string
	// Required lists the declared required properties.
	Required []string
	// AllIgnored lists ignored properties including inherited ones.
	AllIgnored []string
	// AllRequired lists required properties including inherited ones.
	AllRequired []string
	// Mapper is the effective key mapper including inherited entries.
	Mapper *model.KeyMapper
}

// Field returns the own field bound to a property, or nil.
func (m *ModelPlan) Field(property string) *FieldPlan {
	for i := range m.Fields {
		if m.Fields[i].Property == property {
			return &m.Fields[i]
		}
	}

	return nil
}

// Constructor names the model package function describing a field.
type Constructor int

const (
	ConstructorValue Constructor = iota
	ConstructorOptional
	ConstructorList
	ConstructorDict
	ConstructorNested
	ConstructorAny
)

// String returns the constructor function name.
func (c Constructor) String() string {
	switch c {
	case ConstructorValue:
		return "Value"
	case ConstructorOptional:
		return "Optional"
	case ConstructorList:
		return "List"
	case ConstructorDict:
		return "Dict"
	case ConstructorNested:
		return "Nested"
	case ConstructorAny:
		return "Any"
	default:
		return common.UnknownStr
	}
}

// TakesKind reports whether the constructor receives an explicit kind.
func (c Constructor) TakesKind() bool {
	return c == ConstructorValue || c == ConstructorOptional
}

// FieldPlan describes one generated property.
type FieldPlan struct {
	// GoName is the struct field name.
	GoName string
	// Property is the property name.
	Property string
	// Constructor is the model package function to use.
	Constructor Constructor
	// Kind is the declared type tag.
	Kind model.Kind
	// Type is the analyzed field type.
	Type *analyze.TypeInfo
}
