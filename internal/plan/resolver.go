package plan

import (
	"errors"
	"fmt"
	"go/types"
	"slices"

	"modelkit/internal/analyze"
	"modelkit/internal/diagnostic"
	"modelkit/internal/mapping"
	"modelkit/internal/match"
	"modelkit/model"
)

// SuggestionMinScore is the minimum similarity for "did you mean" hints.
const SuggestionMinScore = 0.6

// Resolver performs the resolution pipeline for one package.
type Resolver struct {
	graph   *analyze.TypeGraph
	pkgPath string
	models  *mapping.ModelFile
}

// NewResolver creates a new Resolver. models may be nil, in which case every
// marked struct is resolved with default settings.
func NewResolver(graph *analyze.TypeGraph, pkgPath string, models *mapping.ModelFile) *Resolver {
	return &Resolver{
		graph:   graph,
		pkgPath: pkgPath,
		models:  models,
	}
}

// Resolve runs the full resolution pipeline and returns a Plan. The error is
// reserved for unusable inputs; problems with individual models are reported
// through Plan.Diagnostics.
func (r *Resolver) Resolve() (*Plan, error) {
	if r.graph == nil {
		return nil, errors.New("type graph is nil")
	}

	pkg, ok := r.graph.Packages[r.pkgPath]
	if !ok {
		return nil, fmt.Errorf("package %s is not loaded", r.pkgPath)
	}

	mf := r.models
	if mf == nil {
		mf = &mapping.ModelFile{Output: mapping.DefaultOutput}
	}

	p := &Plan{
		PkgPath: pkg.Path,
		PkgName: pkg.Name,
		Dir:     pkg.Dir,
		Output:  mf.Output,
	}

	if p.Output == "" {
		p.Output = mapping.DefaultOutput
	}

	if r.models != nil {
		p.Diagnostics.Merge(*mapping.Validate(r.models, r.graph, r.pkgPath))
	}

	for _, decl := range mf.Models {
		r.graph.MarkModel(analyze.TypeID{PkgPath: r.pkgPath, Name: decl.Name})
	}

	infos := r.graph.Models(r.pkgPath)
	if len(infos) == 0 {
		p.Diagnostics.AddWarning("no_models",
			fmt.Sprintf("package %s has no structs marked //%s", r.pkgPath, analyze.DirectiveModel), "", "")

		return p, nil
	}

	index := make(map[string]int, len(infos))
	for i, info := range infos {
		index[info.ID.Name] = i
	}

	drafts := make([]ModelPlan, len(infos))
	for i, info := range infos {
		drafts[i] = r.resolveFields(info, index, &p.Diagnostics)
	}

	names := make([]string, len(drafts))
	for i := range drafts {
		names[i] = drafts[i].Name
	}

	order, err := parentsFirst(names, func(i int) int {
		if parent, ok := index[drafts[i].Parent]; ok {
			return parent
		}

		return -1
	})
	if err != nil {
		p.Diagnostics.AddError("embedding_cycle", err.Error(), "", "")
		return p, nil
	}

	p.Models = make([]ModelPlan, 0, len(drafts))
	resolved := make(map[string]*ModelPlan, len(drafts))
	for _, i := range order {
		m := drafts[i]

		var parent *ModelPlan
		if m.Parent != "" {
			parent = resolved[m.Parent]
		}

		r.applyDecl(&m, parent, mf.Find(m.Name), &p.Diagnostics)

		p.Models = append(p.Models, m)
		resolved[m.Name] = &p.Models[len(p.Models)-1]
	}

	return p, nil
}

// resolveFields classifies the struct fields of a model and finds its parent.
func (r *Resolver) resolveFields(info *analyze.TypeInfo, index map[string]int, diags *diagnostic.Diagnostics) ModelPlan {
	name := info.ID.Name
	pkgName := r.graph.Packages[r.pkgPath].Name

	m := ModelPlan{
		Type:       info,
		Name:       name,
		SchemaName: pkgName + "." + name,
	}

	seen := make(map[string]string, len(info.Fields))

	for i := range info.Fields {
		f := &info.Fields[i]

		if f.Embedded {
			r.resolveEmbedded(&m, f, index, diags)
			continue
		}

		prop, skip := f.PropertyTag()
		if skip {
			continue
		}

		if prop == "" {
			prop = match.LowerCamel(f.Name)
		}

		ctor, kind, ok := r.classify(f.Type)
		if !ok {
			diags.AddWarning("unsupported_field_type",
				fmt.Sprintf("field %s has unsupported type %s and is skipped", analyze.FieldPath(name, f.Name), f.Type.Describe()),
				name, f.Name)

			continue
		}

		if other, dup := seen[prop]; dup {
			diags.AddError("duplicate_property",
				fmt.Sprintf("fields %s and %s both map to property %q", other, f.Name, prop), name, prop)

			continue
		}

		seen[prop] = f.Name

		m.Fields = append(m.Fields, FieldPlan{
			GoName:      f.Name,
			Property:    prop,
			Constructor: ctor,
			Kind:        kind,
			Type:        f.Type,
		})
	}

	if len(m.Fields) == 0 && m.Parent == "" {
		diags.AddWarning("model_has_no_properties", "model declares no properties", name, "")
	}

	return m
}

func (r *Resolver) resolveEmbedded(m *ModelPlan, f *analyze.FieldInfo, index map[string]int, diags *diagnostic.Diagnostics) {
	t := f.Type

	if t.Kind == analyze.TypeKindExternal && t.ID == (analyze.TypeID{PkgPath: ModelPkgPath, Name: "Base"}) {
		m.Guarded = true
		return
	}

	if t.Kind == analyze.TypeKindPointer && t.ElemType != nil && r.isModel(t.ElemType) {
		diags.AddError("unsupported_embedding",
			fmt.Sprintf("parent model %s must be embedded by value", t.ElemType.ID.Name), m.Name, f.Name)

		return
	}

	if !r.isModel(t) {
		diags.AddWarning("unsupported_embedding",
			fmt.Sprintf("embedded field %s is not a model and is skipped", analyze.FieldPath(m.Name, f.Name)), m.Name, f.Name)

		return
	}

	if _, ok := index[t.ID.Name]; !ok {
		diags.AddError("unsupported_embedding",
			fmt.Sprintf("parent model %s is not declared in package %s", t.ID.Name, r.pkgPath), m.Name, f.Name)

		return
	}

	if m.Parent != "" {
		diags.AddError("multiple_parents",
			fmt.Sprintf("model embeds both %s and %s", m.Parent, t.ID.Name), m.Name, f.Name)

		return
	}

	m.Parent = t.ID.Name
}

// applyDecl attaches the YAML declaration and checks the full property set.
func (r *Resolver) applyDecl(m *ModelPlan, parent *ModelPlan, decl *mapping.ModelDecl, diags *diagnostic.Diagnostics) {
	var ignored, required []string

	if parent != nil {
		m.Properties = slices.Clone(parent.Properties)
		ignored = slices.Clone(parent.AllIgnored)
		required = slices.Clone(parent.AllRequired)
	}

	for _, f := range m.Fields {
		if slices.Contains(m.Properties, f.Property) {
			diags.AddInfo("overrides_property",
				fmt.Sprintf("field %s overrides inherited property %q", f.GoName, f.Property), m.Name, f.Property)

			continue
		}

		m.Properties = append(m.Properties, f.Property)
	}

	if decl != nil {
		m.Convention = toConvention(decl.EffectiveConvention())
		m.Keys = r.knownKeys(m, decl.Keys, diags)
		m.Ignore = r.filterKnown(m, "ignore", decl.Ignore, diags)
		m.Required = r.filterKnown(m, "required", decl.Required, diags)
	}

	if parent != nil {
		m.Mapper = parent.Mapper.Extend(m.Convention, m.Keys)
	} else {
		m.Mapper = model.NewKeyMapper(m.Convention, m.Keys)
	}

	ignored = appendUnique(ignored, m.Ignore...)
	required = appendUnique(required, m.Required...)
	m.AllIgnored, m.AllRequired = ignored, required

	for _, prop := range required {
		if !slices.Contains(ignored, prop) {
			continue
		}

		own := slices.Contains(m.Ignore, prop) || slices.Contains(m.Required, prop)
		if own && !(slices.Contains(m.Ignore, prop) && slices.Contains(m.Required, prop)) {
			diags.AddError("required_and_ignored",
				fmt.Sprintf("property %q is both required and ignored through inheritance", prop), m.Name, prop)
		}
	}

	wire := make(map[string]string, len(m.Properties))
	for _, prop := range m.Properties {
		if slices.Contains(ignored, prop) {
			continue
		}

		key := m.Mapper.ToWire(prop)
		if other, dup := wire[key]; dup {
			diags.AddError("wire_key_collision",
				fmt.Sprintf("properties %q and %q share wire key %q", other, prop, key), m.Name, prop)

			continue
		}

		wire[key] = prop
	}
}

// knownKeys drops key exceptions naming unknown properties.
func (r *Resolver) knownKeys(m *ModelPlan, keys map[string]string, diags *diagnostic.Diagnostics) map[string]string {
	if len(keys) == 0 {
		return nil
	}

	out := make(map[string]string, len(keys))
	for _, prop := range r.filterKnown(m, "keys", keysOf(keys), diags) {
		out[prop] = keys[prop]
	}

	return out
}

// filterKnown returns the entries of names that are properties of m and
// reports the others.
func (r *Resolver) filterKnown(m *ModelPlan, list string, names []string, diags *diagnostic.Diagnostics) []string {
	var out []string

	for _, prop := range names {
		if slices.Contains(m.Properties, prop) {
			out = appendUnique(out, prop)
			continue
		}

		diags.AddError("unknown_property",
			fmt.Sprintf("%s names unknown property %q", list, prop), m.Name, prop)

		if best, ok := match.Closest(prop, m.Properties, SuggestionMinScore); ok {
			diags.Suggest(diagnostic.DiagnosticError, best)
		}
	}

	return out
}

// classify picks the field constructor and kind for a field type.
func (r *Resolver) classify(t *analyze.TypeInfo) (Constructor, model.Kind, bool) {
	if t == nil {
		return 0, 0, false
	}

	switch t.Kind {
	case analyze.TypeKindPointer:
		elem := t.ElemType
		if elem == nil {
			return 0, 0, false
		}

		if r.isModel(elem) || implementsModel(elem) {
			return ConstructorNested, model.KindModel, true
		}

		kind, ok := r.scalarKind(elem)
		if !ok {
			return 0, 0, false
		}

		return ConstructorOptional, kind, true

	case analyze.TypeKindSlice:
		return ConstructorList, model.KindList, true

	case analyze.TypeKindMap:
		return ConstructorDict, model.KindMap, true

	case analyze.TypeKindInterface:
		if isEmptyInterface(t) {
			return ConstructorAny, model.KindAny, true
		}

		return 0, 0, false

	default:
		if r.isModel(t) || implementsModel(t) {
			// Nested models are held by pointer.
			return 0, 0, false
		}

		kind, ok := r.scalarKind(t)
		if !ok {
			return 0, 0, false
		}

		return ConstructorValue, kind, true
	}
}

// scalarKind returns the kind of a value stored directly or behind a pointer.
func (r *Resolver) scalarKind(t *analyze.TypeInfo) (model.Kind, bool) {
	switch t.Kind {
	case analyze.TypeKindBasic:
		return basicKind(t.GoType)

	case analyze.TypeKindAlias:
		if t.Underlying == nil || t.Underlying.Kind != analyze.TypeKindBasic {
			return 0, false
		}

		return basicKind(t.Underlying.GoType)

	case analyze.TypeKindStruct, analyze.TypeKindExternal:
		// Encoded through encoding/json, e.g. time.Time.
		return model.KindAny, true

	default:
		return 0, false
	}
}

func (r *Resolver) isModel(t *analyze.TypeInfo) bool {
	return t != nil && t.IsModel() && t.ID.PkgPath == r.pkgPath
}

// implementsModel reports whether a pointer to t has a Schema method
// returning *model.Schema, as models of other packages do.
func implementsModel(t *analyze.TypeInfo) bool {
	if t == nil || t.GoType == nil {
		return false
	}

	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(t.GoType), false, nil, "Schema")

	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}

	sig := fn.Signature()
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}

	ptr, ok := sig.Results().At(0).Type().(*types.Pointer)
	if !ok {
		return false
	}

	named, ok := ptr.Elem().(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return false
	}

	return named.Obj().Pkg().Path() == ModelPkgPath && named.Obj().Name() == "Schema"
}

func basicKind(t types.Type) (model.Kind, bool) {
	b, ok := t.(*types.Basic)
	if !ok {
		return 0, false
	}

	info := b.Info()

	switch {
	case info&types.IsString != 0:
		return model.KindString, true
	case info&types.IsBoolean != 0:
		return model.KindBool, true
	case info&types.IsNumeric != 0 && info&types.IsComplex == 0:
		return model.KindNumber, true
	default:
		return 0, false
	}
}

func isEmptyInterface(t *analyze.TypeInfo) bool {
	if t.GoType == nil {
		return true
	}

	iface, ok := t.GoType.Underlying().(*types.Interface)

	return ok && iface.Empty()
}

func toConvention(s string) model.Convention {
	switch s {
	case mapping.ConventionIdentity:
		return model.ConventionIdentity
	case mapping.ConventionSnakeCase:
		return model.ConventionSnakeCase
	default:
		return model.ConventionInherit
	}
}

func keysOf(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	slices.Sort(out)

	return out
}

func appendUnique(dst []string, items ...string) []string {
	for _, item := range items {
		if !slices.Contains(dst, item) {
			dst = append(dst, item)
		}
	}

	return dst
}
