package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/types"
	"path/filepath"
	"reflect"

	"golang.org/x/tools/go/packages"

	"modelkit/internal/ctxlog"
)

// LoadMode is the go/packages information the analyzer needs: syntax for
// doc-comment directives and full type information for field types.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	// Dir is the working directory for relative patterns; empty means the
	// process working directory.
	Dir string

	graph *TypeGraph
	seen  map[types.Type]*TypeInfo
}

// NewAnalyzer creates an Analyzer with an empty graph.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph: NewTypeGraph(),
		seen:  make(map[types.Type]*TypeInfo),
	}
}

// Load loads the packages matching patterns, such as "." or
// "modelkit/examples/account", and adds their named types to the graph.
// Loading fails when any matched package has errors.
func (a *Analyzer) Load(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	log := ctxlog.FromContext(ctx)

	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     a.Dir,
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...), "source", "go/packages")
		},
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading %v: %w", patterns, err)
	}

	var errs []error

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("loading %v: %w", patterns, errors.Join(errs...))
	}

	// All roots are registered before any type is analyzed so that
	// cross-package references between them are not treated as external.
	for _, pkg := range pkgs {
		a.graph.Packages[pkg.PkgPath] = &PackageInfo{
			Path: pkg.PkgPath,
			Name: pkg.Name,
			Dir:  sourceDir(pkg),
		}
	}

	for _, pkg := range pkgs {
		a.addPackage(pkg)

		log.Debug("analyzed package", "package", pkg.PkgPath, "types", len(a.graph.Packages[pkg.PkgPath].Types))
	}

	return a.graph, nil
}

// Graph returns the graph built so far.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

func sourceDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) == 0 {
		return ""
	}

	return filepath.Dir(pkg.GoFiles[0])
}

// addPackage records the exported named types of pkg.
func (a *Analyzer) addPackage(pkg *packages.Package) {
	info := a.graph.Packages[pkg.PkgPath]
	directives := typeDirectives(pkg.Syntax)

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() {
			continue
		}

		t := a.typeInfo(tn.Type())
		t.ID = TypeID{PkgPath: pkg.PkgPath, Name: name}
		t.Directives = directives[name]

		a.graph.Types[t.ID] = t
		info.Types = append(info.Types, t.ID)
	}
}

// typeInfo converts a go/types type into the graph representation. Results
// are memoized, which also terminates recursive types such as a model
// holding a pointer to itself.
func (a *Analyzer) typeInfo(t types.Type) *TypeInfo {
	// Aliases such as any resolve to the aliased type.
	t = types.Unalias(t)

	if info, ok := a.seen[t]; ok {
		return info
	}

	info := &TypeInfo{GoType: t}
	a.seen[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.fillNamed(tt, info)
	case *types.Basic:
		info.Kind = TypeKindBasic
	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.typeInfo(tt.Elem())
	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.typeInfo(tt.Elem())
	case *types.Array:
		info.Kind = TypeKindArray
		info.ElemType = a.typeInfo(tt.Elem())
	case *types.Map:
		info.Kind = TypeKindMap
		info.KeyType = a.typeInfo(tt.Key())
		info.ElemType = a.typeInfo(tt.Elem())
	case *types.Interface:
		info.Kind = TypeKindInterface
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.fillFields(tt, info)
	default:
		// Channels, funcs and type parameters cannot be model properties.
		info.Kind = TypeKindUnknown
	}

	return info
}

// fillNamed classifies a named type. Named types of packages outside the
// loaded set are opaque, whatever they are built from.
func (a *Analyzer) fillNamed(named *types.Named, info *TypeInfo) {
	obj := named.Obj()
	if obj.Pkg() == nil {
		// Universe types such as error.
		info.ID = TypeID{Name: obj.Name()}
		info.Kind = TypeKindExternal

		return
	}

	info.ID = TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}

	if _, loaded := a.graph.Packages[info.ID.PkgPath]; !loaded {
		info.Kind = TypeKindExternal
		return
	}

	if st, ok := named.Underlying().(*types.Struct); ok {
		info.Kind = TypeKindStruct
		a.fillFields(st, info)

		return
	}

	// type Role string, type Tags []string, ...
	info.Kind = TypeKindAlias
	info.Underlying = a.typeInfo(named.Underlying())
}

// fillFields records the exported fields of a struct.
func (a *Analyzer) fillFields(st *types.Struct, info *TypeInfo) {
	for i := range st.NumFields() {
		f := st.Field(i)
		if !f.Exported() {
			continue
		}

		info.Fields = append(info.Fields, FieldInfo{
			Name:     f.Name(),
			Exported: true,
			Type:     a.typeInfo(f.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: f.Embedded(),
			Index:    i,
		})
	}
}
