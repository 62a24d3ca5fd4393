package gen

import (
	"go/types"
	"sort"
	"strconv"

	"modelkit/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet tracks the packages referenced by generated code and hands out
// unique package qualifiers.
type importSet struct {
	// self is the package the code is generated into.
	self    string
	byPath  map[string]string
	byAlias map[string]string
}

func newImportSet(self string) *importSet {
	return &importSet{
		self:    self,
		byPath:  make(map[string]string),
		byAlias: make(map[string]string),
	}
}

// add registers a package and returns the qualifier to use for it. name is
// the declared package name; an empty name falls back to the path base.
func (s *importSet) add(path, name string) string {
	if path == s.self {
		return ""
	}

	if alias, ok := s.byPath[path]; ok {
		return alias
	}

	if name == "" {
		name = common.PkgName(path)
	}

	alias := name
	for i := 2; ; i++ {
		if _, taken := s.byAlias[alias]; !taken {
			break
		}

		alias = name + strconv.Itoa(i)
	}

	s.byPath[path] = alias
	s.byAlias[alias] = path

	return alias
}

// qualifier returns a types.Qualifier registering every package it sees.
func (s *importSet) qualifier() types.Qualifier {
	return func(pkg *types.Package) string {
		return s.add(pkg.Path(), pkg.Name())
	}
}

// typeString renders t as Go source relative to the generated package.
func (s *importSet) typeString(t types.Type) string {
	return types.TypeString(t, s.qualifier())
}

// specs returns the imports sorted by path. The alias is only spelled out
// when it differs from the path base.
func (s *importSet) specs() []importSpec {
	out := make([]importSpec, 0, len(s.byPath))
	for path, alias := range s.byPath {
		spec := importSpec{Path: path}
		if alias != common.PkgName(path) {
			spec.Alias = alias
		}

		out = append(out, spec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}
