package mapping

import (
	"fmt"
	"sort"

	"modelkit/internal/analyze"
	"modelkit/internal/diagnostic"
	"modelkit/internal/match"
)

// suggestionScore is the minimum similarity for "did you mean" hints.
const suggestionScore = 0.6

// Validate checks a declaration file against the structs of a loaded package.
// It is a structural step: property names are checked later, once resolved.
func Validate(mf *ModelFile, graph *analyze.TypeGraph, pkgPath string) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError("model_file_is_nil", "model file is nil", "", "")
		return res
	}

	if graph == nil {
		res.AddError("graph_is_nil", "type graph is nil", "", "")
		return res
	}

	pkg, ok := graph.Packages[pkgPath]
	if !ok {
		res.AddError("package_not_loaded", fmt.Sprintf("package %q is not loaded", pkgPath), "", "")
		return res
	}

	var structs []string

	for _, id := range pkg.Types {
		if t := graph.Types[id]; t != nil && t.Kind == analyze.TypeKindStruct {
			structs = append(structs, id.Name)
		}
	}

	seen := map[string]struct{}{}

	for i := range mf.Models {
		decl := &mf.Models[i]

		if decl.Name == "" {
			res.AddError("model_name_missing", fmt.Sprintf("model entry %d has no name", i), "", "")
			continue
		}

		if _, dup := seen[decl.Name]; dup {
			res.AddError("duplicate_model", fmt.Sprintf("model %q declared twice", decl.Name), decl.Name, "")
			continue
		}

		seen[decl.Name] = struct{}{}

		t := graph.GetType(analyze.TypeID{PkgPath: pkgPath, Name: decl.Name})
		if t == nil || t.Kind != analyze.TypeKindStruct {
			res.AddError("model_not_found", fmt.Sprintf("struct %q not found in %s", decl.Name, pkgPath), decl.Name, "")

			if s, ok := match.Closest(decl.Name, structs, suggestionScore); ok {
				res.Suggest(diagnostic.DiagnosticError, s)
			}

			continue
		}

		validateDecl(res, decl)
	}

	return res
}

func validateDecl(res *diagnostic.Diagnostics, decl *ModelDecl) {
	switch decl.Convention {
	case "", ConventionIdentity, ConventionSnakeCase:
	default:
		res.AddError("invalid_convention",
			fmt.Sprintf("convention %q is not one of %q, %q", decl.Convention, ConventionIdentity, ConventionSnakeCase),
			decl.Name, "")
	}

	if decl.SnakeCase && decl.Convention == ConventionIdentity {
		res.AddError("conflicting_convention", "snake_case: true conflicts with convention: identity", decl.Name, "")
	}

	props := make([]string, 0, len(decl.Keys))
	for prop := range decl.Keys {
		props = append(props, prop)
	}

	sort.Strings(props)

	wire := map[string]string{}

	for _, prop := range props {
		key := decl.Keys[prop]
		if key == "" {
			res.AddError("empty_wire_key", "wire key is empty", decl.Name, prop)
			continue
		}

		if other, dup := wire[key]; dup {
			res.AddError("duplicate_wire_key",
				fmt.Sprintf("wire key %q is used by %q and %q", key, other, prop), decl.Name, prop)

			continue
		}

		wire[key] = prop
	}

	for _, prop := range decl.Required {
		if decl.Ignore.Contains(prop) {
			res.AddError("required_and_ignored", "property is both required and ignored", decl.Name, prop)
		}
	}
}
