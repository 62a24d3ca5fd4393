package analyze

import (
	"go/ast"
	"go/token"
	"strings"
)

// typeDirectives maps type names to the //modelgen: lines of their doc
// comments. A lone spec in a type declaration also inherits the comment on
// the "type" keyword.
func typeDirectives(files []*ast.File) map[string][]string {
	out := make(map[string][]string)

	for _, file := range files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)

				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}

				if lines := directiveLines(doc); len(lines) > 0 {
					out[ts.Name.Name] = lines
				}
			}
		}
	}

	return out
}

func directiveLines(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}

	var out []string

	for _, c := range doc.List {
		// Directives are written without a space: //modelgen:model
		if text, ok := strings.CutPrefix(c.Text, "//"+DirectivePrefix); ok {
			out = append(out, DirectivePrefix+strings.TrimSpace(text))
		}
	}

	return out
}
