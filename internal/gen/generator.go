package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/types"
	"slices"
	"sort"
	"strconv"
	"strings"

	"modelkit/internal/match"
	"modelkit/internal/plan"
	"modelkit/model"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// JSONMethods enables MarshalJSON and UnmarshalJSON on every model.
	JSONMethods bool
	// DebugDir receives the unformatted source when formatting fails.
	DebugDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		JSONMethods: true,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the package directory the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "model_schema_gen.go").
	Filename string
	// Content is the formatted Go source code including the header.
	Content []byte
	// Fingerprint is the hash recorded in the header.
	Fingerprint string
}

// templateData holds all data needed for the schema template.
type templateData struct {
	PackageName string
	Imports     []importSpec
	// Model is the qualifier of the model package.
	Model       string
	JSONMethods bool
	Models      []modelData
}

type modelData struct {
	Name        string
	SchemaName  string
	SchemaVar   string
	ParentVar   string
	ParentField string
	Fields      []fieldData
	Convention  string
	Keys        []keyData
	Ignore      string
	Required    string
}

type fieldData struct {
	Expr string
}

type keyData struct {
	Property string
	Wire     string
}

// Generate renders the schema file of a plan.
func (g *Generator) Generate(p *plan.Plan) (*GeneratedFile, error) {
	if p == nil {
		return nil, errors.New("plan is nil")
	}

	if p.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("plan has errors: %w", p.Diagnostics.Error())
	}

	if len(p.Models) == 0 {
		return nil, fmt.Errorf("package %s has no models", p.PkgPath)
	}

	data, err := g.buildTemplateData(p)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := schemaTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	body, err := format.Source(buf.Bytes())
	if err != nil {
		if dump, dumpErr := dumpUnformatted(g.config.DebugDir, p.Output, buf.Bytes(), err); dumpErr == nil && dump != "" {
			return nil, fmt.Errorf("formatting code (source saved to %s): %w", dump, err)
		}

		return nil, fmt.Errorf("formatting code: %w", err)
	}

	fp, err := Fingerprint(body)
	if err != nil {
		return nil, fmt.Errorf("fingerprinting code: %w", err)
	}

	return &GeneratedFile{
		Dir:         p.Dir,
		Filename:    p.Output,
		Content:     append(header(fp), body...),
		Fingerprint: fp,
	}, nil
}

// buildTemplateData constructs the template data from a plan.
func (g *Generator) buildTemplateData(p *plan.Plan) (*templateData, error) {
	imports := newImportSet(p.PkgPath)

	data := &templateData{
		PackageName: p.PkgName,
		Model:       imports.add(plan.ModelPkgPath, "model"),
		JSONMethods: g.config.JSONMethods,
	}

	for i := range p.Models {
		m := &p.Models[i]

		md := modelData{
			Name:       m.Name,
			SchemaName: m.SchemaName,
			SchemaVar:  schemaVar(m.Name),
			Convention: conventionExpr(data.Model, m.Convention),
			Keys:       sortedKeys(m.Keys),
			Ignore:     quoteList(m.Ignore),
			Required:   quoteList(m.Required),
		}

		if m.Parent != "" {
			md.ParentVar = schemaVar(m.Parent)
			md.ParentField = m.Parent
		}

		for _, f := range m.Fields {
			expr, err := fieldExpr(data.Model, m.Name, f, imports)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", m.Name, f.GoName, err)
			}

			md.Fields = append(md.Fields, fieldData{Expr: expr})
		}

		data.Models = append(data.Models, md)
	}

	data.Imports = imports.specs()

	return data, nil
}

// fieldExpr renders the constructor call describing one field, e.g.
//
//	model.Optional("name", model.KindString, func(m *AccountEntity) **string { return &m.Name })
func fieldExpr(qual, modelName string, f plan.FieldPlan, imports *importSet) (string, error) {
	if f.Type == nil || f.Type.GoType == nil {
		return "", errors.New("field type is not analyzed")
	}

	ref := imports.typeString(types.NewPointer(f.Type.GoType))

	var sb strings.Builder

	sb.WriteString(qual)
	sb.WriteString(".")
	sb.WriteString(f.Constructor.String())
	sb.WriteString("(")
	sb.WriteString(strconv.Quote(f.Property))

	if f.Constructor.TakesKind() {
		sb.WriteString(", ")
		sb.WriteString(kindExpr(qual, f.Kind))
	}

	fmt.Fprintf(&sb, ", func(m *%s) %s { return &m.%s })", modelName, ref, f.GoName)

	return sb.String(), nil
}

// schemaVar returns the package variable holding a model's schema.
func schemaVar(name string) string {
	return match.LowerCamel(name) + "Schema"
}

func kindExpr(qual string, k model.Kind) string {
	name := k.String()
	if name == "" {
		return qual + ".KindAny"
	}

	return qual + ".Kind" + strings.ToUpper(name[:1]) + name[1:]
}

func conventionExpr(qual string, c model.Convention) string {
	switch c {
	case model.ConventionIdentity:
		return qual + ".ConventionIdentity"
	case model.ConventionSnakeCase:
		return qual + ".ConventionSnakeCase"
	default:
		return ""
	}
}

func sortedKeys(keys map[string]string) []keyData {
	out := make([]keyData, 0, len(keys))
	for prop, wire := range keys {
		out = append(out, keyData{Property: prop, Wire: wire})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Property < out[j].Property
	})

	return out
}

func quoteList(items []string) string {
	quoted := slices.Clone(items)
	for i, item := range quoted {
		quoted[i] = strconv.Quote(item)
	}

	return strings.Join(quoted, ", ")
}
