package gen

import "text/template"

const headerLine = "// Code generated by modelgen. DO NOT EDIT."

const fingerprintPrefix = "// modelgen fingerprint: "

var schemaTemplate = template.Must(template.New("schema").Parse(`package {{.PackageName}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
{{range .Models}}
var {{.SchemaVar}} = {{$.Model}}.MustRegister({{$.Model}}.Descriptor{
	Name: {{printf "%q" .SchemaName}},
	New: func() {{$.Model}}.Model { return new({{.Name}}) },
{{- if .ParentVar}}
	Parent: {{.ParentVar}},
	Base: func(m {{$.Model}}.Model) {{$.Model}}.Model { return &m.(*{{.Name}}).{{.ParentField}} },
{{- end}}
	Fields: []{{$.Model}}.Field{
{{- range .Fields}}
		{{.Expr}},
{{- end}}
	},
{{- if .Convention}}
	Convention: {{.Convention}},
{{- end}}
{{- if .Keys}}
	Keys: map[string]string{
{{- range .Keys}}
		{{printf "%q" .Property}}: {{printf "%q" .Wire}},
{{- end}}
	},
{{- end}}
{{- if .Ignore}}
	Ignore: []string{ {{- .Ignore -}} },
{{- end}}
{{- if .Required}}
	Required: []string{ {{- .Required -}} },
{{- end}}
})

// Schema returns the {{.Name}} schema.
func (*{{.Name}}) Schema() *{{$.Model}}.Schema { return {{.SchemaVar}} }
{{- if $.JSONMethods}}

// MarshalJSON encodes {{.Name}} through its schema.
func (m *{{.Name}}) MarshalJSON() ([]byte, error) { return {{$.Model}}.Encode(m) }

// UnmarshalJSON decodes {{.Name}} through its schema.
func (m *{{.Name}}) UnmarshalJSON(data []byte) error { return {{$.Model}}.DecodeInto(data, m) }
{{- end}}
{{end}}`))
