package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"modelkit/internal/plan"
)

// modelSummary is the YAML view of a resolved model printed by inspect.
type modelSummary struct {
	Name       string            `yaml:"name"`
	Schema     string            `yaml:"schema"`
	Parent     string            `yaml:"parent,omitempty"`
	Guarded    bool              `yaml:"guarded,omitempty"`
	Convention string            `yaml:"convention"`
	Properties []propertySummary `yaml:"properties"`
}

type propertySummary struct {
	Name     string `yaml:"name"`
	Field    string `yaml:"field,omitempty"`
	Kind     string `yaml:"kind,omitempty"`
	Key      string `yaml:"key,omitempty"`
	Required bool   `yaml:"required,omitempty"`
	Ignored  bool   `yaml:"ignored,omitempty"`
}

func newInspectCommand(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the resolved models, properties and wire keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := opts.context(cmd)
			pr := newPrinter(cmd)

			p, err := opts.resolve(ctx)
			if err != nil {
				return pr.Error("Analysis failed", err.Error(), nil)
			}

			pr.Diagnostics(&p.Diagnostics)

			summaries := summarize(p)

			switch format {
			case "yaml":
				data, err := yaml.Marshal(summaries)
				if err != nil {
					return pr.Error("Encoding failed", err.Error(), nil)
				}

				pr.Info("%s", data)
			case "table":
				for i, s := range summaries {
					if i > 0 {
						pr.Info("\n")
					}

					title := s.Schema
					if s.Parent != "" {
						title += " : " + s.Parent
					}

					pr.Step("%s (%s)\n", title, s.Convention)
					pr.Table([]string{"PROPERTY", "FIELD", "KIND", "KEY", "FLAGS"}, propertyRows(s))
				}
			default:
				return pr.Error("Unknown format", fmt.Sprintf("format %q is not supported", format),
					[]string{"Use --format table", "Use --format yaml"})
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table or yaml")

	return cmd
}

func summarize(p *plan.Plan) []modelSummary {
	out := make([]modelSummary, 0, len(p.Models))

	byName := make(map[string]*plan.ModelPlan, len(p.Models))
	for i := range p.Models {
		byName[p.Models[i].Name] = &p.Models[i]
	}

	for i := range p.Models {
		m := &p.Models[i]

		s := modelSummary{
			Name:       m.Name,
			Schema:     m.SchemaName,
			Parent:     m.Parent,
			Guarded:    m.Guarded,
			Convention: m.Mapper.Convention().String(),
		}

		for _, prop := range m.Properties {
			ps := propertySummary{
				Name:     prop,
				Required: slices.Contains(m.AllRequired, prop),
				Ignored:  slices.Contains(m.AllIgnored, prop),
			}

			if !ps.Ignored {
				ps.Key = m.Mapper.ToWire(prop)
			}

			if f := ownerField(byName, m, prop); f != nil {
				ps.Field = f.GoName
				ps.Kind = f.Kind.String()
			}

			s.Properties = append(s.Properties, ps)
		}

		out = append(out, s)
	}

	return out
}

// ownerField finds the field declaring prop in m or its ancestors.
func ownerField(byName map[string]*plan.ModelPlan, m *plan.ModelPlan, prop string) *plan.FieldPlan {
	for cur := m; cur != nil; cur = byName[cur.Parent] {
		if f := cur.Field(prop); f != nil {
			return f
		}

		if cur.Parent == "" {
			break
		}
	}

	return nil
}

func propertyRows(s modelSummary) [][]string {
	rows := make([][]string, 0, len(s.Properties))
	for _, p := range s.Properties {
		var flags []string
		if p.Required {
			flags = append(flags, "required")
		}

		if p.Ignored {
			flags = append(flags, "ignored")
		}

		key := p.Key
		if key == "" {
			key = "-"
		}

		rows = append(rows, []string{p.Name, p.Field, p.Kind, key, strings.Join(flags, ",")})
	}

	return rows
}
