package commands

import (
	"github.com/spf13/cobra"

	"modelkit/internal/ctxlog"
	"modelkit/internal/gen"
	"modelkit/internal/plan"
	"modelkit/internal/printer"
)

func newGenCommand(opts *options) *cobra.Command {
	var (
		dryRun bool
		noJSON bool
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate schema descriptors for the marked models",
		Long: `Analyze the package, resolve every //modelgen:model struct against the
declaration file and write the generated schema file into the package
directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := opts.context(cmd)
			pr := newPrinter(cmd)

			p, err := opts.resolve(ctx)
			if err != nil {
				return pr.Error("Analysis failed", err.Error(), nil)
			}

			file, err := generate(pr, p, !noJSON)
			if err != nil {
				return err
			}

			if dryRun {
				pr.Info("%s", file.Content)
				return nil
			}

			w := gen.NewWriter(nil)
			if err := w.Write(ctx, file); err != nil {
				return pr.Error("Write failed", err.Error(), nil)
			}

			ctxlog.FromContext(ctx).Info("generated schemas", "package", p.PkgPath, "models", len(p.Models))
			pr.Success("wrote %s (%d models)\n", w.URL(file), len(p.Models))

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the generated code instead of writing it")
	cmd.Flags().BoolVar(&noJSON, "no-json", false, "omit MarshalJSON and UnmarshalJSON methods")

	return cmd
}

// generate prints the plan diagnostics and renders the schema file.
func generate(pr *printer.Printer, p *plan.Plan, jsonMethods bool) (*gen.GeneratedFile, error) {
	pr.Diagnostics(&p.Diagnostics)

	if p.Diagnostics.HasErrors() {
		return nil, pr.Error("Resolution failed",
			"The model declarations have errors; see the diagnostics above.", nil)
	}

	cfg := gen.DefaultGeneratorConfig()
	cfg.JSONMethods = jsonMethods

	file, err := gen.NewGenerator(cfg).Generate(p)
	if err != nil {
		return nil, pr.Error("Generation failed", err.Error(), nil)
	}

	return file, nil
}
