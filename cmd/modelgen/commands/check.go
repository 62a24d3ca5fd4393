package commands

import (
	"github.com/spf13/cobra"

	"modelkit/internal/gen"
)

func newCheckCommand(opts *options) *cobra.Command {
	var noJSON bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the generated schema file is up to date",
		Long: `Regenerate the schema file in memory and compare it with the file in the
package directory. Exits with an error when the file is missing, stale or
was edited by hand.`,
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

			res, err := gen.NewWriter(nil).Check(ctx, file)
			if err != nil {
				return pr.Error("Check failed", err.Error(), nil)
			}

			switch res.Status {
			case gen.StatusUpToDate:
				pr.Success("%s is up to date\n", res.URL)
				return nil
			case gen.StatusModified:
				return pr.Error("Generated file was edited by hand",
					res.URL+" does not match its recorded fingerprint.",
					[]string{"Move the changes into the model declarations and run modelgen gen"})
			default:
				return pr.Error("Generated file is "+res.Status.String(),
					res.URL+" does not match the current models.",
					[]string{"Run modelgen gen"})
			}
		},
	}

	cmd.Flags().BoolVar(&noJSON, "no-json", false, "expect a file generated with --no-json")

	return cmd
}
