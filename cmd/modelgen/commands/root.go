package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"modelkit/internal/ctxlog"
	"modelkit/internal/printer"
)

var versionString = "dev"

// options holds the global flags shared by every subcommand.
type options struct {
	config    string
	pkg       string
	output    string
	verbose   bool
	logFormat string
}

// NewRootCommand builds the modelgen command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "modelgen",
		Short: "modelgen - schema generator for modelkit data models",
		Long: `modelgen finds structs marked //modelgen:model in a Go package and
generates the schema descriptors used by the modelkit/model runtime for
merging, JSON encoding and decoding.

Key mappings, ignored and required properties are declared in a YAML file.`,
		Version: versionString,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceErrors:      true,
		SilenceUsage:       true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.config, "config", "c", "", "model declaration file (YAML)")
	flags.StringVarP(&opts.pkg, "package", "p", "", "package pattern holding the models (overrides the config)")
	flags.StringVarP(&opts.output, "output", "o", "", "generated file name (overrides the config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(
		newGenCommand(opts),
		newCheckCommand(opts),
		newInspectCommand(opts),
		newInitCommand(opts),
	)

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(v, c, d string) {
	versionString = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// context returns the command context carrying the configured logger.
func (o *options) context(cmd *cobra.Command) context.Context {
	level := "info"
	if o.verbose {
		level = "debug"
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return ctxlog.WithLogger(ctx, ctxlog.New(level, o.logFormat, cmd.ErrOrStderr()))
}

func newPrinter(cmd *cobra.Command) *printer.Printer {
	return printer.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
}
