package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"modelkit/internal/analyze"
	"modelkit/internal/ctxlog"
	"modelkit/internal/mapping"
)

// defaultConfigName is the declaration file written by init.
const defaultConfigName = "models.yaml"

func newInitCommand(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a declaration file listing the marked models",
		Long: `Scan the package for structs marked //modelgen:model and write a
declaration file with one entry per model. The file is written to --config,
or to models.yaml in the package directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := opts.context(cmd)
			pr := newPrinter(cmd)

			pattern := opts.pkg
			if pattern == "" {
				pattern = "."
			}

			graph, err := analyze.NewAnalyzer().Load(ctx, pattern)
			if err != nil {
				return pr.Error("Analysis failed", err.Error(), nil)
			}

			if len(graph.Packages) != 1 {
				return pr.Error("Ambiguous package",
					fmt.Sprintf("pattern %q matches %d packages", pattern, len(graph.Packages)),
					[]string{"Pass a single package with --package"})
			}

			var pkg *analyze.PackageInfo
			for _, info := range graph.Packages {
				pkg = info
			}

			mf := &mapping.ModelFile{Version: mapping.Version, Package: ".", Output: mapping.DefaultOutput}
			if opts.output != "" {
				mf.Output = opts.output
			}

			for _, t := range graph.Models(pkg.Path) {
				mf.Models = append(mf.Models, mapping.ModelDecl{Name: t.ID.Name})
			}

			if len(mf.Models) == 0 {
				pr.Warning("no structs marked //%s in %s\n", analyze.DirectiveModel, pkg.Path)
			}

			target := opts.config
			if target == "" {
				target = filepath.Join(pkg.Dir, defaultConfigName)
			}

			mf.Package = relativePattern(target, pkg.Dir)

			if !force {
				if _, err := os.Stat(target); err == nil {
					return pr.Error("Declaration file exists", target+" already exists.",
						[]string{"Pass --force to overwrite it"})
				} else if !errors.Is(err, fs.ErrNotExist) {
					return pr.Error("Init failed", err.Error(), nil)
				}
			}

			if err := mapping.WriteFile(mf, target); err != nil {
				return pr.Error("Write failed", err.Error(), nil)
			}

			ctxlog.FromContext(ctx).Debug("wrote declaration file", "file", target, "models", len(mf.Models))
			pr.Success("wrote %s (%d models)\n", target, len(mf.Models))

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing declaration file")

	return cmd
}

// relativePattern returns the package pattern of dir as seen from the
// directory of the declaration file.
func relativePattern(configPath, dir string) string {
	base, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return "."
	}

	rel, err := filepath.Rel(base, dir)
	if err != nil || rel == "." {
		return "."
	}

	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "../") {
		return rel
	}

	return "./" + rel
}
