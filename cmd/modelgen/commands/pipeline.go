package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"modelkit/internal/analyze"
	"modelkit/internal/ctxlog"
	"modelkit/internal/mapping"
	"modelkit/internal/plan"
)

// loadModels reads the declaration file named by --config, if any.
func (o *options) loadModels(ctx context.Context) (*mapping.ModelFile, error) {
	if o.config == "" {
		return nil, nil
	}

	mf, err := mapping.LoadFile(o.config)
	if err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Debug("loaded model declarations", "file", o.config, "models", len(mf.Models))

	return mf, nil
}

// pattern returns the package pattern to analyze. Patterns from the config
// file are relative to the config file's directory.
func (o *options) pattern(mf *mapping.ModelFile) (pattern, dir string) {
	if o.pkg != "" {
		return o.pkg, ""
	}

	if mf != nil && mf.Package != "" {
		return mf.Package, filepath.Dir(o.config)
	}

	return ".", ""
}

// resolve runs analysis and resolution for the selected package.
func (o *options) resolve(ctx context.Context) (*plan.Plan, error) {
	log := ctxlog.FromContext(ctx)

	mf, err := o.loadModels(ctx)
	if err != nil {
		return nil, err
	}

	pattern, dir := o.pattern(mf)

	analyzer := analyze.NewAnalyzer()
	analyzer.Dir = dir

	graph, err := analyzer.Load(ctx, pattern)
	if err != nil {
		return nil, err
	}

	if len(graph.Packages) != 1 {
		return nil, fmt.Errorf("pattern %q matches %d packages, want exactly one", pattern, len(graph.Packages))
	}

	var pkgPath string
	for path := range graph.Packages {
		pkgPath = path
	}

	if mf != nil && o.output != "" {
		mf.Output = o.output
	}

	p, err := plan.NewResolver(graph, pkgPath, mf).Resolve()
	if err != nil {
		return nil, err
	}

	if mf == nil && o.output != "" {
		p.Output = o.output
	}

	log.Debug("resolved plan", "package", pkgPath, "models", len(p.Models),
		"errors", len(p.Diagnostics.Errors), "warnings", len(p.Diagnostics.Warnings))

	return p, nil
}
