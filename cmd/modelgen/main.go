// Package main provides the CLI entrypoint for modelgen.
//
// modelgen is a Go codegen tool that:
//   - Parses Go packages (AST + go/types) to find structs marked //modelgen:model
//   - Reads key mappings, ignore and required lists from YAML
//   - Generates schema descriptors for the modelkit/model runtime
package main

import (
	"os"

	"modelkit/cmd/modelgen/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Errors are printed by the printer package with color formatting.
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
