package common

import (
	"regexp"
	"strings"
)

// UnknownStr is the display name of unrecognized enum values.
const UnknownStr = "unknown"

var (
	majorVersion = regexp.MustCompile(`^v[0-9]+$`)
	dotVersion   = regexp.MustCompile(`\.v[0-9]+$`)
)

// PkgName guesses the package name an import path declares, the way
// goimports does: the last element without a major version suffix or a
// "go-" prefix.
//   - "modelkit/model" -> "model"
//   - "gopkg.in/yaml.v3" -> "yaml"
//   - "github.com/spf13/cobra/v2" -> "cobra"
//   - "github.com/mattn/go-isatty" -> "isatty"
func PkgName(importPath string) string {
	parts := strings.Split(strings.Trim(importPath, "/"), "/")

	name := parts[len(parts)-1]
	if majorVersion.MatchString(name) && len(parts) > 1 {
		name = parts[len(parts)-2]
	}

	name = dotVersion.ReplaceAllString(name, "")
	name = strings.TrimPrefix(name, "go-")

	return strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return '_'
		}

		return r
	}, name)
}
