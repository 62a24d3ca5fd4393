package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// dumpUnformatted saves source that go/format rejected as
// <output>.unformatted.go in dir and returns its path. The first line
// records the formatter error, so reported line numbers are off by one.
func dumpUnformatted(dir, output string, src []byte, cause error) (string, error) {
	if dir == "" || output == "" {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, strings.TrimSuffix(output, ".go")+".unformatted.go")

	content := fmt.Appendf(nil, "// format error: %v\n", cause)
	content = append(content, src...)

	if err := os.WriteFile(path, content, filePerm); err != nil {
		return "", err
	}

	return path, nil
}
