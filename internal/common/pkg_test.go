package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgName(t *testing.T) {
	tests := map[string]string{
		"":                               "",
		"model":                          "model",
		"modelkit/model":                 "model",
		"gopkg.in/yaml.v3":               "yaml",
		"github.com/spf13/cobra/v2":      "cobra",
		"github.com/mattn/go-isatty":     "isatty",
		"github.com/viant/afs/url":       "url",
		"example.com/some-lib":           "some_lib",
		"golang.org/x/tools/go/packages": "packages",
	}

	for path, want := range tests {
		assert.Equal(t, want, PkgName(path), "PkgName(%q)", path)
	}
}
