package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelkit/internal/mapping"
)

const (
	accountPkg    = "modelkit/examples/account"
	accountConfig = "../../../examples/account/models.yaml"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), errOut.String(), err
}

// TestRootCommand_ShowsHelpWhenNoSubcommand tests that the root command
// shows help instead of silently succeeding when invoked without a subcommand
func TestRootCommand_ShowsHelpWhenNoSubcommand(t *testing.T) {
	out, _, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "modelgen")
}

func TestRootCommand_RejectsUnknownFlags(t *testing.T) {
	_, _, err := run(t, "--unknown-flag", "value")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}

func TestGen_DryRun(t *testing.T) {
	out, _, err := run(t, "gen", "--dry-run", "--package", accountPkg, "--config", accountConfig)
	require.NoError(t, err)

	assert.Contains(t, out, "// Code generated by modelgen. DO NOT EDIT.")
	assert.Contains(t, out, "var staffEntitySchema = model.MustRegister(model.Descriptor{")
	assert.Contains(t, out, `"uid": "id",`)
}

func TestGen_DryRunWithoutConfig(t *testing.T) {
	out, _, err := run(t, "gen", "--dry-run", "--no-json", "--package", accountPkg)
	require.NoError(t, err)

	assert.Contains(t, out, "var accountEntitySchema")
	assert.NotContains(t, out, "Keys:")
	assert.NotContains(t, out, "MarshalJSON")
}

func TestGen_ResolutionErrors(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "models.yaml")
	require.NoError(t, mapping.WriteFile(&mapping.ModelFile{
		Models: []mapping.ModelDecl{{Name: "AccountEntity", Ignore: mapping.PropertyList{"nam"}}},
	}, cfg))

	_, errOut, err := run(t, "gen", "--dry-run", "--package", accountPkg, "--config", cfg)
	require.Error(t, err)
	assert.Equal(t, "Resolution failed", err.Error())
	assert.Contains(t, errOut, "unknown_property")
	assert.Contains(t, errOut, "did you mean name?")
}

func TestInspect_YAML(t *testing.T) {
	out, _, err := run(t, "inspect", "--format", "yaml", "--package", accountPkg, "--config", accountConfig)
	require.NoError(t, err)

	assert.Contains(t, out, "schema: account.StaffEntity")
	assert.Contains(t, out, "parent: AccountEntity")
	assert.Contains(t, out, "key: job_title")
	assert.Contains(t, out, "key: is_new")
	assert.Contains(t, out, "ignored: true")
}

func TestInspect_Table(t *testing.T) {
	out, _, err := run(t, "inspect", "--package", accountPkg, "--config", accountConfig)
	require.NoError(t, err)

	assert.Contains(t, out, "account.StaffEntity : AccountEntity (identity)")
	assert.Contains(t, out, "PROPERTY")
	assert.Contains(t, out, "required")
}

func TestInspect_UnknownFormat(t *testing.T) {
	_, _, err := run(t, "inspect", "--format", "xml", "--package", accountPkg)
	require.Error(t, err)
}

func TestInit_WritesDeclarations(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "models.yaml")

	_, _, err := run(t, "init", "--package", accountPkg, "--config", cfg)
	require.NoError(t, err)

	mf, err := mapping.LoadFile(cfg)
	require.NoError(t, err)

	var names []string
	for _, m := range mf.Models {
		names = append(names, m.Name)
	}

	assert.ElementsMatch(t, []string{"AccountEntity", "LoginResponseEntity", "StaffEntity"}, names)
	assert.Equal(t, mapping.DefaultOutput, mf.Output)

	_, _, err = run(t, "init", "--package", accountPkg, "--config", cfg)
	require.Error(t, err, "existing files are kept without --force")

	_, _, err = run(t, "init", "--package", accountPkg, "--config", cfg, "--force")
	require.NoError(t, err)
}

func TestRelativePattern(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, ".", relativePattern(filepath.Join(dir, "models.yaml"), dir))
	assert.Equal(t, "./account", relativePattern(filepath.Join(dir, "models.yaml"), filepath.Join(dir, "account")))
	assert.Equal(t, "../account", relativePattern(filepath.Join(dir, "cfg", "models.yaml"), filepath.Join(dir, "account")))
}
