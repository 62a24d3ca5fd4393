package gen

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelkit/internal/analyze"
	"modelkit/internal/mapping"
	"modelkit/internal/plan"
)

const accountPkg = "modelkit/examples/account"

func accountPlan(t *testing.T) *plan.Plan {
	t.Helper()

	graph, err := analyze.NewAnalyzer().Load(t.Context(), accountPkg)
	require.NoError(t, err)

	mf, err := mapping.LoadFile("../../examples/account/models.yaml")
	require.NoError(t, err)

	p, err := plan.NewResolver(graph, accountPkg, mf).Resolve()
	require.NoError(t, err)
	require.True(t, p.Diagnostics.IsValid(), p.Diagnostics.Error())

	return p
}

func TestGenerator_Account(t *testing.T) {
	t.Parallel()

	p := accountPlan(t)

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.NoError(t, err)

	src := string(file.Content)

	assert.Equal(t, mapping.DefaultOutput, file.Filename)
	assert.Equal(t, p.Dir, file.Dir)
	assert.True(t, strings.HasPrefix(src, headerLine+"\n"+fingerprintPrefix+file.Fingerprint+"\n\npackage account\n"))

	for _, want := range []string{
		`"modelkit/model"`,
		`var accountEntitySchema = model.MustRegister(model.Descriptor{`,
		`model.Value("uid", model.KindString, func(m *AccountEntity) *string { return &m.UID }),`,
		`model.Optional("sex", model.KindNumber, func(m *AccountEntity) **int64 { return &m.Sex }),`,
		`"uid": "id",`,
		`Required: []string{"uid"},`,
		`model.Nested("info", func(m *LoginResponseEntity) **AccountEntity { return &m.Info }),`,
		`model.Optional("isNew", model.KindBool, func(m *LoginResponseEntity) **bool { return &m.IsNew }),`,
		`Convention: model.ConventionSnakeCase,`,
		`Parent: accountEntitySchema,`,
		`return &m.(*StaffEntity).AccountEntity`,
		`model.List("tags", func(m *StaffEntity) *[]string { return &m.Tags }),`,
		`model.Dict("permissions", func(m *StaffEntity) *map[string]bool { return &m.Permissions }),`,
		`model.Any("profile", func(m *StaffEntity) *`,
		`"title": "job_title",`,
		`Ignore: []string{"draft"},`,
		`func (*StaffEntity) Schema() *model.Schema { return staffEntitySchema }`,
		`func (m *StaffEntity) MarshalJSON() ([]byte, error) { return model.Encode(m) }`,
		`func (m *StaffEntity) UnmarshalJSON(data []byte) error { return model.DecodeInto(data, m) }`,
	} {
		assert.Contains(t, src, want)
	}

	assert.NotContains(t, src, "Disabled")
	assert.Less(t, strings.Index(src, "accountEntitySchema ="), strings.Index(src, "staffEntitySchema ="))

	ok, err := Verify(file.Content)
	require.NoError(t, err)
	assert.True(t, ok)

	if t.Failed() {
		spew.Dump(p.Models)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	t.Parallel()

	p := accountPlan(t)
	g := NewGenerator(DefaultGeneratorConfig())

	a, err := g.Generate(p)
	require.NoError(t, err)

	b, err := g.Generate(p)
	require.NoError(t, err)

	assert.Equal(t, string(a.Content), string(b.Content))
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
}

func TestGenerator_WithoutJSONMethods(t *testing.T) {
	t.Parallel()

	file, err := NewGenerator(GeneratorConfig{}).Generate(accountPlan(t))
	require.NoError(t, err)

	src := string(file.Content)
	assert.Contains(t, src, "func (*AccountEntity) Schema()")
	assert.NotContains(t, src, "MarshalJSON")
}

func TestGenerator_Errors(t *testing.T) {
	t.Parallel()

	g := NewGenerator(DefaultGeneratorConfig())

	_, err := g.Generate(nil)
	require.Error(t, err)

	_, err = g.Generate(&plan.Plan{PkgPath: "example/empty", PkgName: "empty"})
	require.Error(t, err)

	broken := &plan.Plan{PkgPath: "example/broken", PkgName: "broken"}
	broken.Diagnostics.AddError("unknown_property", "ignore names unknown property", "Order", "nam")

	_, err = g.Generate(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown_property")
}

func TestSchemaVar(t *testing.T) {
	assert.Equal(t, "accountEntitySchema", schemaVar("AccountEntity"))
	assert.Equal(t, "loginResponseEntitySchema", schemaVar("LoginResponseEntity"))
}

func TestQuoteList(t *testing.T) {
	assert.Equal(t, `"a", "b"`, quoteList([]string{"a", "b"}))
	assert.Empty(t, quoteList(nil))
}

func TestDumpUnformatted(t *testing.T) {
	dir := t.TempDir()

	path, err := dumpUnformatted(dir, "model_schema_gen.go", []byte("package x\nfunc {"), errors.New("1:1: expected name"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "model_schema_gen.unformatted.go"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "// format error: 1:1: expected name\npackage x\nfunc {", string(content))

	path, err = dumpUnformatted("", "model_schema_gen.go", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, path)
}
