package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
version: "1"
package: ./examples/account
output: schema_gen.go
models:
  - name: AccountEntity
    keys:
      uid: id
    required: [uid]
  - name: LoginResponseEntity
    snake_case: true
  - name: StaffEntity
    keys: {title: job_title}
    ignore: draft
    convention: identity
`

	mf, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, mf)

	assert.Equal(t, "1", mf.Version)
	assert.Equal(t, "./examples/account", mf.Package)
	assert.Equal(t, "schema_gen.go", mf.Output)
	require.Len(t, mf.Models, 3)

	account := mf.Models[0]
	assert.Equal(t, "AccountEntity", account.Name)
	assert.Equal(t, map[string]string{"uid": "id"}, account.Keys)
	assert.Equal(t, PropertyList{"uid"}, account.Required)
	assert.Empty(t, account.EffectiveConvention())

	login := mf.Models[1]
	assert.True(t, login.SnakeCase)
	assert.Equal(t, ConventionSnakeCase, login.EffectiveConvention())

	staff := mf.Models[2]
	assert.Equal(t, PropertyList{"draft"}, staff.Ignore)
	assert.Equal(t, "job_title", staff.Keys["title"])
	assert.Equal(t, ConventionIdentity, staff.EffectiveConvention())
}

func TestParseMinimal(t *testing.T) {
	yaml := `
models:
  - name: AccountEntity
`

	mf, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "1", mf.Version) // Default version
	assert.Equal(t, DefaultOutput, mf.Output)
	require.Len(t, mf.Models, 1)
	assert.Equal(t, "AccountEntity", mf.Models[0].Name)
	assert.Nil(t, mf.Find("Missing"))
	assert.Same(t, &mf.Models[0], mf.Find("AccountEntity"))
}

func TestParsePropertyList(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected PropertyList
	}{
		{
			name: "single string",
			yaml: `
models:
  - name: A
    ignore: draft
`,
			expected: PropertyList{"draft"},
		},
		{
			name: "array",
			yaml: `
models:
  - name: A
    ignore: [draft, notes]
`,
			expected: PropertyList{"draft", "notes"},
		},
		{
			name: "comma separated",
			yaml: `
models:
  - name: A
    ignore: "draft, notes ,"
`,
			expected: PropertyList{"draft", "notes"},
		},
		{
			name: "empty string",
			yaml: `
models:
  - name: A
    ignore: ""
`,
			expected: PropertyList{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mf, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)
			require.Len(t, mf.Models, 1)
			assert.Equal(t, tt.expected, mf.Models[0].Ignore)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("models: [name: {"))
	require.Error(t, err)

	_, err = Parse([]byte(`
models:
  - name: A
    ignore: {draft: true}
`))
	require.Error(t, err)
}

func TestParseStrict(t *testing.T) {
	_, err := Parse([]byte(`
models:
  - name: AccountEntity
    requried: [uid]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requried")

	_, err = Parse([]byte(`version: "2"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported declaration version")

	mf, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Version, mf.Version)
	assert.Empty(t, mf.Models)
}

func TestMarshalRoundTrip(t *testing.T) {
	mf := &ModelFile{
		Version: "1",
		Output:  DefaultOutput,
		Models: []ModelDecl{
			{Name: "AccountEntity", Keys: map[string]string{"uid": "id"}, Required: PropertyList{"uid"}},
			{Name: "StaffEntity", Ignore: PropertyList{"draft", "notes"}},
		},
	}

	data, err := Marshal(mf)
	require.NoError(t, err)
	assert.Contains(t, string(data), "required: uid")
	assert.Contains(t, string(data), "ignore: [draft, notes]")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, mf, back)
}

func TestWriteAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")

	mf := &ModelFile{
		Version: "1",
		Output:  DefaultOutput,
		Models:  []ModelDecl{{Name: "LoginResponseEntity", SnakeCase: true}},
	}

	require.NoError(t, WriteFile(mf, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mf, loaded)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
