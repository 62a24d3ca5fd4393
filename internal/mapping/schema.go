package mapping

// Supported key conventions.
const (
	ConventionIdentity  = "identity"
	ConventionSnakeCase = "snake_case"
)

// DefaultOutput is the generated file name used when none is configured.
const DefaultOutput = "model_schema_gen.go"

// ModelFile is the root of a model declaration file.
type ModelFile struct {
	// Version of the file format. Defaults to "1".
	Version string `yaml:"version"`
	// Package is the package pattern holding the models, relative to the
	// declaration file, e.g. ".".
	Package string `yaml:"package,omitempty"`
	// Output is the generated file name inside the package directory.
	Output string `yaml:"output,omitempty"`
	// Models lists per-model declarations.
	Models []ModelDecl `yaml:"models"`
}

// ModelDecl declares the key mapping and property lists of one model.
type ModelDecl struct {
	// Name is the Go type name of the model.
	Name string `yaml:"name"`
	// Keys maps property names to wire keys.
	Keys map[string]string `yaml:"keys,omitempty"`
	// Convention is "identity" or "snake_case"; empty inherits.
	Convention string `yaml:"convention,omitempty"`
	// SnakeCase is shorthand for convention: snake_case.
	SnakeCase bool `yaml:"snake_case,omitempty"`
	// Ignore lists properties excluded from encoding, decoding and merging.
	Ignore PropertyList `yaml:"ignore,omitempty"`
	// Required lists properties that must be present.
	Required PropertyList `yaml:"required,omitempty"`
}

// EffectiveConvention resolves the SnakeCase shorthand. Empty means inherit.
func (d *ModelDecl) EffectiveConvention() string {
	if d.Convention != "" {
		return d.Convention
	}

	if d.SnakeCase {
		return ConventionSnakeCase
	}

	return ""
}

// Find returns the declaration of a model, or nil.
func (mf *ModelFile) Find(name string) *ModelDecl {
	for i := range mf.Models {
		if mf.Models[i].Name == name {
			return &mf.Models[i]
		}
	}

	return nil
}
