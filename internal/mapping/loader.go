package mapping

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the only declaration file format understood.
const Version = "1"

const filePerm = 0o644

// LoadFile reads and parses a declaration file.
func LoadFile(path string) (*ModelFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model declarations: %w", err)
	}

	mf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return mf, nil
}

// Parse decodes a declaration file. Unknown keys are rejected so that a
// misspelled "required" does not silently declare nothing. An empty
// document yields an empty declaration set.
func Parse(data []byte) (*ModelFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var mf ModelFile
	if err := dec.Decode(&mf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing model declarations: %w", err)
	}

	if mf.Version == "" {
		mf.Version = Version
	}

	if mf.Version != Version {
		return nil, fmt.Errorf("unsupported declaration version %q (want %q)", mf.Version, Version)
	}

	if mf.Output == "" {
		mf.Output = DefaultOutput
	}

	return &mf, nil
}

// Marshal encodes a ModelFile as YAML with two-space indentation.
func Marshal(mf *ModelFile) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(mf); err != nil {
		return nil, fmt.Errorf("encoding model declarations: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteFile writes mf to path, replacing any existing file.
func WriteFile(mf *ModelFile, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("writing model declarations: %w", err)
	}

	return nil
}
