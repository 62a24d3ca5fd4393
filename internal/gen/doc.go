// Package gen provides deterministic Go code generation for model schemas.
//
// Generation approach uses text/template + go/format for readable,
// allocation-light Go code.
//
// For every model of a plan the generated file contains:
//   - A package-level schema variable registered with model.MustRegister
//   - Field descriptors built with the model package constructors
//   - Schema, MarshalJSON and UnmarshalJSON methods
//
// The header records a HighwayHash fingerprint of the body so that Check can
// tell hand-edited files from stale ones.
package gen
