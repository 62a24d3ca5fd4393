// Package analyze loads the packages holding model structs and turns their
// exported named types into a TypeGraph.
//
// A struct is a model when its doc comment carries the directive
//
//	//modelgen:model
//
// or when a declaration file names it (TypeGraph.MarkModel). Types from
// packages outside the loaded set are kept opaque (TypeKindExternal); the
// generator only needs their go/types spelling.
package analyze
