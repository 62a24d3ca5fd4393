// Package model provides schema-described model types with JSON binding,
// presence-aware merging and bulk serialization.
//
// A model is any type implementing [Model]. Its shape is described by a
// [Schema], built once from a [Descriptor] at registration time. Descriptors
// list the properties of a type with typed accessors ([Optional], [Value],
// [List], [Dict], [Nested], [Any]), so no property enumeration happens at
// runtime through reflection. Descriptors are usually produced by the
// modelgen command, but hand-written ones are equally valid.
//
// # Key mapping and ignore lists
//
// Each schema owns a [KeyMapper] translating property names to wire keys.
// The mapper combines a [Convention] (identity or snake_case) with explicit
// exceptions. A schema with a parent inherits the parent's exceptions and
// overrides them entry by entry. Ignore and required lists are unions of the
// schema's own entries and the inherited ones.
//
// # Merging
//
// [Merge] copies every present property of a source into a destination of
// the same schema or of an ancestor schema. A property is present when
// [IsPresent] holds for its value: nil, empty strings and empty collections
// are absent, zero and false are present. The merge is shallow: a present
// nested model replaces the destination's nested model as a whole.
//
// # Concurrency
//
// Embedding [Base] gives a model type a read/write lock. [Merge] is not
// atomic; use [MergeLocked] when the destination is shared between
// goroutines.
package model
