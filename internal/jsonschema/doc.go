// Package jsonschema derives JSON Schema documents from Go types through
// reflection.
//
// [GenerateJSONSchema] walks a type parameter and emits object, array,
// string, integer, number and boolean schemas. Property names follow json
// struct tags, and jsonschema struct tags contribute descriptions, enum
// lists and required overrides at any nesting depth. Self-referential types
// are broken into $defs entries referenced through $ref so the output stays
// finite.
//
// The validator builds the canonical record schema this way instead of
// maintaining it by hand, so record type changes flow into validation
// without a second source of truth.
package jsonschema
