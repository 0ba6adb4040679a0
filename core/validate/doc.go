// Package validate checks a normalized dynamically-typed value against
// the canonical analysis record schema. Validation either yields the
// strictly-typed [analysis.Record] or a list of [Defect]s naming, for
// every offending field, its path and the expected versus actual shape.
//
// The schema is generated once from the record types by reflection (see
// internal/jsonschema) and cached for the process lifetime. Validation
// is strict on enumerations and required scalars but ignores unknown
// keys, and every top-level key has an empty default applied first so
// absence alone never fails a record.
package validate
