// Package normalize rewrites the dynamically-typed value produced by the
// repair parser into the canonical analysis record shape. Language models
// emit many equivalent encodings of the same data (object-keyed CRUD
// maps, bare-string process lists, SQL constraint token lists); each
// known alternate shape is folded into the canonical one by an
// independent rule.
//
// Normalization never rejects input. Absent top-level keys become
// type-appropriate empty defaults, while present values of an
// unrecognized shape pass through untouched so the schema validator can
// report them precisely. [Normalize] is a pure transform: the returned
// value shares no structure with its input.
package normalize
