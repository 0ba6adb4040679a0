// Package parse decodes raw text into JSON values while tolerating the
// syntax defects language models routinely produce. A strict decode is
// attempted first; on failure the text goes through an automatic repair
// pass (unquoted keys, single quotes, trailing commas, truncated braces)
// and is decoded again. Text that survives neither attempt is rejected
// with [ErrNonJSON].
//
// [Value] recovers a JSON object as a dynamically-typed map for further
// normalization; the generic [As] decodes noisy text straight into a
// typed value.
package parse
