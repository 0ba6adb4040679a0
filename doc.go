// Package analyzer recovers structured analysis records from the raw text
// LLMs produce when asked to analyze a legacy C# codebase. Model output is
// rarely clean JSON: it arrives fenced, wrapped in prose, with single quotes,
// trailing commas, or loosely-shaped fields. The analyzer extracts the best
// JSON candidate, repairs it when strict decoding fails, normalizes the loose
// document into a canonical shape, and validates it against the record
// schema.
//
// The package is a facade over the core packages:
//
//   - [github.com/edslclee/legacy-csharp-analyzer/core/recovery] orchestrates
//     the pipeline and owns the middleware chain;
//   - [github.com/edslclee/legacy-csharp-analyzer/core/analysis] defines the
//     canonical record types;
//   - [github.com/edslclee/legacy-csharp-analyzer/core/report] carries an
//     optional per-run report through the context;
//   - [github.com/edslclee/legacy-csharp-analyzer/providers/observability]
//     defines the observer interfaces, with a slog implementation under
//     slogobs.
//
// Simple callers never leave this package:
//
//	outcome := analyzer.Recover(ctx, modelOutput)
//	if outcome.Kind == analyzer.OutcomeRecovered {
//		use(outcome.Record)
//	}
package analyzer
