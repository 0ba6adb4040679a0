// Package recovery turns raw LLM output into a validated analysis record. It
// orchestrates the full pipeline in a fixed order: extract the best JSON
// candidate from the text, parse it (repairing almost-JSON when a strict
// decode fails), normalize the loose document into canonical shape, and
// validate the result against the record schema.
//
// The primary entry point is [Recover], which runs a shared default pipeline.
// [New] builds a configurable [Pipeline] from functional options such as
// [WithObserver], [WithMiddleware], and [WithSnippetMarkdown]. Every run
// returns an [Outcome] whose Kind states how the run ended; the pipeline
// never panics on malformed input and never returns an error for it.
//
// Basic usage:
//
//	outcome := recovery.Recover(ctx, modelOutput)
//	switch outcome.Kind {
//	case recovery.OutcomeRecovered:
//		use(outcome.Record)
//	case recovery.OutcomeSchemaMismatch:
//		reject(outcome.Defects)
//	case recovery.OutcomeUnrecoverableSyntax:
//		retry(outcome.Err)
//	}
package recovery
