package analyzer

import (
	"context"

	"github.com/edslclee/legacy-csharp-analyzer/core/recovery"
)

// The root package is a thin facade over [recovery]: aliases and forwarding
// functions so that simple callers need a single import. The core packages
// remain the full API.

type (
	// Outcome is the result of one recovery run.
	Outcome = recovery.Outcome

	// OutcomeKind classifies the terminal state of a recovery run.
	OutcomeKind = recovery.OutcomeKind

	// Pipeline runs the recovery stages behind a middleware chain.
	Pipeline = recovery.Pipeline

	// Option configures a Pipeline built by [New].
	Option = recovery.Option

	// Middleware wraps a recovery run.
	Middleware = recovery.Middleware

	// RecoverFunc is the signature middleware wraps.
	RecoverFunc = recovery.RecoverFunc
)

const (
	OutcomeRecovered           = recovery.OutcomeRecovered
	OutcomeUnrecoverableSyntax = recovery.OutcomeUnrecoverableSyntax
	OutcomeSchemaMismatch      = recovery.OutcomeSchemaMismatch
)

// Recover runs rawText through a shared default pipeline with no middleware.
func Recover(ctx context.Context, rawText string) Outcome {
	return recovery.Recover(ctx, rawText)
}

// New creates a Pipeline with the given options. See [recovery.New].
func New(opts ...Option) *Pipeline {
	return recovery.New(opts...)
}

// Pipeline options, re-exported for single-import callers.
var (
	WithObserver        = recovery.WithObserver
	WithMiddleware      = recovery.WithMiddleware
	WithSnippetMarkdown = recovery.WithSnippetMarkdown
)
