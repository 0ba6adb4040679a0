package recovery

import (
	"context"
	"encoding/json"
	"time"

	"github.com/edslclee/legacy-csharp-analyzer/core/analysis"
	"github.com/edslclee/legacy-csharp-analyzer/core/extract"
	"github.com/edslclee/legacy-csharp-analyzer/core/normalize"
	"github.com/edslclee/legacy-csharp-analyzer/core/parse"
	"github.com/edslclee/legacy-csharp-analyzer/core/report"
	"github.com/edslclee/legacy-csharp-analyzer/core/validate"
	"github.com/edslclee/legacy-csharp-analyzer/internal/utils"
	"github.com/edslclee/legacy-csharp-analyzer/providers/observability"
)

// OutcomeKind classifies the terminal state of a recovery run.
type OutcomeKind string

const (
	// OutcomeRecovered means a schema-valid record was produced.
	OutcomeRecovered OutcomeKind = "recovered"

	// OutcomeUnrecoverableSyntax means no JSON object could be decoded from
	// the input, even after repair.
	OutcomeUnrecoverableSyntax OutcomeKind = "unrecoverable_syntax"

	// OutcomeSchemaMismatch means the decoded value violated the canonical
	// record schema.
	OutcomeSchemaMismatch OutcomeKind = "schema_mismatch"
)

// Pipeline stage names, as they appear in report stage durations and span
// events.
const (
	StageExtract   = "extract"
	StageParse     = "parse"
	StageNormalize = "normalize"
	StageValidate  = "validate"
)

// Outcome is the result of one recovery run. Kind selects which of the
// remaining fields are meaningful; the zero values of the others are left in
// place rather than reported.
type Outcome struct {
	// Kind is the terminal state of the run.
	Kind OutcomeKind

	// Record is the recovered canonical record. Set only when Kind is
	// [OutcomeRecovered].
	Record *analysis.Record

	// Defects lists every schema violation found. Set only when Kind is
	// [OutcomeSchemaMismatch].
	Defects []validate.Defect

	// Err is the underlying parse failure. Set only when Kind is
	// [OutcomeUnrecoverableSyntax], and only as a diagnostic: callers branch
	// on Kind, not on Err.
	Err error

	// RepairApplied reports whether the candidate only decoded after the
	// repair pass rewrote it.
	RepairApplied bool
}

// Pipeline runs the recovery stages behind a configurable middleware chain.
// A Pipeline is immutable after [New] and safe for concurrent use from many
// goroutines.
type Pipeline struct {
	chain RecoverFunc
}

// config holds the configuration assembled by functional options.
type config struct {
	observer    observability.Provider
	middlewares []Middleware
	snippets    bool
}

// Option is a functional option for configuring a Pipeline.
type Option func(*config)

// WithObserver attaches an observability provider to the pipeline. The
// observability middleware is prepended to the chain, making it the outermost
// wrapper so it observes the final outcome of every run.
func WithObserver(observer observability.Provider) Option {
	return func(c *config) {
		c.observer = observer
	}
}

// WithMiddleware appends user middlewares to the chain in the given order:
// the first middleware passed is the outermost of the user wrappers.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(c *config) {
		c.middlewares = append(c.middlewares, middlewares...)
	}
}

// WithSnippetMarkdown appends the snippet conversion middleware, which
// rewrites HTML-looking doc link snippets of recovered records into Markdown.
// See [NewSnippetMarkdownMiddleware].
func WithSnippetMarkdown() Option {
	return func(c *config) {
		c.snippets = true
	}
}

// New creates a Pipeline with the given options. With no options the
// pipeline runs the four stages directly, with no middleware.
func New(opts ...Option) *Pipeline {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	middlewares := make([]Middleware, 0, len(cfg.middlewares)+2)
	if cfg.observer != nil {
		middlewares = append(middlewares, NewObservabilityMiddleware(cfg.observer))
	}
	middlewares = append(middlewares, cfg.middlewares...)
	if cfg.snippets {
		middlewares = append(middlewares, NewSnippetMarkdownMiddleware())
	}

	p := &Pipeline{}
	p.chain = buildChain(p.run, middlewares)
	return p
}

// Recover runs rawText through the pipeline and classifies the result. It
// never returns a Go error: a run that cannot produce a record ends in one of
// the two failure kinds instead.
//
// ctx carries observability state (span, observer, report); the stages
// themselves perform no I/O and are not cancellable.
func (p *Pipeline) Recover(ctx context.Context, rawText string) Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	return p.chain(ctx, rawText)
}

// defaultPipeline serves the package-level Recover.
var defaultPipeline = New()

// Recover runs rawText through a shared default pipeline with no middleware.
// It is equivalent to New().Recover(ctx, rawText).
func Recover(ctx context.Context, rawText string) Outcome {
	return defaultPipeline.Recover(ctx, rawText)
}

// run executes the four stages in order. It is the base of every middleware
// chain.
func (p *Pipeline) run(ctx context.Context, rawText string) Outcome {
	rep := report.FromContext(&ctx)
	if rep != nil {
		rep.StartRun()
		rep.SetInputBytes(len(rawText))
		if span := observability.SpanFromContext(ctx); span != nil {
			span.SetAttributes(observability.String(observability.AttrRecoveryRunID, rep.RunID))
		}
	}

	timer := utils.NewTimer()
	candidate := extract.Extract(rawText)
	noteStage(ctx, rep, StageExtract, timer.Lap())

	value, err := parse.Value(candidate)
	// The parser hides which of its two passes produced the value; a
	// candidate that parsed but is not valid JSON as-is must have been
	// repaired.
	repairApplied := err == nil && !json.Valid([]byte(candidate))
	noteStage(ctx, rep, StageParse, timer.Lap())

	if rep != nil {
		rep.SetRepairApplied(repairApplied)
	}
	if err != nil {
		return finishRun(rep, Outcome{Kind: OutcomeUnrecoverableSyntax, Err: err})
	}
	if repairApplied {
		if span := observability.SpanFromContext(ctx); span != nil {
			span.AddEvent(observability.EventRepairApplied)
		}
	}

	normalized := normalize.Normalize(value)
	noteStage(ctx, rep, StageNormalize, timer.Lap())

	record, defects := validate.Record(normalized)
	noteStage(ctx, rep, StageValidate, timer.Lap())

	if len(defects) > 0 {
		if rep != nil {
			rep.IncludeDefects(defects)
		}
		return finishRun(rep, Outcome{
			Kind:          OutcomeSchemaMismatch,
			Defects:       defects,
			RepairApplied: repairApplied,
		})
	}

	if rep != nil {
		rep.IncludeRecord(record)
	}
	return finishRun(rep, Outcome{
		Kind:          OutcomeRecovered,
		Record:        record,
		RepairApplied: repairApplied,
	})
}

// noteStage records a stage's elapsed duration in the report and as a span
// event.
func noteStage(ctx context.Context, rep *report.Report, stage string, elapsed time.Duration) {
	if rep != nil {
		rep.AddStage(stage, elapsed)
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventStageCompleted,
			observability.String(observability.AttrRecoveryStage, stage),
			observability.Duration(observability.AttrDuration, elapsed),
		)
	}
}

// finishRun seals the report with the terminal outcome before returning it.
func finishRun(rep *report.Report, outcome Outcome) Outcome {
	if rep != nil {
		rep.SetOutcome(string(outcome.Kind))
		rep.EndRun()
	}
	return outcome
}
