package recovery

import (
	"context"

	"github.com/edslclee/legacy-csharp-analyzer/internal/utils"
	"github.com/edslclee/legacy-csharp-analyzer/providers/observability"
)

// NewObservabilityMiddleware creates a Middleware that provides distributed
// tracing spans, structured metrics, and log events for every recovery run.
//
// The middleware records a span from the moment the run enters the chain to
// when the outcome is returned. Both the span and the observer are injected
// into the context before calling next, so that the pipeline stages can
// attach events via [observability.SpanFromContext] and downstream code can
// retrieve the observer via [observability.ObserverFromContext].
//
// The middleware is automatically prepended to the chain by [New] when
// [WithObserver] is provided, making it the outermost wrapper. It therefore
// observes the final outcome, after any user middleware has run, which is the
// correct behavior for end-to-end run metrics.
//
// Parameters:
//   - observer: the observability provider; must not be nil.
func NewObservabilityMiddleware(observer observability.Provider) Middleware {
	return func(next RecoverFunc) RecoverFunc {
		return func(ctx context.Context, rawText string) Outcome {
			// 1. Start span and enrich context so the stages can attach events.
			ctx, span := observer.StartSpan(ctx, observability.SpanRecoveryRun,
				observability.Int(observability.AttrRecoveryInputBytes, len(rawText)),
			)
			ctx = observability.ContextWithSpan(ctx, span)
			ctx = observability.ContextWithObserver(ctx, observer)

			// 2. Emit a debug log at run start.
			observer.Debug(ctx, "recovery run",
				observability.Int(observability.AttrRecoveryInputBytes, len(rawText)),
			)

			// 3. Time the run.
			timer := utils.NewTimer()
			outcome := next(ctx, rawText)
			timer.Stop()

			// 4. Count repaired candidates regardless of how the run ended.
			if outcome.RepairApplied {
				observer.Counter(observability.MetricRecoveryRepairCount).Add(ctx, 1)
			}

			// 5. Record the terminal outcome.
			switch outcome.Kind {
			case OutcomeUnrecoverableSyntax:
				recordObsSyntaxFailure(ctx, span, observer, outcome, timer)
			case OutcomeSchemaMismatch:
				recordObsSchemaMismatch(ctx, span, observer, outcome, timer)
			default:
				recordObsSuccess(ctx, span, observer, outcome, timer)
			}

			return outcome
		}
	}
}

// recordObsSyntaxFailure writes the error-path observability data for runs
// whose candidate never decoded: span error status, an ERROR log, and an
// outcome-labelled run counter.
func recordObsSyntaxFailure(
	ctx context.Context,
	span observability.Span,
	observer observability.Provider,
	outcome Outcome,
	timer *utils.Timer,
) {
	span.RecordError(outcome.Err)
	span.SetStatus(observability.StatusError, "candidate is not decodable JSON")
	span.End()

	observer.Error(ctx, "recovery failed",
		observability.Error(outcome.Err),
		observability.Duration(observability.AttrDuration, timer.GetDuration()),
		observability.String(observability.AttrRecoveryOutcome, string(outcome.Kind)),
	)

	observer.Counter(observability.MetricRecoveryRunCount).Add(ctx, 1,
		observability.String(observability.AttrStatus, "error"),
		observability.String(observability.AttrRecoveryOutcome, string(outcome.Kind)),
	)
}

// recordObsSchemaMismatch writes the observability data for runs that decoded
// but violated the record schema. The run itself worked, so this logs at WARN
// with the defect paths rather than as a system error.
func recordObsSchemaMismatch(
	ctx context.Context,
	span observability.Span,
	observer observability.Provider,
	outcome Outcome,
	timer *utils.Timer,
) {
	span.SetAttributes(
		observability.Int(observability.AttrRecoveryDefectsCount, len(outcome.Defects)),
	)
	span.SetStatus(observability.StatusError, "record violates the canonical schema")
	span.End()

	// Defect paths are enough to triage without dumping the whole payload.
	paths := make([]string, len(outcome.Defects))
	for i, defect := range outcome.Defects {
		paths[i] = defect.Path
	}

	observer.Warn(ctx, "recovery rejected record",
		observability.Int(observability.AttrRecoveryDefectsCount, len(outcome.Defects)),
		observability.StringSlice("defect_paths", paths),
		observability.Duration(observability.AttrDuration, timer.GetDuration()),
		observability.String(observability.AttrRecoveryOutcome, string(outcome.Kind)),
	)

	observer.Counter(observability.MetricRecoveryDefectCount).Add(ctx, int64(len(outcome.Defects)))

	observer.Counter(observability.MetricRecoveryRunCount).Add(ctx, 1,
		observability.String(observability.AttrStatus, "error"),
		observability.String(observability.AttrRecoveryOutcome, string(outcome.Kind)),
	)
}

// recordObsSuccess writes all success-path observability data: duration
// histogram, run counter, record-size span attributes, a structured INFO log,
// and then ends the span.
func recordObsSuccess(
	ctx context.Context,
	span observability.Span,
	observer observability.Provider,
	outcome Outcome,
	timer *utils.Timer,
) {
	elapsed := timer.GetDuration()

	// Metrics
	observer.Histogram(observability.MetricRecoveryRunDuration).Record(ctx, elapsed.Seconds(),
		observability.String(observability.AttrRecoveryOutcome, string(outcome.Kind)),
	)

	observer.Counter(observability.MetricRecoveryRunCount).Add(ctx, 1,
		observability.String(observability.AttrStatus, "success"),
		observability.String(observability.AttrRecoveryOutcome, string(outcome.Kind)),
	)

	// Log attributes (always present)
	logAttrs := []observability.Attribute{
		observability.String(observability.AttrRecoveryOutcome, string(outcome.Kind)),
		observability.Bool(observability.AttrRecoveryRepairApplied, outcome.RepairApplied),
		observability.Duration(observability.AttrDuration, elapsed),
	}

	// Record-size attributes (when a record is present)
	if outcome.Record != nil {
		span.SetAttributes(
			observability.Int(observability.AttrAnalysisTablesCount, len(outcome.Record.Tables)),
			observability.Int(observability.AttrAnalysisProcessesCount, len(outcome.Record.Processes)),
			observability.Int(observability.AttrAnalysisFilesCount, len(outcome.Record.Files)),
		)

		logAttrs = append(logAttrs,
			observability.Int(observability.AttrAnalysisTablesCount, len(outcome.Record.Tables)),
			observability.Int(observability.AttrAnalysisProcessesCount, len(outcome.Record.Processes)),
			observability.Int(observability.AttrAnalysisFilesCount, len(outcome.Record.Files)),
		)

		// Add a diagram preview if present
		if outcome.Record.ErdMermaid != "" {
			logAttrs = append(logAttrs,
				observability.String("erd", utils.TruncateString(outcome.Record.ErdMermaid, 100)),
			)
		}
	}

	observer.Info(ctx, "recovery completed", logAttrs...)

	span.SetStatus(observability.StatusOK, "success")
	span.End()
}
