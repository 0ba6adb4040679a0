// Package observability is the seam between the recovery pipeline and
// whatever backend records its traces, metrics, and logs.
//
// [Provider] bundles [Tracer], [Metrics], and [Logger] so instrumented code
// takes one dependency. The pipeline's middleware opens a [Span] per run and
// stores both the span and the provider in the request context
// ([ContextWithSpan], [ContextWithObserver]); stages deeper in the run pull
// them back out with [SpanFromContext] and [ObserverFromContext] to attach
// events without threading the provider through every call.
//
// Attribute keys, span names, event names, and metric names used by the
// pipeline live in semconv.go. Recording observations under those constants
// keeps every Provider implementation's output comparable. The slogobs
// subpackage is the bundled implementation; [NoopProvider] satisfies the
// interface while discarding everything, for callers that must hand a
// Provider to code they do not want instrumented.
package observability
