package observability

import "context"

// NoopProvider is a Provider that discards every span, metric, and log event.
// Use it when a Provider is required but no observability backend is
// configured.
type NoopProvider struct{}

// Ensure NoopProvider implements Provider
var _ Provider = (*NoopProvider)(nil)

// StartSpan returns the context unchanged and a span that records nothing.
func (*NoopProvider) StartSpan(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, noopSpan{}
}

// Counter returns a counter that discards every value.
func (*NoopProvider) Counter(_ string) Counter { return noopCounter{} }

// Histogram returns a histogram that discards every value.
func (*NoopProvider) Histogram(_ string) Histogram { return noopHistogram{} }

// Trace discards the log event.
func (*NoopProvider) Trace(_ context.Context, _ string, _ ...Attribute) {}

// Debug discards the log event.
func (*NoopProvider) Debug(_ context.Context, _ string, _ ...Attribute) {}

// Info discards the log event.
func (*NoopProvider) Info(_ context.Context, _ string, _ ...Attribute) {}

// Warn discards the log event.
func (*NoopProvider) Warn(_ context.Context, _ string, _ ...Attribute) {}

// Error discards the log event.
func (*NoopProvider) Error(_ context.Context, _ string, _ ...Attribute) {}

type noopSpan struct{}

func (noopSpan) End()                          {}
func (noopSpan) SetAttributes(...Attribute)    {}
func (noopSpan) SetStatus(StatusCode, string)  {}
func (noopSpan) RecordError(error)             {}
func (noopSpan) AddEvent(string, ...Attribute) {}

type noopCounter struct{}

func (noopCounter) Add(context.Context, int64, ...Attribute) {}

type noopHistogram struct{}

func (noopHistogram) Record(context.Context, float64, ...Attribute) {}
