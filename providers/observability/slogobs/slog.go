package slogobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edslclee/legacy-csharp-analyzer/providers/observability"
)

// Observer routes the full observability.Provider surface through a single
// slog.Logger: span lifecycles and metric updates become structured log
// lines, and log calls pass through at their level. Counters and histograms
// additionally accumulate in memory so [Observer.Snapshot] can expose their
// state without a metrics backend.
type Observer struct {
	logger  *slog.Logger
	metrics *metricSet
}

// Compile-time check of the provider seam.
var _ observability.Provider = (*Observer)(nil)

// New builds an Observer. Without options, the format and level come from
// the environment (ANALYZER_LOG_FORMAT and ANALYZER_LOG_LEVEL, with
// LOG_FORMAT and LOG_LEVEL as fallbacks), writing compact lines to stdout
// at INFO.
//
// Example usage:
//
//	// Environment-driven defaults.
//	observer := slogobs.New()
//
//	// Explicit configuration.
//	observer := slogobs.New(
//	    slogobs.WithFormat(slogobs.FormatPretty),
//	    slogobs.WithLevel(slog.LevelDebug),
//	)
//
//	// Route everything through an existing logger.
//	observer := slogobs.New(slogobs.WithLogger(slog.Default()))
func New(opts ...Option) *Observer {
	cfg := applyOptions(opts...)

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(NewHandler(&HandlerOptions{
			Format: cfg.format,
			Level:  cfg.level,
			Output: cfg.output,
			Colors: cfg.colors,
			Source: cfg.source,
		}))
	}

	return &Observer{logger: logger, metrics: newMetricSet()}
}

// appendAttrs converts provider attributes onto a slog attribute list.
func appendAttrs(dst []slog.Attr, attrs []observability.Attribute) []slog.Attr {
	for _, attr := range attrs {
		dst = append(dst, slog.Any(attr.Key, attr.Value))
	}
	return dst
}

// --- TRACING ---

// StartSpan opens a span and logs its start at DEBUG. Each span carries a
// short random span_id repeated on every line it emits, so the start,
// events, and end of concurrent runs can be told apart in interleaved
// output. The context is returned unchanged; pair every StartSpan with End.
func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	sp := &span{
		name:    name,
		id:      uuid.NewString()[:8],
		started: time.Now(),
		logger:  o.logger,
		attrs:   attrs,
	}
	o.logger.LogAttrs(ctx, slog.LevelDebug, "Span started", appendAttrs(sp.line("span.start"), attrs)...)

	return ctx, sp
}

// span reports its lifecycle through the observer's logger. Attribute
// writes are mutex-guarded because the pipeline middleware and the stages
// share one span.
type span struct {
	name    string
	id      string
	started time.Time
	logger  *slog.Logger

	mu    sync.Mutex
	attrs []observability.Attribute
}

// line builds the identifying prefix every log line of this span starts
// with.
func (s *span) line(event string) []slog.Attr {
	return []slog.Attr{
		slog.String("span", s.name),
		slog.String("span_id", s.id),
		slog.String("event", event),
	}
}

// End logs the span close at DEBUG with the elapsed time and every
// attribute accumulated since StartSpan.
func (s *span) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	logAttrs := append(s.line("span.end"), slog.Duration("duration", time.Since(s.started)))
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "Span ended", appendAttrs(logAttrs, s.attrs)...)
}

// SetAttributes adds attributes that will be reported on the span.end line.
func (s *span) SetAttributes(attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, attrs...)
}

// SetStatus folds the status code, and the description when present, into
// the span's attributes.
func (s *span) SetStatus(code observability.StatusCode, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	label := "unset"
	switch code {
	case observability.StatusOK:
		label = "ok"
	case observability.StatusError:
		label = "error"
	}

	s.attrs = append(s.attrs, observability.String(observability.AttrStatus, label))
	if description != "" {
		s.attrs = append(s.attrs, observability.String(observability.AttrStatusDescription, description))
	}
}

// RecordError logs err against the span at ERROR level and keeps it in the
// span attributes so the span.end line repeats it. A nil err is ignored.
func (s *span) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attrs = append(s.attrs, observability.Error(err))

	logAttrs := append(s.line("error"),
		slog.String(observability.AttrError, err.Error()),
		slog.String(observability.AttrErrorType, fmt.Sprintf("%T", err)),
	)
	s.logger.LogAttrs(context.Background(), slog.LevelError, "Span error", logAttrs...)
}

// AddEvent logs a named point-in-time event under the span at DEBUG.
func (s *span) AddEvent(name string, attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "Span event", appendAttrs(s.line(name), attrs)...)
}

// --- METRICS ---

// Counter returns the named counter, creating it on first use. The same
// instance comes back for the same name, so call sites fetch it inline
// rather than caching it.
func (o *Observer) Counter(name string) observability.Counter {
	return o.metrics.counterFor(name, o.logger)
}

// Histogram returns the named histogram, creating it on first use.
func (o *Observer) Histogram(name string) observability.Histogram {
	return o.metrics.histogramFor(name, o.logger)
}

// MetricsSnapshot is a point-in-time copy of every metric the observer has
// recorded. Counters map metric names to cumulative values; histograms map
// names to aggregate summaries.
type MetricsSnapshot struct {
	Counters   map[string]int64
	Histograms map[string]HistogramSummary
}

// HistogramSummary aggregates the observations recorded against one histogram.
type HistogramSummary struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
}

// Snapshot returns a copy of all counter and histogram state accumulated so
// far. The snapshot is detached; later metric updates do not affect it.
func (o *Observer) Snapshot() MetricsSnapshot {
	return o.metrics.snapshot()
}

// metricSet owns every named instrument behind one lock.
type metricSet struct {
	mu         sync.Mutex
	counters   map[string]*counter
	histograms map[string]*histogram
}

func newMetricSet() *metricSet {
	return &metricSet{
		counters:   make(map[string]*counter),
		histograms: make(map[string]*histogram),
	}
}

func (m *metricSet) counterFor(name string, logger *slog.Logger) *counter {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.counters[name]
	if !ok {
		c = &counter{name: name, logger: logger}
		m.counters[name] = c
	}
	return c
}

func (m *metricSet) histogramFor(name string, logger *slog.Logger) *histogram {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.histograms[name]
	if !ok {
		h = &histogram{name: name, logger: logger}
		m.histograms[name] = h
	}
	return h
}

func (m *metricSet) snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		Counters:   make(map[string]int64, len(m.counters)),
		Histograms: make(map[string]HistogramSummary, len(m.histograms)),
	}
	for name, c := range m.counters {
		snap.Counters[name] = c.current()
	}
	for name, h := range m.histograms {
		snap.Histograms[name] = h.summary()
	}
	return snap
}

// counter is a cumulative metric. Every Add also logs the delta and the new
// total at DEBUG, which is how counter activity reaches log-only setups.
type counter struct {
	name   string
	logger *slog.Logger

	mu    sync.Mutex
	value int64
}

func (c *counter) Add(ctx context.Context, value int64, attrs ...observability.Attribute) {
	c.mu.Lock()
	c.value += value
	total := c.value
	c.mu.Unlock()

	logAttrs := []slog.Attr{
		slog.String("metric", c.name),
		slog.String("type", "counter"),
		slog.Int64("value", total),
		slog.Int64("delta", value),
	}
	c.logger.LogAttrs(ctx, slog.LevelDebug, "Counter", appendAttrs(logAttrs, attrs)...)
}

func (c *counter) current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// histogram keeps a running count, sum, min, and max. Every Record also
// logs the observation at DEBUG.
type histogram struct {
	name   string
	logger *slog.Logger

	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

func (h *histogram) Record(ctx context.Context, value float64, attrs ...observability.Attribute) {
	h.mu.Lock()
	h.count++
	h.sum += value
	if h.count == 1 || value < h.min {
		h.min = value
	}
	if h.count == 1 || value > h.max {
		h.max = value
	}
	count := h.count
	h.mu.Unlock()

	logAttrs := []slog.Attr{
		slog.String("metric", h.name),
		slog.String("type", "histogram"),
		slog.Float64("value", value),
		slog.Int64("count", count),
	}
	h.logger.LogAttrs(ctx, slog.LevelDebug, "Histogram", appendAttrs(logAttrs, attrs)...)
}

func (h *histogram) summary() HistogramSummary {
	h.mu.Lock()
	defer h.mu.Unlock()
	return HistogramSummary{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max}
}

// --- LOGGING ---

// Trace logs below DEBUG. Lines at this level only appear when the level is
// lowered explicitly, via [WithLevel] or ANALYZER_LOG_LEVEL=trace.
func (o *Observer) Trace(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, LevelTrace, msg, attrs...)
}

// Debug logs diagnostic detail: span lifecycles and metric updates land
// here too.
func (o *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelDebug, msg, attrs...)
}

// Info logs normal operational events.
func (o *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelInfo, msg, attrs...)
}

// Warn logs conditions the run survived but a human should look at.
func (o *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelWarn, msg, attrs...)
}

// Error logs failures of the current operation.
func (o *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelError, msg, attrs...)
}

func (o *Observer) log(ctx context.Context, level slog.Level, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, level, msg, appendAttrs(make([]slog.Attr, 0, len(attrs)), attrs)...)
}
