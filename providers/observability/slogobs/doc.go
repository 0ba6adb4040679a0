// Package slogobs implements observability.Provider on top of the standard
// library's log/slog. Spans become paired start/end log lines sharing a short
// span_id, metrics accumulate in memory and echo each update at DEBUG level,
// and records render in compact (single line), pretty (multi-line tree), or
// JSON format with attributes kept in insertion order.
//
// [New] reads ANALYZER_LOG_FORMAT and ANALYZER_LOG_LEVEL when no options are
// given, so binaries can switch output without code changes; [WithFormat],
// [WithLevel], [WithOutput], [WithColors], [WithSource], and [WithLogger]
// override them. [Observer.Snapshot] exposes the accumulated metric state.
package slogobs
