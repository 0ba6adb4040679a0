package slogobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// Handler is a slog.Handler with three output formats tuned for pipeline
// diagnostics: compact single-line, multi-line pretty, and plain JSON.
// Attributes are rendered in the order they were added, so log lines are
// stable across runs and easy to diff.
type Handler struct {
	format Format
	level  slog.Level
	output io.Writer
	colors bool
	source bool
	mu     *sync.Mutex // shared across WithAttrs/WithGroup clones
	attrs  []slog.Attr // qualified with the groups open when WithAttrs ran
	groups []string
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	// Format picks the rendering; unset means compact.
	Format Format
	// Level is the minimum level written.
	Level slog.Level
	// Output receives the rendered records; unset means stdout.
	Output io.Writer
	// Colors turns ANSI colors on unconditionally. When false they are
	// enabled only for terminal output, and never for JSON.
	Colors bool
	// Source appends the file:line of the logging call to each record.
	Source bool
}

// NewHandler builds a Handler, filling in whatever opts leaves unset.
func NewHandler(opts *HandlerOptions) *Handler {
	if opts == nil {
		opts = &HandlerOptions{}
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	format := opts.Format
	if format == "" {
		format = FormatCompact
	}

	colors := opts.Colors
	if !colors && format != FormatJSON {
		if f, ok := output.(*os.File); ok {
			colors = isTerminal(f)
		}
	}

	return &Handler{
		format: format,
		level:  opts.Level,
		output: output,
		colors: colors,
		source: opts.Source,
		mu:     &sync.Mutex{},
	}
}

// Enabled implements slog.Handler; records below the configured level are
// dropped before rendering.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats and writes a log record. Clones created via WithAttrs and
// WithGroup share one mutex, so concurrent writes to the same output never
// interleave.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.format {
	case FormatPretty:
		return h.handlePretty(r)
	case FormatJSON:
		return h.handleJSON(r)
	default: // FormatCompact
		return h.handleCompact(r)
	}
}

// WithAttrs returns a new Handler with additional attributes. The attributes
// are qualified with the groups open at this point, not with groups opened
// later.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	qualified := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	qualified = append(qualified, h.attrs...)
	for _, attr := range attrs {
		qualified = append(qualified, h.qualify(attr))
	}

	clone := *h
	clone.attrs = qualified
	return &clone
}

// WithGroup returns a new Handler that prefixes subsequent attribute keys
// with the group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	groups = append(groups, name)

	clone := *h
	clone.groups = groups
	return &clone
}

// qualify prefixes the attribute key with the currently open groups, outermost
// first, so WithGroup("a") then WithGroup("b") yields keys like "a.b.key".
func (h *Handler) qualify(attr slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return attr
	}
	attr.Key = strings.Join(h.groups, ".") + "." + attr.Key
	return attr
}

// timestampLayout shows local wall-clock time; the zone would repeat on
// every line without adding information during development.
const timestampLayout = "2006-01-02 15:04:05"

// handleCompact writes a single line:
// "2006-01-02 15:04:05 LEVEL Message → {"key":"value"}"
// Attributes are JSON-encoded in insertion order.
func (h *Handler) handleCompact(r slog.Record) error {
	label, color, _ := levelBand(r.Level)

	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format(timestampLayout)...)
	buf = append(buf, ' ')
	buf = h.appendColored(buf, fmt.Sprintf("%5s", label), color)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	attrs := h.collectAttrs(r)
	if len(attrs) > 0 {
		buf = append(buf, " → "...)
		buf = appendOrderedJSON(buf, attrs)
	}

	buf = append(buf, '\n')
	_, err := h.output.Write(buf)
	return err
}

// prettyIndent aligns attribute lines under the message column.
const prettyIndent = "                   "

// handlePretty writes a multi-line record with tree-style attribute lines:
//
//	2006-01-02 15:04:05 🟢 INFO   Message
//	                   ├─ key: value
//	                   └─ other: value
//
// Multi-line values (diagrams, snippets) continue on indented lines under
// their key.
func (h *Handler) handlePretty(r slog.Record) error {
	label, color, emoji := levelBand(r.Level)

	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format(timestampLayout)...)
	buf = append(buf, ' ')
	buf = append(buf, emoji...)
	buf = append(buf, ' ')
	buf = h.appendColored(buf, label, color)
	// The level column is seven wide so messages line up across levels.
	for pad := 7 - len(label); pad > 0; pad-- {
		buf = append(buf, ' ')
	}
	buf = append(buf, r.Message...)
	buf = append(buf, '\n')

	attrs := h.collectAttrs(r)
	for i, attr := range attrs {
		branch, cont := "├─ ", "│  "
		if i == len(attrs)-1 {
			branch, cont = "└─ ", "   "
		}

		lines := strings.Split(fmt.Sprintf("%v", attr.Value.Any()), "\n")
		buf = append(buf, prettyIndent...)
		buf = append(buf, branch...)
		buf = append(buf, attr.Key...)
		buf = append(buf, ": "...)
		buf = append(buf, lines[0]...)
		buf = append(buf, '\n')
		for _, line := range lines[1:] {
			buf = append(buf, prettyIndent...)
			buf = append(buf, cont...)
			buf = append(buf, line...)
			buf = append(buf, '\n')
		}
	}

	_, err := h.output.Write(buf)
	return err
}

// handleJSON writes the record as a single JSON object:
// {"time":"2006-01-02T15:04:05","level":"INFO","msg":"Message","key":"value"}
// The standard fields come first, then attributes in insertion order.
func (h *Handler) handleJSON(r slog.Record) error {
	label, _, _ := levelBand(r.Level)

	buf := make([]byte, 0, 256)
	buf = append(buf, `{"time":"`...)
	buf = append(buf, r.Time.Format("2006-01-02T15:04:05")...)
	buf = append(buf, `","level":"`...)
	buf = append(buf, label...)
	buf = append(buf, `","msg":`...)
	msg, _ := json.Marshal(r.Message)
	buf = append(buf, msg...)

	for _, attr := range h.collectAttrs(r) {
		buf = append(buf, ',')
		buf = appendJSONAttr(buf, attr)
	}

	buf = append(buf, "}\n"...)
	_, err := h.output.Write(buf)
	return err
}

// appendColored writes label wrapped in its ANSI color when colors are on.
func (h *Handler) appendColored(buf []byte, label, color string) []byte {
	if !h.colors {
		return append(buf, label...)
	}
	buf = append(buf, color...)
	buf = append(buf, label...)
	return append(buf, colorReset...)
}

// collectAttrs flattens the handler's stored attributes and the record's
// attributes into one ordered list. Record attributes are qualified with the
// currently open groups; stored attributes were qualified when WithAttrs ran.
// Values are resolved so LogValuer implementations are honored, and empty
// attributes are dropped.
func (h *Handler) collectAttrs(r slog.Record) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs()+1)
	for _, attr := range h.attrs {
		attrs = appendResolved(attrs, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		attrs = appendResolved(attrs, h.qualify(attr))
		return true
	})

	if h.source && r.PC != 0 {
		attrs = append(attrs, slog.String("source", sourceLocation(r.PC)))
	}
	return attrs
}

func appendResolved(attrs []slog.Attr, attr slog.Attr) []slog.Attr {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return attrs
	}
	return append(attrs, attr)
}

// appendOrderedJSON encodes attrs as a JSON object without reordering keys.
func appendOrderedJSON(buf []byte, attrs []slog.Attr) []byte {
	buf = append(buf, '{')
	for i, attr := range attrs {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendJSONAttr(buf, attr)
	}
	return append(buf, '}')
}

// appendJSONAttr writes one key:value pair. Values the encoder rejects
// (channels, functions, NaN) fall back to their fmt representation.
func appendJSONAttr(buf []byte, attr slog.Attr) []byte {
	key, _ := json.Marshal(attr.Key)
	buf = append(buf, key...)
	buf = append(buf, ':')

	value, err := json.Marshal(attr.Value.Any())
	if err != nil {
		value, _ = json.Marshal(fmt.Sprintf("%v", attr.Value.Any()))
	}
	return append(buf, value...)
}

// sourceLocation resolves a program counter to "file.go:line".
func sourceLocation(pc uintptr) string {
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "unknown"
	}
	return filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line)
}

// ANSI escape sequences for the level colors.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// levelBands maps level ranges to their label, color, and pretty-format
// icon. A record anywhere below DEBUG renders as TRACE, and so on up.
var levelBands = []struct {
	below slog.Level
	label string
	color string
	emoji string
}{
	{slog.LevelDebug, "TRACE", colorGray, "🔍"},
	{slog.LevelInfo, "DEBUG", colorBlue, "🔵"},
	{slog.LevelWarn, "INFO", colorGreen, "🟢"},
	{slog.LevelError, "WARN", colorYellow, "🟡"},
}

// levelBand returns the rendering for the band level falls in; everything
// from ERROR up shares the last band.
func levelBand(level slog.Level) (label, color, emoji string) {
	for _, band := range levelBands {
		if level < band.below {
			return band.label, band.color, band.emoji
		}
	}
	return "ERROR", colorRed, "🔴"
}

// isTerminal reports whether f is attached to a character device. A nil
// file or a failed stat counts as not a terminal.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
