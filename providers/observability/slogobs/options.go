package slogobs

import (
	"io"
	"log/slog"
	"os"
)

// Option adjusts how [New] assembles its Observer.
type Option func(*settings)

// settings collects everything New needs to build a logger. newSettings
// seeds the environment-driven defaults; options override them.
type settings struct {
	format Format
	level  slog.Level
	output io.Writer
	colors bool
	source bool
	logger *slog.Logger
}

// newSettings returns the defaults: format and level from the environment,
// stdout output, colors left to the handler's terminal detection, no source
// locations, no pre-built logger.
func newSettings() *settings {
	return &settings{
		format: GetFormatFromEnv(),
		level:  GetLogLevelFromEnv(),
		output: os.Stdout,
	}
}

func applyOptions(opts ...Option) *settings {
	cfg := newSettings()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithFormat selects the output format.
func WithFormat(format Format) Option {
	return func(s *settings) { s.format = format }
}

// WithLevel sets the minimum level a record needs to be written.
func WithLevel(level slog.Level) Option {
	return func(s *settings) { s.level = level }
}

// WithOutput redirects log output; tests hand in a bytes.Buffer here.
func WithOutput(output io.Writer) Option {
	return func(s *settings) { s.output = output }
}

// WithColors(true) turns ANSI colors on unconditionally; with the default
// false, the handler colors only when the output is a terminal. JSON output
// never uses colors.
func WithColors(enabled bool) Option {
	return func(s *settings) { s.colors = enabled }
}

// WithSource appends the file:line of the logging call to each record.
func WithSource(enabled bool) Option {
	return func(s *settings) { s.source = enabled }
}

// WithLogger routes all output through an existing slog.Logger. The
// format, level, output, and color settings then belong to that logger's
// handler, and the other options are ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}
