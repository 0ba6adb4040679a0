package slogobs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace sits below slog.LevelDebug. The bundled handler labels it
// TRACE; [Observer.Trace] logs at it.
const LevelTrace = slog.LevelDebug - 4

// envFirst returns the first non-empty value among the named environment
// variables.
func envFirst(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// GetLogLevelFromEnv reads the minimum log level from ANALYZER_LOG_LEVEL,
// falling back to LOG_LEVEL. When neither is set the level is INFO.
func GetLogLevelFromEnv() slog.Level {
	level := envFirst("ANALYZER_LOG_LEVEL", "LOG_LEVEL")
	if level == "" {
		return slog.LevelInfo
	}
	return ParseLogLevel(level)
}

// ParseLogLevel maps a level name to its slog.Level, ignoring case and
// surrounding whitespace. Recognized names are TRACE, DEBUG, INFO, WARN,
// WARNING, and ERROR. Anything else selects INFO and prints a warning to
// stderr, so a typo in the environment loudly degrades instead of silencing
// the log.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "Warning: Unknown log level '%s', using INFO\n", level)
		return slog.LevelInfo
	}
}

// LogLevelString names one of the recognized levels. Values between the
// named levels render as LEVEL(n).
func LogLevelString(level slog.Level) string {
	switch level {
	case LevelTrace:
		return "TRACE"
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", level)
	}
}
